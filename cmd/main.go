package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/repositories"
	"github.com/dunerain/vidtube/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	httpClient := &http.Client{
		Timeout: time.Duration(config.Server.TimeoutSeconds) * time.Second,
	}

	// The cookie store is optional at startup: before `vidtube setup` has run
	// there is no database, and everything but login persistence still works.
	var jar *repositories.PersistentJar
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			repo := repositories.NewCookieRepository(db)
			if j, err := repositories.NewPersistentJar(repo, logger); err == nil {
				jar = j
				httpClient.Jar = j
			} else {
				logger.Warn("cookie jar unavailable, session will not persist", "error", err)
			}
		} else {
			logger.Warn("migrations failed, session will not persist", "error", err)
		}
	} else {
		logger.Debug("database unavailable, session will not persist", "error", err)
	}

	client := api.NewClient(config.Server.BaseURL, httpClient, logger)

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: client,
		Jar:    jar,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "vidtube",
		Usage:    "Watch, publish, and discuss videos from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
