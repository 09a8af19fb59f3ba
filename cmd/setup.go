package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/shared"
)

// Setup creates the config file if needed and initializes the cookie database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err = shared.LoadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load created config: %w", err)
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writePlain("✓ Setup complete\n")
	r.writePlain("Backend: %s\n", config.Server.BaseURL)
	r.writePlain("Cookie store: %s\n", config.Database.Path)
	r.writePlain("Sign in with 'vidtube auth login -u <email> -p <password>'\n")
	return nil
}

// openFilePart opens a local file as a multipart attachment. The caller
// closes the returned file after the request finishes.
func openFilePart(field, path string) (api.FilePart, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return api.FilePart{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return api.FilePart{Field: field, Filename: filepath.Base(path), Reader: f}, f, nil
}
