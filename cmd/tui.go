package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/shared"
	"github.com/dunerain/vidtube/internal/ui"
)

// TUI launches the interactive terminal client. The session is bootstrapped
// first so the dashboard guard can decide, and the cache is warmed in the
// background while the first view renders.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	// Terminal output belongs to bubbletea while the TUI runs; logs go to a
	// file instead.
	if logger, err := shared.NewFileLogger(r.config.UI.LogFile); err == nil {
		r.logger = logger
	}

	go func() {
		if _, err := r.prefetcher.Warm(ctx); err != nil {
			r.logger.Debug("cache warm aborted", "error", err)
		}
	}()

	model := ui.NewModel(ctx, ui.Deps{
		Cache:      r.cache,
		Dispatcher: r.dispatcher,
		Session:    r.session,
		Videos:     r.videos,
		Comments:   r.comments,
		Tweets:     r.tweets,
		Social:     r.social,
		Dashboard:  r.dashboard,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
