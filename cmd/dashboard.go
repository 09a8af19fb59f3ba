package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/formatter"
	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
)

// DashboardStats prints the creator's aggregate channel numbers.
func (r *Runner) DashboardStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	stats, err := query.Fetch(ctx, r.cache, query.KeyDashboardStats, func(ctx context.Context) (*models.DashboardStats, error) {
		return r.dashboard.Stats(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %s", rejectionMessage(err))
	}

	formatter.StatsTable(r.output, stats)
	return nil
}

// DashboardVideos lists all of the creator's videos and optionally exports
// them as CSV.
func (r *Runner) DashboardVideos(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	videos, err := query.Fetch(ctx, r.cache, query.KeyDashboardVideos, func(ctx context.Context) ([]models.Video, error) {
		return r.dashboard.Videos(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch dashboard videos: %s", rejectionMessage(err))
	}

	if csvPath := cmd.String("csv"); csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", csvPath, err)
		}
		defer f.Close()

		if err := formatter.WriteVideosCSV(f, videos); err != nil {
			return err
		}
		r.writePlain("✓ Exported %d videos to %s\n", len(videos), csvPath)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}
	formatter.DashboardVideosTable(r.output, videos)
	return nil
}
