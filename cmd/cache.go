package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// CacheWarm prefetches the feed and, when signed in, the user's own entities.
func (r *Runner) CacheWarm(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	warmed, err := r.prefetcher.Warm(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Warmed %d cache entries\n", warmed)
	return nil
}

// CacheClear drops every cached entity. The cache lives and dies with the
// process, so this mostly matters inside the TUI and in scripts that chain
// commands; it is the reset lever when cached state looks wrong.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	r.cache.InvalidateAll()
	r.writePlain("✓ Cache cleared\n")
	return nil
}
