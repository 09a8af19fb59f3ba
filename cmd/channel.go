package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/formatter"
	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/services"
	"github.com/dunerain/vidtube/internal/shared"
)

// Channel prints a channel profile, and optionally its videos. The video list
// is gated on the profile: it cannot fetch until the profile has resolved the
// owner's user id.
func (r *Runner) Channel(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: channel username", shared.ErrMissingArgument)
	}
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	channel, err := query.Fetch(ctx, r.cache, query.KeyChannel(username), func(ctx context.Context) (*models.Channel, error) {
		return r.users.Channel(ctx, username)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch channel: %s", rejectionMessage(err))
	}

	if !cmd.Bool("videos") {
		if cmd.Bool("json") {
			return r.writeJSON(channel, true)
		}
		formatter.ChannelSummary(r.output, channel)
		return nil
	}

	videos, err := query.Fetch(ctx, r.cache, query.KeyChannelVideos(channel.ID),
		func(ctx context.Context) ([]models.Video, error) {
			return r.videos.List(ctx, services.VideoListOptions{UserID: channel.ID})
		},
		query.DependsOn(query.KeyChannel(username)))
	if err != nil {
		return fmt.Errorf("failed to fetch channel videos: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"channel": channel, "videos": videos}, true)
	}

	formatter.ChannelSummary(r.output, channel)
	r.writePlain("\n")
	formatter.VideosTable(r.output, videos)
	return nil
}
