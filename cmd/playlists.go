package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/formatter"
	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/shared"
)

// PlaylistsList prints the signed-in user's playlists.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}
	user, _ := r.session.Current()

	playlists, err := query.Fetch(ctx, r.cache, query.KeyPlaylists(user.ID), func(ctx context.Context) ([]models.Playlist, error) {
		return r.playlists.ByUser(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to list playlists: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}
	formatter.PlaylistsTable(r.output, playlists)
	return nil
}

// PlaylistsGet prints one playlist with its videos populated.
func (r *Runner) PlaylistsGet(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	playlist, err := query.Fetch(ctx, r.cache, query.KeyPlaylist(playlistID), func(ctx context.Context) (*models.PlaylistDetail, error) {
		return r.playlists.Get(ctx, playlistID)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	r.writePlain("%s\n", playlist.Name)
	if playlist.Description != "" {
		r.writePlain("%s\n", playlist.Description)
	}
	r.writePlain("\n")
	formatter.VideosTable(r.output, playlist.Videos)
	return nil
}

// PlaylistsCreate makes a new playlist.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}
	user, _ := r.session.Current()

	result, err := r.dispatcher.Do(ctx, query.MutationCreatePlaylist, query.Scope{UserID: user.ID}, func(ctx context.Context) (any, error) {
		return r.playlists.Create(ctx, cmd.String("name"), cmd.String("description"))
	})
	if err != nil {
		return fmt.Errorf("create failed: %s", rejectionMessage(err))
	}

	playlist := result.(*models.Playlist)
	r.writePlain("✓ Created %s (%s)\n", playlist.Name, playlist.ID)
	return nil
}

// PlaylistsDelete removes a playlist.
func (r *Runner) PlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}
	user, _ := r.session.Current()

	scope := query.Scope{UserID: user.ID, PlaylistID: playlistID}
	_, err := r.dispatcher.Do(ctx, query.MutationDeletePlaylist, scope, func(ctx context.Context) (any, error) {
		return nil, r.playlists.Delete(ctx, playlistID)
	})
	if err != nil {
		return fmt.Errorf("delete failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Deleted playlist %s\n", playlistID)
	return nil
}

// PlaylistsAdd puts a video into a playlist; PlaylistsRemove takes it out.
// Which one the web client's membership toggle calls is decided by the
// last-fetched playlist state, and the CLI mirrors that contract by letting
// the user say which direction they mean.
func (r *Runner) PlaylistsAdd(ctx context.Context, cmd *cli.Command) error {
	return r.playlistMembership(ctx, cmd, query.MutationPlaylistAdd)
}

func (r *Runner) PlaylistsRemove(ctx context.Context, cmd *cli.Command) error {
	return r.playlistMembership(ctx, cmd, query.MutationPlaylistRemove)
}

func (r *Runner) playlistMembership(ctx context.Context, cmd *cli.Command, kind query.Kind) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}
	user, _ := r.session.Current()

	videoID := cmd.String("video")
	playlistID := cmd.String("playlist")
	scope := query.Scope{UserID: user.ID, PlaylistID: playlistID, VideoID: videoID}

	result, err := r.dispatcher.Do(ctx, kind, scope, func(ctx context.Context) (any, error) {
		if kind == query.MutationPlaylistAdd {
			return r.playlists.AddVideo(ctx, videoID, playlistID)
		}
		return r.playlists.RemoveVideo(ctx, videoID, playlistID)
	})
	if err != nil {
		return fmt.Errorf("playlist update failed: %s", rejectionMessage(err))
	}

	playlist := result.(*models.Playlist)
	verb := "Added to"
	if kind == query.MutationPlaylistRemove {
		verb = "Removed from"
	}
	r.writePlain("✓ %s %s (%d videos)\n", verb, playlist.Name, playlist.VideoCount())
	return nil
}
