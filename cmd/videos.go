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

// VideosList prints the published feed, through the cache.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	opts := services.VideoListOptions{
		ListOptions: services.ListOptions{Page: int(cmd.Int("page")), Limit: r.config.UI.PageSize},
		Query:       cmd.String("query"),
		UserID:      cmd.String("user"),
	}

	key := query.KeyVideos
	if opts.Query != "" || opts.UserID != "" || opts.Page > 1 {
		// Filtered pages get their own entry in the feed family so they don't
		// overwrite the feed, yet still go stale with it on video mutations.
		key = query.KeyVideoSearch(opts.Query, opts.UserID, opts.Page)
	}

	videos, err := query.Fetch(ctx, r.cache, key, func(ctx context.Context) ([]models.Video, error) {
		return r.videos.List(ctx, opts)
	})
	if err != nil {
		return fmt.Errorf("failed to list videos: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}
	formatter.VideosTable(r.output, videos)
	return nil
}

// VideosLiked prints the videos the signed-in user has liked. The entry is
// invalidated by like toggles, so it refetches after an unlike.
func (r *Runner) VideosLiked(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	videos, err := query.Fetch(ctx, r.cache, query.KeyLikedVideos, func(ctx context.Context) ([]models.Video, error) {
		return r.social.LikedVideos(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to list liked videos: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}
	formatter.VideosTable(r.output, videos)
	return nil
}

// VideosGet prints one video and its comments.
func (r *Runner) VideosGet(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	video, err := query.Fetch(ctx, r.cache, query.KeyVideo(videoID), func(ctx context.Context) (*models.Video, error) {
		return r.videos.Get(ctx, videoID)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch video: %s", rejectionMessage(err))
	}

	comments, err := query.Fetch(ctx, r.cache, query.KeyComments(videoID), func(ctx context.Context) ([]models.Comment, error) {
		return r.comments.List(ctx, videoID, services.ListOptions{})
	})
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"video": video, "comments": comments}, true)
	}

	formatter.VideoDetail(r.output, video)
	if len(comments) > 0 {
		r.writePlain("\n")
		formatter.CommentsList(r.output, comments)
	}
	return nil
}

// VideosOpen opens the video's file URL in the default browser.
func (r *Runner) VideosOpen(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	video, err := query.Fetch(ctx, r.cache, query.KeyVideo(videoID), func(ctx context.Context) (*models.Video, error) {
		return r.videos.Get(ctx, videoID)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch video: %s", rejectionMessage(err))
	}
	if video.VideoFile == "" {
		return fmt.Errorf("video %s has no file URL", videoID)
	}

	r.logger.Info("opening in browser", "url", video.VideoFile)
	return shared.OpenBrowser(video.VideoFile)
}

// VideosUpload publishes a new video.
func (r *Runner) VideosUpload(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	videoPart, videoFile, err := openFilePart("videoFile", cmd.String("file"))
	if err != nil {
		return err
	}
	defer videoFile.Close()

	thumbPart, thumbFile, err := openFilePart("thumbnail", cmd.String("thumbnail"))
	if err != nil {
		return err
	}
	defer thumbFile.Close()

	scope := query.Scope{}
	if user, ok := r.session.Current(); ok {
		scope.UserID = user.ID
	}

	result, err := r.dispatcher.Do(ctx, query.MutationUploadVideo, scope, func(ctx context.Context) (any, error) {
		return r.videos.Upload(ctx, services.VideoUpload{
			Title:       cmd.String("title"),
			Description: cmd.String("description"),
			VideoFile:   videoPart,
			Thumbnail:   thumbPart,
		})
	})
	if err != nil {
		return fmt.Errorf("upload failed: %s", rejectionMessage(err))
	}

	video := result.(*models.Video)
	r.writePlain("✓ Uploaded %s (%s)\n", video.Title, video.ID)
	return nil
}

// VideosEdit changes a video's title, description, or thumbnail.
func (r *Runner) VideosEdit(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	update := services.VideoUpdate{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
	}
	if thumbPath := cmd.String("thumbnail"); thumbPath != "" {
		part, f, err := openFilePart("thumbnail", thumbPath)
		if err != nil {
			return err
		}
		defer f.Close()
		update.Thumbnail = &part
	}

	_, err := r.dispatcher.Do(ctx, query.MutationUpdateVideo, query.Scope{VideoID: videoID}, func(ctx context.Context) (any, error) {
		return r.videos.Update(ctx, videoID, update)
	})
	if err != nil {
		return fmt.Errorf("edit failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Updated %s\n", videoID)
	return nil
}

// VideosDelete removes a video.
func (r *Runner) VideosDelete(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	scope := query.Scope{VideoID: videoID}
	if user, ok := r.session.Current(); ok {
		scope.UserID = user.ID
	}

	_, err := r.dispatcher.Do(ctx, query.MutationDeleteVideo, scope, func(ctx context.Context) (any, error) {
		return nil, r.videos.Delete(ctx, videoID)
	})
	if err != nil {
		return fmt.Errorf("delete failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Deleted %s\n", videoID)
	return nil
}

// VideosPublish toggles a video between published and hidden.
func (r *Runner) VideosPublish(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	result, err := r.dispatcher.Do(ctx, query.MutationTogglePublish, query.Scope{VideoID: videoID}, func(ctx context.Context) (any, error) {
		return r.videos.TogglePublish(ctx, videoID)
	})
	if err != nil {
		return fmt.Errorf("publish toggle failed: %s", rejectionMessage(err))
	}

	video := result.(*models.Video)
	state := "hidden"
	if video.IsPublished {
		state = "published"
	}
	r.writePlain("✓ %s is now %s\n", videoID, state)
	return nil
}
