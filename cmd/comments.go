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

// CommentsList prints a video's comments, through the cache.
func (r *Runner) CommentsList(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("video-id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	comments, err := query.Fetch(ctx, r.cache, query.KeyComments(videoID), func(ctx context.Context) ([]models.Comment, error) {
		return r.comments.List(ctx, videoID, services.ListOptions{Limit: r.config.UI.PageSize})
	})
	if err != nil {
		return fmt.Errorf("failed to list comments: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(comments, true)
	}
	formatter.CommentsList(r.output, comments)
	return nil
}

// CommentsAdd posts a comment on a video.
func (r *Runner) CommentsAdd(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("video-id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	result, err := r.dispatcher.Do(ctx, query.MutationCreateComment, query.Scope{VideoID: videoID}, func(ctx context.Context) (any, error) {
		return r.comments.Add(ctx, videoID, cmd.String("message"))
	})
	if err != nil {
		return fmt.Errorf("comment failed: %s", rejectionMessage(err))
	}

	comment := result.(*models.Comment)
	r.writePlain("✓ Commented (%s)\n", comment.ID)
	return nil
}

// CommentsEdit changes one of the user's comments.
func (r *Runner) CommentsEdit(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("comment-id")
	if commentID == "" {
		return fmt.Errorf("%w: comment id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	scope := query.Scope{VideoID: cmd.String("video")}
	_, err := r.dispatcher.Do(ctx, query.MutationUpdateComment, scope, func(ctx context.Context) (any, error) {
		return r.comments.Update(ctx, commentID, cmd.String("message"))
	})
	if err != nil {
		return fmt.Errorf("edit failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Updated comment %s\n", commentID)
	return nil
}

// CommentsDelete removes one of the user's comments.
func (r *Runner) CommentsDelete(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("comment-id")
	if commentID == "" {
		return fmt.Errorf("%w: comment id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	scope := query.Scope{VideoID: cmd.String("video")}
	_, err := r.dispatcher.Do(ctx, query.MutationDeleteComment, scope, func(ctx context.Context) (any, error) {
		return nil, r.comments.Delete(ctx, commentID)
	})
	if err != nil {
		return fmt.Errorf("delete failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Deleted comment %s\n", commentID)
	return nil
}
