package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/shared"
)

// SubToggle subscribes to or unsubscribes from a channel. The direction is
// derived from the channel's last-fetched isSubscribed-equivalent state: the
// server flips, the client reports which way it went by the profile it held.
func (r *Runner) SubToggle(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: channel username", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	channel, err := query.Fetch(ctx, r.cache, query.KeyChannel(username), func(ctx context.Context) (*models.Channel, error) {
		return r.users.Channel(ctx, username)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch channel: %s", rejectionMessage(err))
	}

	scope := query.Scope{Username: username}
	if user, ok := r.session.Current(); ok {
		scope.UserID = user.ID
	}
	_, err = r.dispatcher.Do(ctx, query.MutationToggleSubscription, scope, func(ctx context.Context) (any, error) {
		return nil, r.social.ToggleSubscription(ctx, channel.ID)
	})
	if err != nil {
		return fmt.Errorf("subscription toggle failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Subscription to @%s toggled\n", username)
	return nil
}

// SubList prints the channels the signed-in user subscribes to. The entry is
// invalidated when a subscription is toggled.
func (r *Runner) SubList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	user, _ := r.session.Current()
	channels, err := query.Fetch(ctx, r.cache, query.KeySubscriptions(user.ID), func(ctx context.Context) ([]models.Channel, error) {
		return r.social.SubscribedChannels(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %s", rejectionMessage(err))
	}

	if len(channels) == 0 {
		r.writePlain("No subscriptions yet\n")
		return nil
	}
	for _, ch := range channels {
		r.writePlain("@%-20s %s\n", ch.Username, ch.FullName)
	}
	return nil
}

// LikeVideo toggles the viewer's like on a video. The reported direction
// comes from the last-fetched isLiked flag, never from counting presses.
func (r *Runner) LikeVideo(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	video, err := query.Fetch(ctx, r.cache, query.KeyVideo(videoID), func(ctx context.Context) (*models.Video, error) {
		return r.videos.Get(ctx, videoID)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch video: %s", rejectionMessage(err))
	}

	direction := "Liked"
	if video.IsLiked {
		direction = "Unliked"
	}

	_, err = r.dispatcher.Do(ctx, query.MutationToggleVideoLike, query.Scope{VideoID: videoID}, func(ctx context.Context) (any, error) {
		return nil, r.social.ToggleVideoLike(ctx, videoID)
	})
	if err != nil {
		return fmt.Errorf("like toggle failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ %s %s\n", direction, video.Title)
	return nil
}

// LikeComment toggles the viewer's like on a comment.
func (r *Runner) LikeComment(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("id")
	if commentID == "" {
		return fmt.Errorf("%w: comment id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	scope := query.Scope{VideoID: cmd.String("video")}
	_, err := r.dispatcher.Do(ctx, query.MutationToggleCommentLike, scope, func(ctx context.Context) (any, error) {
		return nil, r.social.ToggleCommentLike(ctx, commentID)
	})
	if err != nil {
		return fmt.Errorf("like toggle failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Comment like toggled\n")
	return nil
}

// LikeTweet toggles the viewer's like on a tweet.
func (r *Runner) LikeTweet(ctx context.Context, cmd *cli.Command) error {
	tweetID := cmd.StringArg("id")
	if tweetID == "" {
		return fmt.Errorf("%w: tweet id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	var scope query.Scope
	if user, ok := r.session.Current(); ok {
		scope.UserID = user.ID
	}

	_, err := r.dispatcher.Do(ctx, query.MutationToggleTweetLike, scope, func(ctx context.Context) (any, error) {
		return nil, r.social.ToggleTweetLike(ctx, tweetID)
	})
	if err != nil {
		return fmt.Errorf("like toggle failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Tweet like toggled\n")
	return nil
}
