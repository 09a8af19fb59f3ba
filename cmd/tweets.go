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

// TweetsList prints the tweet feed, or one user's tweets.
func (r *Runner) TweetsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	var tweets []models.Tweet
	var err error

	if userID := cmd.String("user"); userID != "" {
		tweets, err = query.Fetch(ctx, r.cache, query.KeyUserTweets(userID), func(ctx context.Context) ([]models.Tweet, error) {
			return r.tweets.ByUser(ctx, userID)
		})
	} else {
		tweets, err = query.Fetch(ctx, r.cache, query.KeyTweets, func(ctx context.Context) ([]models.Tweet, error) {
			return r.tweets.List(ctx)
		})
	}
	if err != nil {
		return fmt.Errorf("failed to list tweets: %s", rejectionMessage(err))
	}

	if cmd.Bool("json") {
		return r.writeJSON(tweets, true)
	}
	formatter.TweetsList(r.output, tweets)
	return nil
}

// TweetsPost publishes a tweet.
func (r *Runner) TweetsPost(ctx context.Context, cmd *cli.Command) error {
	content := cmd.StringArg("content")
	if content == "" {
		return fmt.Errorf("%w: tweet content", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}
	user, _ := r.session.Current()

	result, err := r.dispatcher.Do(ctx, query.MutationCreateTweet, query.Scope{UserID: user.ID}, func(ctx context.Context) (any, error) {
		return r.tweets.Create(ctx, content)
	})
	if err != nil {
		return fmt.Errorf("post failed: %s", rejectionMessage(err))
	}

	tweet := result.(*models.Tweet)
	r.writePlain("✓ Posted (%s)\n", tweet.ID)
	return nil
}

// TweetsDelete removes one of the user's tweets.
func (r *Runner) TweetsDelete(ctx context.Context, cmd *cli.Command) error {
	tweetID := cmd.StringArg("id")
	if tweetID == "" {
		return fmt.Errorf("%w: tweet id", shared.ErrMissingArgument)
	}
	if err := r.requireAuth(ctx); err != nil {
		return err
	}
	user, _ := r.session.Current()

	_, err := r.dispatcher.Do(ctx, query.MutationDeleteTweet, query.Scope{UserID: user.ID}, func(ctx context.Context) (any, error) {
		return nil, r.tweets.Delete(ctx, tweetID)
	})
	if err != nil {
		return fmt.Errorf("delete failed: %s", rejectionMessage(err))
	}

	r.writePlain("✓ Deleted tweet %s\n", tweetID)
	return nil
}
