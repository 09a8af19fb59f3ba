package services

import (
	"context"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
)

// TweetService talks to the /tweets endpoints.
type TweetService struct {
	client *api.Client
}

func NewTweetService(client *api.Client) *TweetService {
	return &TweetService{client: client}
}

// List returns the global tweet feed, newest first.
func (s *TweetService) List(ctx context.Context) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := s.client.Get(ctx, "/tweets", &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// ByUser returns one author's tweets.
func (s *TweetService) ByUser(ctx context.Context, userID string) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := s.client.Get(ctx, "/tweets/user/"+userID, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// Create posts a tweet.
func (s *TweetService) Create(ctx context.Context, content string) (*models.Tweet, error) {
	var t models.Tweet
	if err := s.client.Post(ctx, "/tweets", map[string]string{"content": content}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update edits a tweet's content.
func (s *TweetService) Update(ctx context.Context, tweetID, content string) (*models.Tweet, error) {
	var t models.Tweet
	if err := s.client.Patch(ctx, "/tweets/"+tweetID, map[string]string{"content": content}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a tweet.
func (s *TweetService) Delete(ctx context.Context, tweetID string) error {
	return s.client.Delete(ctx, "/tweets/"+tweetID, nil)
}
