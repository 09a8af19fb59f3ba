package services

import (
	"context"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
)

// SocialService talks to the /likes and /subscriptions endpoints. The toggle
// calls carry no body: the server flips the state and the caller derives the
// direction for display from the last-fetched isLiked/isSubscribed flag.
type SocialService struct {
	client *api.Client
}

func NewSocialService(client *api.Client) *SocialService {
	return &SocialService{client: client}
}

// ToggleVideoLike flips the viewer's like on a video.
func (s *SocialService) ToggleVideoLike(ctx context.Context, videoID string) error {
	return s.client.Post(ctx, "/likes/toggle/v/"+videoID, nil, nil)
}

// ToggleCommentLike flips the viewer's like on a comment.
func (s *SocialService) ToggleCommentLike(ctx context.Context, commentID string) error {
	return s.client.Post(ctx, "/likes/toggle/c/"+commentID, nil, nil)
}

// ToggleTweetLike flips the viewer's like on a tweet.
func (s *SocialService) ToggleTweetLike(ctx context.Context, tweetID string) error {
	return s.client.Post(ctx, "/likes/toggle/t/"+tweetID, nil, nil)
}

// LikedVideos returns the videos the viewer has liked.
func (s *SocialService) LikedVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := s.client.Get(ctx, "/likes/videos", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// ToggleSubscription flips the viewer's subscription to a channel.
func (s *SocialService) ToggleSubscription(ctx context.Context, channelID string) error {
	return s.client.Post(ctx, "/subscriptions/c/"+channelID, nil, nil)
}

// SubscribedChannels returns the channels a user subscribes to.
func (s *SocialService) SubscribedChannels(ctx context.Context, subscriberID string) ([]models.Channel, error) {
	var channels []models.Channel
	if err := s.client.Get(ctx, "/subscriptions/u/"+subscriberID, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}
