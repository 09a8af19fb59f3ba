package services

import (
	"context"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
)

// UserService talks to the /users endpoints that are not session lifecycle
// (login and logout live in the session package).
type UserService struct {
	client *api.Client
}

func NewUserService(client *api.Client) *UserService {
	return &UserService{client: client}
}

// Channel returns a channel profile with subscriber counts and the viewer's
// subscription flag.
func (s *UserService) Channel(ctx context.Context, username string) (*models.Channel, error) {
	var ch models.Channel
	if err := s.client.Get(ctx, "/users/channel/"+username, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// UpdateAccount changes the signed-in user's full name and email.
func (s *UserService) UpdateAccount(ctx context.Context, fullName, email string) (*models.User, error) {
	body := map[string]string{"fullName": fullName, "email": email}

	var u models.User
	if err := s.client.Patch(ctx, "/users/update-account", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateAvatar replaces the signed-in user's avatar image.
func (s *UserService) UpdateAvatar(ctx context.Context, avatar api.FilePart) (*models.User, error) {
	var u models.User
	if err := s.client.Upload(ctx, "PATCH", "/users/avatar", nil, []api.FilePart{avatar}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateCoverImage replaces the signed-in user's channel cover image.
func (s *UserService) UpdateCoverImage(ctx context.Context, cover api.FilePart) (*models.User, error) {
	var u models.User
	if err := s.client.Upload(ctx, "PATCH", "/users/coverImage", nil, []api.FilePart{cover}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// WatchHistory returns the signed-in user's watched videos, most recent first.
func (s *UserService) WatchHistory(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := s.client.Get(ctx, "/users/history", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}
