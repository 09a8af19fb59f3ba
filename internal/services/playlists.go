package services

import (
	"context"
	"fmt"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
)

// PlaylistService talks to the /playlist endpoints.
type PlaylistService struct {
	client *api.Client
}

func NewPlaylistService(client *api.Client) *PlaylistService {
	return &PlaylistService{client: client}
}

// ByUser returns a user's playlists with video ids only.
func (s *PlaylistService) ByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := s.client.Get(ctx, "/playlist/user/"+userID, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Get returns one playlist with its videos populated.
func (s *PlaylistService) Get(ctx context.Context, playlistID string) (*models.PlaylistDetail, error) {
	var p models.PlaylistDetail
	if err := s.client.Get(ctx, "/playlist/"+playlistID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create makes a new empty playlist.
func (s *PlaylistService) Create(ctx context.Context, name, description string) (*models.Playlist, error) {
	body := map[string]string{"name": name, "description": description}

	var p models.Playlist
	if err := s.client.Post(ctx, "/playlist", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update renames a playlist or changes its description.
func (s *PlaylistService) Update(ctx context.Context, playlistID, name, description string) (*models.Playlist, error) {
	body := map[string]string{"name": name, "description": description}

	var p models.Playlist
	if err := s.client.Patch(ctx, "/playlist/"+playlistID, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a playlist.
func (s *PlaylistService) Delete(ctx context.Context, playlistID string) error {
	return s.client.Delete(ctx, "/playlist/"+playlistID, nil)
}

// AddVideo puts a video into a playlist.
func (s *PlaylistService) AddVideo(ctx context.Context, videoID, playlistID string) (*models.Playlist, error) {
	var p models.Playlist
	path := fmt.Sprintf("/playlist/add/%s/%s", videoID, playlistID)
	if err := s.client.Patch(ctx, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RemoveVideo takes a video out of a playlist.
func (s *PlaylistService) RemoveVideo(ctx context.Context, videoID, playlistID string) (*models.Playlist, error) {
	var p models.Playlist
	path := fmt.Sprintf("/playlist/remove/%s/%s", videoID, playlistID)
	if err := s.client.Patch(ctx, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
