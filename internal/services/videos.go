package services

import (
	"context"
	"net/url"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
)

// VideoService talks to the /videos endpoints.
type VideoService struct {
	client *api.Client
}

func NewVideoService(client *api.Client) *VideoService {
	return &VideoService{client: client}
}

// VideoListOptions filter and sort the published video feed.
type VideoListOptions struct {
	ListOptions
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

// List returns a page of published videos.
func (s *VideoService) List(ctx context.Context, opts VideoListOptions) ([]models.Video, error) {
	q := url.Values{}
	opts.ListOptions.apply(q)
	if opts.Query != "" {
		q.Set("query", opts.Query)
	}
	if opts.SortBy != "" {
		q.Set("sortBy", opts.SortBy)
	}
	if opts.SortType != "" {
		q.Set("sortType", opts.SortType)
	}
	if opts.UserID != "" {
		q.Set("userId", opts.UserID)
	}

	var p page[models.Video]
	if err := s.client.Get(ctx, withQuery("/videos", q), &p); err != nil {
		return nil, err
	}
	return p.Docs, nil
}

// Get returns one video with its owner, like count, and viewer flags.
func (s *VideoService) Get(ctx context.Context, videoID string) (*models.Video, error) {
	var v models.Video
	if err := s.client.Get(ctx, "/videos/"+videoID, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// VideoUpload carries the multipart fields of a new video.
type VideoUpload struct {
	Title       string
	Description string
	VideoFile   api.FilePart
	Thumbnail   api.FilePart
}

// Upload publishes a new video.
func (s *VideoService) Upload(ctx context.Context, up VideoUpload) (*models.Video, error) {
	fields := map[string]string{
		"title":       up.Title,
		"description": up.Description,
	}
	files := []api.FilePart{up.VideoFile, up.Thumbnail}

	var v models.Video
	if err := s.client.Upload(ctx, "POST", "/videos", fields, files, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// VideoUpdate carries the editable fields of a video. A nil Thumbnail keeps
// the current one.
type VideoUpdate struct {
	Title       string
	Description string
	Thumbnail   *api.FilePart
}

// Update edits a video's title, description, and optionally its thumbnail.
func (s *VideoService) Update(ctx context.Context, videoID string, up VideoUpdate) (*models.Video, error) {
	fields := map[string]string{}
	if up.Title != "" {
		fields["title"] = up.Title
	}
	if up.Description != "" {
		fields["description"] = up.Description
	}

	var files []api.FilePart
	if up.Thumbnail != nil {
		files = append(files, *up.Thumbnail)
	}

	var v models.Video
	if err := s.client.Upload(ctx, "PATCH", "/videos/"+videoID, fields, files, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes a video.
func (s *VideoService) Delete(ctx context.Context, videoID string) error {
	return s.client.Delete(ctx, "/videos/"+videoID, nil)
}

// TogglePublish flips a video between published and hidden and returns the
// new state.
func (s *VideoService) TogglePublish(ctx context.Context, videoID string) (*models.Video, error) {
	var v models.Video
	if err := s.client.Patch(ctx, "/videos/toggle/publish/"+videoID, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
