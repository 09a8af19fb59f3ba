package services

import (
	"context"
	"net/url"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
)

// CommentService talks to the /comments endpoints.
type CommentService struct {
	client *api.Client
}

func NewCommentService(client *api.Client) *CommentService {
	return &CommentService{client: client}
}

// List returns a page of comments for a video, newest first.
func (s *CommentService) List(ctx context.Context, videoID string, opts ListOptions) ([]models.Comment, error) {
	q := url.Values{}
	opts.apply(q)

	var p page[models.Comment]
	if err := s.client.Get(ctx, withQuery("/comments/"+videoID, q), &p); err != nil {
		return nil, err
	}
	return p.Docs, nil
}

// Add posts a comment on a video.
func (s *CommentService) Add(ctx context.Context, videoID, content string) (*models.Comment, error) {
	var c models.Comment
	if err := s.client.Post(ctx, "/comments/"+videoID, map[string]string{"content": content}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update edits a comment's content.
func (s *CommentService) Update(ctx context.Context, commentID, content string) (*models.Comment, error) {
	var c models.Comment
	if err := s.client.Patch(ctx, "/comments/c/"+commentID, map[string]string{"content": content}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, commentID string) error {
	return s.client.Delete(ctx, "/comments/c/"+commentID, nil)
}
