package services

import (
	"context"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
)

// DashboardService talks to the /dashboard endpoints for the signed-in
// creator's own channel.
type DashboardService struct {
	client *api.Client
}

func NewDashboardService(client *api.Client) *DashboardService {
	return &DashboardService{client: client}
}

// Stats returns the channel's aggregate numbers.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := s.client.Get(ctx, "/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Videos returns every video on the channel, published or not. The endpoint
// wraps the list in an extra object.
func (s *DashboardService) Videos(ctx context.Context) ([]models.Video, error) {
	var wrapper struct {
		Videos []models.Video `json:"videos"`
	}
	if err := s.client.Get(ctx, "/dashboard/videos", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Videos, nil
}
