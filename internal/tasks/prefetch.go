// package tasks holds background jobs that run against the backend on the
// client's behalf. The only one today is the cache warmer.
package tasks

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/services"
	"github.com/dunerain/vidtube/internal/session"
	"github.com/dunerain/vidtube/internal/shared"
)

// Prefetcher warms the query cache with the entities the TUI lands on first:
// the home feed and tweets for everyone, plus the dashboard and playlists for
// a signed-in user. Requests go out one at a time through a rate limiter so a
// cold start does not hammer the backend.
type Prefetcher struct {
	cache     *query.Cache
	session   *session.Manager
	videos    *services.VideoService
	playlists *services.PlaylistService
	tweets    *services.TweetService
	dashboard *services.DashboardService
	limiter   *rate.Limiter
	logger    *log.Logger
}

// NewPrefetcher creates a Prefetcher issuing at most rps requests per second.
func NewPrefetcher(
	cache *query.Cache,
	sess *session.Manager,
	videos *services.VideoService,
	playlists *services.PlaylistService,
	tweets *services.TweetService,
	dashboard *services.DashboardService,
	rps float64,
	logger *log.Logger,
) *Prefetcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if rps <= 0 {
		rps = 5
	}
	return &Prefetcher{
		cache:     cache,
		session:   sess,
		videos:    videos,
		playlists: playlists,
		tweets:    tweets,
		dashboard: dashboard,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		logger:    logger,
	}
}

type job struct {
	key   string
	fetch query.FetchFunc
}

// Warm fills the cache. Individual fetch failures are logged and skipped; the
// warmer's job is best effort. It returns the number of keys warmed, stopping
// early only when the context is cancelled.
func (p *Prefetcher) Warm(ctx context.Context) (int, error) {
	jobs := []job{
		{query.KeyVideos, func(ctx context.Context) (any, error) {
			return p.videos.List(ctx, services.VideoListOptions{})
		}},
		{query.KeyTweets, func(ctx context.Context) (any, error) {
			return p.tweets.List(ctx)
		}},
	}

	if user, ok := p.session.Current(); ok {
		jobs = append(jobs, p.userJobs(user)...)
	}

	warmed := 0
	for _, j := range jobs {
		if err := p.limiter.Wait(ctx); err != nil {
			return warmed, err
		}
		if _, err := p.cache.Get(ctx, j.key, j.fetch); err != nil {
			if ctx.Err() != nil {
				return warmed, ctx.Err()
			}
			p.logger.Warn("prefetch failed", "key", j.key, "error", err)
			continue
		}
		p.logger.Debug("prefetched", "key", j.key)
		warmed++
	}

	return warmed, nil
}

func (p *Prefetcher) userJobs(user *models.User) []job {
	return []job{
		{query.KeyDashboardStats, func(ctx context.Context) (any, error) {
			return p.dashboard.Stats(ctx)
		}},
		{query.KeyDashboardVideos, func(ctx context.Context) (any, error) {
			return p.dashboard.Videos(ctx)
		}},
		{query.KeyPlaylists(user.ID), func(ctx context.Context) (any, error) {
			return p.playlists.ByUser(ctx, user.ID)
		}},
		{query.KeyUserTweets(user.ID), func(ctx context.Context) (any, error) {
			return p.tweets.ByUser(ctx, user.ID)
		}},
	}
}
