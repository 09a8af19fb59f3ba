package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/services"
	"github.com/dunerain/vidtube/internal/session"
)

func newWarmTestServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var paths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		var data any
		switch r.URL.Path {
		case "/users/currentUser":
			data = map[string]string{"_id": "u1", "username": "alice"}
		case "/videos":
			data = map[string]any{"docs": []any{}}
		case "/dashboard/videos":
			data = map[string]any{"videos": []any{}}
		case "/dashboard/stats":
			data = map[string]any{}
		default:
			data = []any{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}))
	t.Cleanup(srv.Close)

	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), paths...)
	}
}

func TestPrefetcherWarm(t *testing.T) {
	t.Run("Signed In Warms Feed And Own Entities", func(t *testing.T) {
		srv, requested := newWarmTestServer(t)
		client := api.NewClient(srv.URL, srv.Client(), nil)
		cache := query.NewCache(nil)

		sess := session.NewManager(client, nil, cache, nil)
		if err := sess.Bootstrap(context.Background()); err != nil {
			t.Fatalf("bootstrap failed: %v", err)
		}

		p := NewPrefetcher(cache, sess,
			services.NewVideoService(client),
			services.NewPlaylistService(client),
			services.NewTweetService(client),
			services.NewDashboardService(client),
			1000, nil)

		warmed, err := p.Warm(context.Background())
		if err != nil {
			t.Fatalf("warm failed: %v", err)
		}
		if warmed != 6 {
			t.Errorf("expected 6 keys warmed, got %d", warmed)
		}

		for _, key := range []string{
			query.KeyVideos, query.KeyTweets,
			query.KeyDashboardStats, query.KeyDashboardVideos,
			query.KeyPlaylists("u1"), query.KeyUserTweets("u1"),
		} {
			if res, ok := cache.Peek(key); !ok || res.State != query.StateReady {
				t.Errorf("expected %s warmed, got ok=%v res=%+v", key, ok, res)
			}
		}

		paths := requested()
		if len(paths) != 7 { // bootstrap + 6 warms
			t.Errorf("expected 7 requests, got %d: %v", len(paths), paths)
		}
	})

	t.Run("Anonymous Warms Public Feed Only", func(t *testing.T) {
		srv, _ := newWarmTestServer(t)
		client := api.NewClient(srv.URL, srv.Client(), nil)
		cache := query.NewCache(nil)
		sess := session.NewManager(client, nil, cache, nil)

		p := NewPrefetcher(cache, sess,
			services.NewVideoService(client),
			services.NewPlaylistService(client),
			services.NewTweetService(client),
			services.NewDashboardService(client),
			1000, nil)

		warmed, err := p.Warm(context.Background())
		if err != nil {
			t.Fatalf("warm failed: %v", err)
		}
		if warmed != 2 {
			t.Errorf("expected 2 keys warmed, got %d", warmed)
		}
		if _, ok := cache.Peek(query.KeyDashboardStats); ok {
			t.Error("expected no dashboard warm for anonymous session")
		}
	})

	t.Run("Cancellation Stops Early", func(t *testing.T) {
		srv, _ := newWarmTestServer(t)
		client := api.NewClient(srv.URL, srv.Client(), nil)
		cache := query.NewCache(nil)
		sess := session.NewManager(client, nil, cache, nil)

		p := NewPrefetcher(cache, sess,
			services.NewVideoService(client),
			services.NewPlaylistService(client),
			services.NewTweetService(client),
			services.NewDashboardService(client),
			1000, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := p.Warm(ctx); err == nil {
			t.Error("expected error from cancelled warm")
		}
	})
}
