package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dunerain/vidtube/internal/shared"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestCacheGet(t *testing.T) {
	t.Run("Caches Resolved Value", func(t *testing.T) {
		c := NewCache(nil)
		var calls atomic.Int32

		fetch := func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "v1", nil
		}

		for i := 0; i < 3; i++ {
			got, err := Fetch(context.Background(), c, KeyVideos, fetch)
			if err != nil {
				t.Fatalf("fetch failed: %v", err)
			}
			if got != "v1" {
				t.Errorf("expected v1, got %s", got)
			}
		}

		if n := calls.Load(); n != 1 {
			t.Errorf("expected 1 network call, got %d", n)
		}
	})

	t.Run("Concurrent Gets Coalesce", func(t *testing.T) {
		c := NewCache(nil)
		var calls atomic.Int32
		release := make(chan struct{})

		fetch := func(ctx context.Context) (any, error) {
			calls.Add(1)
			<-release
			return "shared", nil
		}

		var wg sync.WaitGroup
		results := make([]any, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := c.Get(context.Background(), KeyVideo("a"), fetch)
				if err != nil {
					t.Errorf("get %d failed: %v", i, err)
				}
				results[i] = v
			}(i)
		}

		waitFor(t, func() bool { return calls.Load() == 1 })
		close(release)
		wg.Wait()

		if n := calls.Load(); n != 1 {
			t.Errorf("expected 1 network call for 10 concurrent gets, got %d", n)
		}
		for i, v := range results {
			if v != "shared" {
				t.Errorf("result %d: expected shared, got %v", i, v)
			}
		}
	})

	t.Run("Failed Entry Retries On Next Get", func(t *testing.T) {
		c := NewCache(nil)
		var calls atomic.Int32

		fetch := func(ctx context.Context) (any, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("boom")
			}
			return "recovered", nil
		}

		if _, err := c.Get(context.Background(), KeyTweets, fetch); err == nil {
			t.Fatal("expected first get to fail")
		}

		res, ok := c.Peek(KeyTweets)
		if !ok || res.State != StateFailed {
			t.Fatalf("expected failed state, got %+v", res)
		}

		got, err := c.Get(context.Background(), KeyTweets, fetch)
		if err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if got != "recovered" {
			t.Errorf("expected recovered, got %v", got)
		}
	})

	t.Run("Cancellation Leaves Prior Value", func(t *testing.T) {
		c := NewCache(nil)
		c.Observe(KeyVideos)
		defer c.Release(KeyVideos)

		var cancelled atomic.Bool
		var seeded atomic.Bool
		fetch := func(ctx context.Context) (any, error) {
			if seeded.CompareAndSwap(false, true) {
				return "old", nil
			}
			cancelled.Store(true)
			return nil, context.Canceled
		}

		if _, err := c.Get(context.Background(), KeyVideos, fetch); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		// Invalidation of an observed key triggers a background refetch; here
		// it reports cancellation, which must not disturb the cached value.
		c.Invalidate(KeyVideos)
		waitFor(t, cancelled.Load)

		res, ok := c.Peek(KeyVideos)
		if !ok || res.State != StateReady || res.Value != "old" {
			t.Errorf("expected prior value to survive cancellation, got %+v", res)
		}
	})

	t.Run("Cancellation With No Prior Value Removes Entry", func(t *testing.T) {
		c := NewCache(nil)

		ctx, cancel := context.WithCancel(context.Background())
		entered := make(chan struct{})

		done := make(chan error, 1)
		go func() {
			_, err := c.Get(ctx, KeyVideo("z"), func(ctx context.Context) (any, error) {
				close(entered)
				<-ctx.Done()
				return nil, ctx.Err()
			})
			done <- err
		}()

		<-entered
		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}

		if _, ok := c.Peek(KeyVideo("z")); ok {
			t.Error("expected entry removed after cancelled first fetch")
		}
	})

	t.Run("Dependency Gate", func(t *testing.T) {
		c := NewCache(nil)

		_, err := c.Get(context.Background(), KeyChannelVideos("u1"),
			func(ctx context.Context) (any, error) { return nil, nil },
			DependsOn(KeyChannel("alice")))
		if !errors.Is(err, shared.ErrDependencyNotReady) {
			t.Fatalf("expected ErrDependencyNotReady, got %v", err)
		}

		if _, err := c.Get(context.Background(), KeyChannel("alice"), func(ctx context.Context) (any, error) {
			return "profile", nil
		}); err != nil {
			t.Fatalf("dependency fetch failed: %v", err)
		}

		got, err := c.Get(context.Background(), KeyChannelVideos("u1"),
			func(ctx context.Context) (any, error) { return "videos", nil },
			DependsOn(KeyChannel("alice")))
		if err != nil {
			t.Fatalf("gated fetch failed: %v", err)
		}
		if got != "videos" {
			t.Errorf("expected videos, got %v", got)
		}
	})

	t.Run("Typed Fetch Rejects Mismatched Entry", func(t *testing.T) {
		c := NewCache(nil)

		if _, err := Fetch(context.Background(), c, KeyVideos, func(ctx context.Context) (int, error) {
			return 42, nil
		}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		if _, err := Fetch(context.Background(), c, KeyVideos, func(ctx context.Context) (string, error) {
			return "", nil
		}); err == nil {
			t.Error("expected type mismatch error")
		}
	})
}

func TestCacheInvalidate(t *testing.T) {
	t.Run("Unobserved Entries Are Dropped", func(t *testing.T) {
		c := NewCache(nil)
		var calls atomic.Int32

		fetch := func(ctx context.Context) (any, error) {
			return fmt.Sprintf("v%d", calls.Add(1)), nil
		}

		if _, err := c.Get(context.Background(), KeyVideos, fetch); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		c.Invalidate(KeyVideos)

		if _, ok := c.Peek(KeyVideos); ok {
			t.Error("expected dropped entry")
		}
		if n := calls.Load(); n != 1 {
			t.Errorf("expected no eager refetch of unobserved key, got %d calls", n)
		}

		got, err := c.Get(context.Background(), KeyVideos, fetch)
		if err != nil {
			t.Fatalf("lazy refetch failed: %v", err)
		}
		if got != "v2" {
			t.Errorf("expected v2 after lazy refetch, got %v", got)
		}
	})

	t.Run("Observed Entries Refetch In Background", func(t *testing.T) {
		c := NewCache(nil)
		var calls atomic.Int32

		fetch := func(ctx context.Context) (any, error) {
			return fmt.Sprintf("v%d", calls.Add(1)), nil
		}

		c.Observe(KeyTweets)
		defer c.Release(KeyTweets)

		if _, err := c.Get(context.Background(), KeyTweets, fetch); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		c.Invalidate(KeyTweets)

		waitFor(t, func() bool {
			res, ok := c.Peek(KeyTweets)
			return ok && !res.Stale && res.Value == "v2"
		})
	})

	t.Run("Stale Value Served While Revalidating", func(t *testing.T) {
		c := NewCache(nil)
		release := make(chan struct{})
		var second atomic.Bool

		fetch := func(ctx context.Context) (any, error) {
			if second.Swap(true) {
				<-release
				return "fresh", nil
			}
			return "stale", nil
		}

		c.Observe(KeyDashboardStats)
		defer c.Release(KeyDashboardStats)
		if _, err := c.Get(context.Background(), KeyDashboardStats, fetch); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		c.Invalidate(KeyDashboardStats)

		res, ok := c.Peek(KeyDashboardStats)
		if !ok || res.State != StateReady || res.Value != "stale" {
			t.Fatalf("expected stale value to remain readable, got %+v", res)
		}
		if !res.Stale {
			t.Error("expected entry to be flagged stale")
		}

		close(release)
		waitFor(t, func() bool {
			res, ok := c.Peek(KeyDashboardStats)
			return ok && res.Value == "fresh" && !res.Stale
		})
	})

	t.Run("Prefix Pattern Matches Family", func(t *testing.T) {
		c := NewCache(nil)
		noop := func(ctx context.Context) (any, error) { return "x", nil }

		for _, key := range []string{KeyComments("v1"), KeyComments("v2"), KeyVideo("v1")} {
			if _, err := c.Get(context.Background(), key, noop); err != nil {
				t.Fatalf("seed %s failed: %v", key, err)
			}
		}

		c.Invalidate("comments:*")

		if _, ok := c.Peek(KeyComments("v1")); ok {
			t.Error("expected comments:v1 dropped")
		}
		if _, ok := c.Peek(KeyComments("v2")); ok {
			t.Error("expected comments:v2 dropped")
		}
		if _, ok := c.Peek(KeyVideo("v1")); !ok {
			t.Error("expected video:v1 untouched")
		}
	})

	t.Run("Superseded Background Refresh Retries", func(t *testing.T) {
		c := NewCache(nil)
		entered := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int32

		fetch := func(ctx context.Context) (any, error) {
			switch calls.Add(1) {
			case 1:
				return "v1", nil
			case 2:
				close(entered)
				<-release
				return "v2", nil
			default:
				return "v3", nil
			}
		}

		c.Observe(KeyVideos)
		defer c.Release(KeyVideos)
		if _, err := c.Get(context.Background(), KeyVideos, fetch); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		c.Invalidate(KeyVideos)
		<-entered
		// A second invalidation lands while the refresh is in flight. With no
		// Get waiter to retry, the refresh itself must go around.
		c.Invalidate(KeyVideos)
		close(release)

		waitFor(t, func() bool {
			res, ok := c.Peek(KeyVideos)
			return ok && !res.Stale && res.Value == "v3"
		})
	})

	t.Run("In Flight Fetch Is Superseded", func(t *testing.T) {
		c := NewCache(nil)
		entered := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int32

		fetch := func(ctx context.Context) (any, error) {
			n := calls.Add(1)
			if n == 1 {
				close(entered)
				<-release
				return "pre-mutation", nil
			}
			return "post-mutation", nil
		}

		done := make(chan any, 1)
		go func() {
			v, _ := c.Get(context.Background(), KeyVideo("x"), fetch)
			done <- v
		}()

		<-entered
		c.Invalidate(KeyVideo("x"))
		close(release)

		if v := <-done; v != "post-mutation" {
			t.Errorf("expected superseded fetch to retry and return post-mutation, got %v", v)
		}
		res, ok := c.Peek(KeyVideo("x"))
		if !ok || res.Value != "post-mutation" {
			t.Errorf("expected post-mutation cached, got %+v", res)
		}
	})

	t.Run("InvalidateAll Drops Everything", func(t *testing.T) {
		c := NewCache(nil)
		noop := func(ctx context.Context) (any, error) { return 1, nil }

		c.Get(context.Background(), KeyVideos, noop)
		c.Get(context.Background(), KeyTweets, noop)
		c.InvalidateAll()

		if _, ok := c.Peek(KeyVideos); ok {
			t.Error("expected videos dropped")
		}
		if _, ok := c.Peek(KeyTweets); ok {
			t.Error("expected tweets dropped")
		}
	})
}

func TestMatchAny(t *testing.T) {
	cases := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"videos", "videos", true},
		{"videos", "video:abc", false},
		{"video:*", "video:abc", true},
		{"video:*", "videos", false},
		{"comments:*", "comments:v1", true},
		{"playlist:*", "playlists:u1", false},
	}

	for _, tc := range cases {
		if got := matchAny([]string{tc.pattern}, tc.key); got != tc.want {
			t.Errorf("matchAny(%q, %q) = %v, want %v", tc.pattern, tc.key, got, tc.want)
		}
	}
}
