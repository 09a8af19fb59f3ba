// package query implements the client-side data synchronization layer: a
// keyed cache of server entities and the mutation dispatcher that invalidates
// it.
//
// The cache is the single owner of fetched entity state. Views read through
// [Cache.Get], mutations go through [Dispatcher.Do], and the mapping from
// mutation kind to stale keys lives in one table in mutations.go.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dunerain/vidtube/internal/shared"
)

// State is the tri-state of a cache entry surfaced to callers.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchFunc loads the value for a cache key from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// flight is one in-progress fetch. Concurrent observers of the same key wait
// on done instead of issuing their own request.
type flight struct {
	done       chan struct{}
	val        any
	err        error
	superseded bool
}

type entry struct {
	state     State
	value     any
	err       error
	stale     bool
	gen       uint64
	flight    *flight
	fetch     FetchFunc
	observers int
}

// Result is a snapshot of an entry for non-blocking reads.
type Result struct {
	State State
	Value any
	Err   error
	Stale bool
}

// Cache is the entity query cache. All cached entity state lives here and is
// serialized by one mutex; entries are never persisted.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  *log.Logger
}

// NewCache creates an empty Cache.
func NewCache(logger *log.Logger) *Cache {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

type getOptions struct {
	dependsOn []string
}

// GetOption configures a single Get call.
type GetOption func(*getOptions)

// DependsOn declares that this key must not fetch until the given keys have
// resolved values (e.g. channel videos need the channel profile's id first).
func DependsOn(keys ...string) GetOption {
	return func(o *getOptions) { o.dependsOn = append(o.dependsOn, keys...) }
}

// Get returns the cached value for key, fetching it if the entry is missing,
// stale, or previously failed. Concurrent calls for the same key coalesce
// into a single network call; everyone gets the same resolution.
func (c *Cache) Get(ctx context.Context, key string, fetch FetchFunc, opts ...GetOption) (any, error) {
	var o getOptions
	for _, fn := range opts {
		fn(&o)
	}

	for {
		c.mu.Lock()

		for _, dep := range o.dependsOn {
			d, ok := c.entries[dep]
			if !ok || d.state != StateReady || d.stale {
				c.mu.Unlock()
				return nil, fmt.Errorf("%w: %s waits on %s", shared.ErrDependencyNotReady, key, dep)
			}
		}

		e, ok := c.entries[key]
		if !ok {
			e = &entry{state: StateLoading}
			c.entries[key] = e
		}
		e.fetch = fetch

		if fl := e.flight; fl != nil {
			c.mu.Unlock()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-fl.done:
			}
			if fl.superseded {
				continue
			}
			return fl.val, fl.err
		}

		if e.state == StateReady && !e.stale {
			v := e.value
			c.mu.Unlock()
			return v, nil
		}

		fl := &flight{done: make(chan struct{})}
		e.gen++
		gen := e.gen
		e.flight = fl
		c.mu.Unlock()

		c.logger.Debug("cache fetch", "key", key, "gen", gen)
		val, err := fetch(ctx)

		c.mu.Lock()
		c.resolve(key, e, fl, gen, val, err)
		c.mu.Unlock()

		if fl.superseded {
			continue
		}
		return fl.val, fl.err
	}
}

// resolve applies a finished fetch under the cache lock. Last-fetch-wins: the
// result only lands if no later fetch has been issued for the key since.
func (c *Cache) resolve(key string, e *entry, fl *flight, gen uint64, val any, err error) {
	if e.gen != gen {
		if e.flight == fl {
			e.flight = nil
		}
		fl.superseded = true
		close(fl.done)
		c.logger.Debug("cache fetch superseded", "key", key, "gen", gen)
		return
	}

	e.flight = nil
	switch {
	case err == nil:
		e.state = StateReady
		e.value = val
		e.err = nil
		e.stale = false
	case errors.Is(err, context.Canceled):
		// A cancelled fetch leaves no trace: with no prior value the entry
		// goes back to missing so the next observer refetches.
		c.logger.Debug("cache fetch cancelled", "key", key)
		if e.state == StateLoading && e.observers == 0 {
			delete(c.entries, key)
		}
	default:
		e.state = StateFailed
		e.err = err
		e.stale = false
	}

	fl.val, fl.err = val, err
	close(fl.done)
}

// Peek returns the entry's current snapshot without triggering a fetch. Views
// use it to keep showing stale data while a revalidation is in flight.
func (c *Cache) Peek(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	return Result{State: e.state, Value: e.value, Err: e.err, Stale: e.stale}, true
}

// Observe registers a mounted view on a key. Observed keys are refetched
// eagerly on invalidation; unobserved keys are dropped and refetched lazily.
func (c *Cache) Observe(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{state: StateLoading}
		c.entries[key] = e
	}
	e.observers++
}

// Release unregisters a mounted view from a key.
func (c *Cache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.observers > 0 {
		e.observers--
	}
}

// Invalidate marks every entry matching one of the patterns as stale. A
// pattern is an exact key, or a prefix ending in '*'. Observed entries get a
// background refetch; unobserved ones are dropped and refetched on next Get.
// An entry with a fetch already in flight is superseded so its (pre-mutation)
// result cannot land as current.
func (c *Cache) Invalidate(patterns ...string) {
	c.mu.Lock()
	var refetch []string
	for key, e := range c.entries {
		if !matchAny(patterns, key) {
			continue
		}
		c.logger.Debug("cache invalidate", "key", key)

		if e.flight != nil {
			e.gen++
			e.stale = true
			continue
		}

		if e.observers > 0 {
			e.stale = true
			if e.fetch != nil {
				refetch = append(refetch, key)
			}
		} else {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()

	for _, key := range refetch {
		go c.refresh(key)
	}
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// refresh refetches one observed, stale key using its registered fetch
// function. Stale data keeps being served from the entry until the new value
// resolves. A refresh superseded by another invalidation goes around again:
// no Get waiter exists to retry on its behalf, and the entry would otherwise
// sit stale until the next read.
func (c *Cache) refresh(key string) {
	for {
		c.mu.Lock()
		e, ok := c.entries[key]
		if !ok || e.flight != nil || !e.stale || e.fetch == nil {
			c.mu.Unlock()
			return
		}

		fetch := e.fetch
		fl := &flight{done: make(chan struct{})}
		e.gen++
		gen := e.gen
		e.flight = fl
		c.mu.Unlock()

		val, err := fetch(context.Background())

		c.mu.Lock()
		c.resolve(key, e, fl, gen, val, err)
		c.mu.Unlock()

		if !fl.superseded {
			return
		}
	}
}

func matchAny(patterns []string, key string) bool {
	for _, p := range patterns {
		if p == key {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, "*"); ok && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Fetch is the typed read path over [Cache.Get].
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error), opts ...GetOption) (T, error) {
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) { return fetch(ctx) }, opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	val, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, not %T", key, v, zero)
	}
	return val, nil
}
