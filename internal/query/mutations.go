package query

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dunerain/vidtube/internal/shared"
)

// Kind identifies one user-initiated write against the backend.
type Kind int

const (
	MutationUploadVideo Kind = iota
	MutationUpdateVideo
	MutationDeleteVideo
	MutationTogglePublish
	MutationCreateComment
	MutationUpdateComment
	MutationDeleteComment
	MutationCreatePlaylist
	MutationUpdatePlaylist
	MutationDeletePlaylist
	MutationPlaylistAdd
	MutationPlaylistRemove
	MutationCreateTweet
	MutationUpdateTweet
	MutationDeleteTweet
	MutationToggleVideoLike
	MutationToggleCommentLike
	MutationToggleTweetLike
	MutationToggleSubscription
	MutationUpdateAccount
	MutationUpdateAvatar
	MutationUpdateCoverImage
)

var kindNames = map[Kind]string{
	MutationUploadVideo:        "upload-video",
	MutationUpdateVideo:        "update-video",
	MutationDeleteVideo:        "delete-video",
	MutationTogglePublish:      "toggle-publish",
	MutationCreateComment:      "create-comment",
	MutationUpdateComment:      "update-comment",
	MutationDeleteComment:      "delete-comment",
	MutationCreatePlaylist:     "create-playlist",
	MutationUpdatePlaylist:     "update-playlist",
	MutationDeletePlaylist:     "delete-playlist",
	MutationPlaylistAdd:        "playlist-add",
	MutationPlaylistRemove:     "playlist-remove",
	MutationCreateTweet:        "create-tweet",
	MutationUpdateTweet:        "update-tweet",
	MutationDeleteTweet:        "delete-tweet",
	MutationToggleVideoLike:    "toggle-video-like",
	MutationToggleCommentLike:  "toggle-comment-like",
	MutationToggleTweetLike:    "toggle-tweet-like",
	MutationToggleSubscription: "toggle-subscription",
	MutationUpdateAccount:      "update-account",
	MutationUpdateAvatar:       "update-avatar",
	MutationUpdateCoverImage:   "update-cover-image",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Scope carries the identifiers a mutation's invalidation patterns expand
// with. Only the fields a given kind's patterns mention need to be set.
type Scope struct {
	VideoID    string
	PlaylistID string
	UserID     string
	Username   string
}

// invalidationTable maps each mutation kind to the cache keys its success
// makes stale. Placeholders expand from [Scope]; a pattern whose placeholder
// is not set in the scope is skipped. Kept as one table so the write-side
// contract is auditable in a single place.
var invalidationTable = map[Kind][]string{
	MutationUploadVideo:   {PatternVideoFeeds, KeyDashboardVideos, KeyDashboardStats, "channelvideos:{user}"},
	MutationUpdateVideo:   {"video:{video}", PatternVideoFeeds, KeyDashboardVideos},
	MutationDeleteVideo:   {"video:{video}", PatternVideoFeeds, KeyDashboardVideos, KeyDashboardStats, "channelvideos:{user}"},
	MutationTogglePublish: {"video:{video}", KeyDashboardVideos},

	MutationCreateComment: {"comments:{video}"},
	MutationUpdateComment: {"comments:{video}"},
	MutationDeleteComment: {"comments:{video}"},

	MutationCreatePlaylist: {"playlists:{user}"},
	MutationUpdatePlaylist: {"playlists:{user}", "playlist:{playlist}"},
	MutationDeletePlaylist: {"playlists:{user}", "playlist:{playlist}"},
	MutationPlaylistAdd:    {"playlists:{user}", "playlist:{playlist}"},
	MutationPlaylistRemove: {"playlists:{user}", "playlist:{playlist}"},

	MutationCreateTweet: {KeyTweets, "usertweets:{user}"},
	MutationUpdateTweet: {KeyTweets, "usertweets:{user}"},
	MutationDeleteTweet: {KeyTweets, "usertweets:{user}"},

	MutationToggleVideoLike:    {"video:{video}", KeyLikedVideos},
	MutationToggleCommentLike:  {"comments:{video}"},
	MutationToggleTweetLike:    {KeyTweets, "usertweets:{user}"},
	MutationToggleSubscription: {"video:{video}", "channel:{username}", "subscriptions:{user}", KeyDashboardStats},

	MutationUpdateAccount:    {"channel:{username}"},
	MutationUpdateAvatar:     {"channel:{username}"},
	MutationUpdateCoverImage: {"channel:{username}"},
}

// InvalidatedKeys expands the invalidation table for one kind and scope.
func InvalidatedKeys(kind Kind, scope Scope) []string {
	replacer := strings.NewReplacer(
		"{video}", scope.VideoID,
		"{playlist}", scope.PlaylistID,
		"{user}", scope.UserID,
		"{username}", scope.Username,
	)

	var keys []string
	for _, pattern := range invalidationTable[kind] {
		expanded := replacer.Replace(pattern)
		// A pattern left with an empty suffix means its scope field was not
		// set; there is no concrete key to invalidate.
		if strings.HasSuffix(expanded, ":") {
			continue
		}
		keys = append(keys, expanded)
	}
	return keys
}

// MutationFunc performs the network write for one mutation.
type MutationFunc func(ctx context.Context) (any, error)

// Dispatcher serializes user-initiated writes against the cache. It refuses
// to dispatch while signed out, refuses a re-trigger of a mutation that is
// still pending, and on success invalidates exactly the keys the table names.
// A failed mutation leaves the cache untouched.
type Dispatcher struct {
	cache  *Cache
	gate   func() error
	logger *log.Logger

	mu      sync.Mutex
	pending map[string]bool
}

// NewDispatcher creates a Dispatcher over the given cache. gate is consulted
// before any request leaves the client; it returns nil when an authenticated
// session is established. A nil gate dispatches unconditionally.
func NewDispatcher(cache *Cache, gate func() error, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dispatcher{
		cache:   cache,
		gate:    gate,
		logger:  logger,
		pending: make(map[string]bool),
	}
}

// Do runs one mutation. The pending guard is scoped to kind plus scope, so a
// double-trigger of the same like button is refused while a like on a
// different video proceeds.
func (d *Dispatcher) Do(ctx context.Context, kind Kind, scope Scope, op MutationFunc) (any, error) {
	if d.gate != nil {
		if err := d.gate(); err != nil {
			return nil, err
		}
	}

	guard := pendingKey(kind, scope)

	d.mu.Lock()
	if d.pending[guard] {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", shared.ErrMutationPending, kind)
	}
	d.pending[guard] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.pending, guard)
		d.mu.Unlock()
	}()

	result, err := op(ctx)
	if err != nil {
		// The cached pre-mutation state is still the truth.
		d.logger.Debug("mutation failed", "kind", kind, "error", err)
		return nil, err
	}

	keys := InvalidatedKeys(kind, scope)
	d.logger.Debug("mutation succeeded", "kind", kind, "invalidates", keys)
	d.cache.Invalidate(keys...)

	return result, nil
}

// Pending reports whether a mutation with this kind and scope is in flight,
// for views that disable their triggering control.
func (d *Dispatcher) Pending(kind Kind, scope Scope) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[pendingKey(kind, scope)]
}

func pendingKey(kind Kind, scope Scope) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", kind, scope.VideoID, scope.PlaylistID, scope.UserID, scope.Username)
}
