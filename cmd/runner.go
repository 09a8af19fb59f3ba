package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/repositories"
	"github.com/dunerain/vidtube/internal/services"
	"github.com/dunerain/vidtube/internal/session"
	"github.com/dunerain/vidtube/internal/shared"
	"github.com/dunerain/vidtube/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for
// each command action.
type Runner struct {
	config     *shared.Config
	client     *api.Client
	jar        *repositories.PersistentJar
	cache      *query.Cache
	dispatcher *query.Dispatcher
	session    *session.Manager
	prefetcher *tasks.Prefetcher

	users     *services.UserService
	videos    *services.VideoService
	comments  *services.CommentService
	playlists *services.PlaylistService
	tweets    *services.TweetService
	social    *services.SocialService
	dashboard *services.DashboardService

	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *api.Client
	Jar    *repositories.PersistentJar
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner and wires the cache, session, dispatcher,
// and per-entity services over the given API client.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cache := query.NewCache(opts.Logger)

	var store session.CookieStore
	if opts.Jar != nil {
		store = opts.Jar
	}
	sess := session.NewManager(opts.Client, store, cache, opts.Logger)
	dispatcher := query.NewDispatcher(cache, sess.Gate, opts.Logger)

	r := &Runner{
		config:     opts.Config,
		client:     opts.Client,
		jar:        opts.Jar,
		cache:      cache,
		dispatcher: dispatcher,
		session:    sess,
		users:      services.NewUserService(opts.Client),
		videos:     services.NewVideoService(opts.Client),
		comments:   services.NewCommentService(opts.Client),
		playlists:  services.NewPlaylistService(opts.Client),
		tweets:     services.NewTweetService(opts.Client),
		social:     services.NewSocialService(opts.Client),
		dashboard:  services.NewDashboardService(opts.Client),
		logger:     opts.Logger,
		output:     opts.Output,
	}

	r.prefetcher = tasks.NewPrefetcher(cache, sess, r.videos, r.playlists, r.tweets, r.dashboard,
		opts.Config.Cache.PrefetchRate, opts.Logger)

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, accountCommand, videosCommand, commentsCommand, playlistsCommand,
		tweetsCommand, subCommand, likeCommand, channelCommand, dashboardCommand,
		cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// ensureSession runs the one-per-process identity check if it has not run yet.
func (r *Runner) ensureSession(ctx context.Context) error {
	if r.session.Resolved() {
		return nil
	}
	return r.session.Bootstrap(ctx)
}

// requireAuth bootstraps the session and consults the route guard. Commands
// that need a signed-in user call this before doing anything else.
func (r *Runner) requireAuth(ctx context.Context) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	decision, err := r.session.Guard(true)
	if err != nil {
		return err
	}
	if decision == session.DecisionRedirectLogin {
		return fmt.Errorf("%w: sign in first with 'vidtube auth login'", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
