package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dunerain/vidtube/internal/formatter"
	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/services"
	"github.com/dunerain/vidtube/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FeedView ViewState = iota
	DetailView
	TweetsView
	DashboardView
)

// Deps are the wired-up collaborators the TUI renders from. Reads go through
// Cache, writes through Dispatcher.
type Deps struct {
	Cache      *query.Cache
	Dispatcher *query.Dispatcher
	Session    *session.Manager
	Videos     *services.VideoService
	Comments   *services.CommentService
	Tweets     *services.TweetService
	Social     *services.SocialService
	Dashboard  *services.DashboardService
}

// Model represents the TUI application state.
type Model struct {
	ctx  context.Context
	deps Deps

	view   ViewState
	width  int
	height int

	feedList  list.Model
	feedReady bool

	tweetList   list.Model
	tweetsReady bool

	selected *models.Video
	comments []models.Comment

	stats     *models.DashboardStats
	ownVideos []models.Video

	status string
	err    error
	help   help.Model
	keys   keyMap
}

type feedLoadedMsg struct {
	videos []models.Video
	err    error
}

type videoLoadedMsg struct {
	video    *models.Video
	comments []models.Comment
	err      error
}

type tweetsLoadedMsg struct {
	tweets []models.Tweet
	err    error
}

type dashboardLoadedMsg struct {
	stats  *models.DashboardStats
	videos []models.Video
	err    error
}

type mutationDoneMsg struct {
	label string
	err   error
}

// NewModel creates the TUI model.
func NewModel(ctx context.Context, deps Deps) *Model {
	return &Model{
		ctx:  ctx,
		deps: deps,
		view: FeedView,
		help: help.New(),
		keys: newKeyMap(),
	}
}

// Init loads the feed. The feed key stays observed for the whole session so
// any invalidation refetches it eagerly.
func (m *Model) Init() tea.Cmd {
	m.deps.Cache.Observe(query.KeyVideos)
	return m.loadFeed()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.feedReady {
			m.feedList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.tweetsReady {
			m.tweetList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FeedView:
			return m.handleFeedKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case TweetsView:
			return m.handleTweetsKeys(msg)
		case DashboardView:
			return m.handleDashboardKeys(msg)
		}

	case feedLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.videos))
		for i, v := range msg.videos {
			items[i] = videoItem{video: v}
		}
		if !m.feedReady {
			m.feedList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
			m.feedList.Title = "Videos"
			m.feedReady = true
		} else {
			m.feedList.SetItems(items)
		}
		return m, nil

	case videoLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = FeedView
			return m, nil
		}
		m.err = nil
		m.selected = msg.video
		m.comments = msg.comments
		m.view = DetailView
		return m, nil

	case tweetsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = FeedView
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.tweets))
		for i, t := range msg.tweets {
			items[i] = tweetItem{tweet: t}
		}
		if !m.tweetsReady {
			m.tweetList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
			m.tweetList.Title = "Tweets"
			m.tweetsReady = true
		} else {
			m.tweetList.SetItems(items)
		}
		m.view = TweetsView
		return m, nil

	case dashboardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = FeedView
			return m, nil
		}
		m.err = nil
		m.stats = msg.stats
		m.ownVideos = msg.videos
		m.view = DashboardView
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("%s failed: %v", msg.label, msg.err))
			return m, nil
		}
		m.status = styles.ok.Render(msg.label)
		// The dispatcher invalidated the affected keys; re-read them so the
		// view reflects the refetched state.
		if m.view == DetailView && m.selected != nil {
			return m, m.openVideo(m.selected.ID)
		}
		if m.view == TweetsView {
			return m, m.loadTweets()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
	}

	switch m.view {
	case FeedView:
		return m.renderFeed()
	case DetailView:
		return m.renderDetail()
	case TweetsView:
		return m.renderTweets()
	case DashboardView:
		return m.renderDashboard()
	default:
		return ""
	}
}

func (m *Model) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.feedList.SelectedItem().(videoItem); ok {
			m.deps.Cache.Observe(query.KeyVideo(item.video.ID))
			m.deps.Cache.Observe(query.KeyComments(item.video.ID))
			return m, m.openVideo(item.video.ID)
		}
	case key.Matches(msg, m.keys.tweets):
		return m, m.loadTweets()
	case key.Matches(msg, m.keys.dashboard):
		decision, err := m.deps.Session.Guard(true)
		if err != nil || decision != session.DecisionAllow {
			m.status = styles.dim.Render("sign in to view your dashboard")
			return m, nil
		}
		return m, m.loadDashboard()
	case key.Matches(msg, m.keys.refresh):
		m.err = nil
		m.deps.Cache.Invalidate(query.KeyVideos)
		return m, m.loadFeed()
	}

	var cmd tea.Cmd
	m.feedList, cmd = m.feedList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if m.selected != nil {
			m.deps.Cache.Release(query.KeyVideo(m.selected.ID))
			m.deps.Cache.Release(query.KeyComments(m.selected.ID))
		}
		m.selected = nil
		m.status = ""
		m.view = FeedView
		return m, nil
	case key.Matches(msg, m.keys.like):
		return m, m.toggleLike()
	case key.Matches(msg, m.keys.subscribe):
		return m, m.toggleSubscription()
	}
	return m, nil
}

func (m *Model) handleTweetsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.status = ""
		m.view = FeedView
		return m, nil
	case key.Matches(msg, m.keys.like):
		if item, ok := m.tweetList.SelectedItem().(tweetItem); ok {
			return m, m.toggleTweetLike(item.tweet.ID)
		}
	}

	var cmd tea.Cmd
	m.tweetList, cmd = m.tweetList.Update(msg)
	return m, cmd
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = FeedView
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.deps.Cache.Invalidate(query.KeyDashboardStats, query.KeyDashboardVideos)
		return m, m.loadDashboard()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case FeedView:
		if m.feedReady {
			m.feedList, cmd = m.feedList.Update(msg)
		}
	case TweetsView:
		if m.tweetsReady {
			m.tweetList, cmd = m.tweetList.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) loadFeed() tea.Cmd {
	return func() tea.Msg {
		videos, err := query.Fetch(m.ctx, m.deps.Cache, query.KeyVideos, func(ctx context.Context) ([]models.Video, error) {
			return m.deps.Videos.List(ctx, services.VideoListOptions{})
		})
		return feedLoadedMsg{videos: videos, err: err}
	}
}

func (m *Model) openVideo(videoID string) tea.Cmd {
	return func() tea.Msg {
		video, err := query.Fetch(m.ctx, m.deps.Cache, query.KeyVideo(videoID), func(ctx context.Context) (*models.Video, error) {
			return m.deps.Videos.Get(ctx, videoID)
		})
		if err != nil {
			return videoLoadedMsg{err: err}
		}

		comments, err := query.Fetch(m.ctx, m.deps.Cache, query.KeyComments(videoID), func(ctx context.Context) ([]models.Comment, error) {
			return m.deps.Comments.List(ctx, videoID, services.ListOptions{})
		})
		return videoLoadedMsg{video: video, comments: comments, err: err}
	}
}

func (m *Model) loadTweets() tea.Cmd {
	return func() tea.Msg {
		tweets, err := query.Fetch(m.ctx, m.deps.Cache, query.KeyTweets, func(ctx context.Context) ([]models.Tweet, error) {
			return m.deps.Tweets.List(ctx)
		})
		return tweetsLoadedMsg{tweets: tweets, err: err}
	}
}

func (m *Model) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		stats, err := query.Fetch(m.ctx, m.deps.Cache, query.KeyDashboardStats, func(ctx context.Context) (*models.DashboardStats, error) {
			return m.deps.Dashboard.Stats(ctx)
		})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		videos, err := query.Fetch(m.ctx, m.deps.Cache, query.KeyDashboardVideos, func(ctx context.Context) ([]models.Video, error) {
			return m.deps.Dashboard.Videos(ctx)
		})
		return dashboardLoadedMsg{stats: stats, videos: videos, err: err}
	}
}

// toggleLike flips the like on the open video. The direction shown comes from
// the last-fetched isLiked flag, not from counting local presses.
func (m *Model) toggleLike() tea.Cmd {
	video := m.selected
	if video == nil {
		return nil
	}
	label := "liked"
	if video.IsLiked {
		label = "unliked"
	}

	return func() tea.Msg {
		_, err := m.deps.Dispatcher.Do(m.ctx, query.MutationToggleVideoLike, query.Scope{VideoID: video.ID},
			func(ctx context.Context) (any, error) {
				return nil, m.deps.Social.ToggleVideoLike(ctx, video.ID)
			})
		return mutationDoneMsg{label: label, err: err}
	}
}

func (m *Model) toggleSubscription() tea.Cmd {
	video := m.selected
	if video == nil {
		return nil
	}
	label := "subscribed to @" + video.Owner.Username
	if video.Owner.IsSubscribed {
		label = "unsubscribed from @" + video.Owner.Username
	}

	scope := query.Scope{VideoID: video.ID, Username: video.Owner.Username}
	if user, ok := m.deps.Session.Current(); ok {
		scope.UserID = user.ID
	}
	return func() tea.Msg {
		_, err := m.deps.Dispatcher.Do(m.ctx, query.MutationToggleSubscription, scope,
			func(ctx context.Context) (any, error) {
				return nil, m.deps.Social.ToggleSubscription(ctx, video.Owner.ID)
			})
		return mutationDoneMsg{label: label, err: err}
	}
}

func (m *Model) toggleTweetLike(tweetID string) tea.Cmd {
	var scope query.Scope
	if user, ok := m.deps.Session.Current(); ok {
		scope.UserID = user.ID
	}

	return func() tea.Msg {
		_, err := m.deps.Dispatcher.Do(m.ctx, query.MutationToggleTweetLike, scope,
			func(ctx context.Context) (any, error) {
				return nil, m.deps.Social.ToggleTweetLike(ctx, tweetID)
			})
		return mutationDoneMsg{label: "tweet like toggled", err: err}
	}
}

func (m *Model) renderFeed() string {
	if !m.feedReady {
		return styles.dim.Render("Loading feed...")
	}

	header := ""
	if user, ok := m.deps.Session.Current(); ok {
		header = styles.badge.Render("@"+user.Username) + "\n"
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.tweets, m.keys.dashboard, m.keys.refresh, m.keys.quit})
	return fmt.Sprintf("%s%s\n%s\n%s", header, m.feedList.View(), m.status, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}
	v := m.selected

	out := styles.title.Render(v.Title) + "\n"
	out += fmt.Sprintf("@%s · %s subscribers", v.Owner.Username, formatter.CompactCount(v.Owner.SubscribersCount))
	if v.Owner.IsSubscribed {
		out += " " + styles.ok.Render("[subscribed]")
	}
	out += "\n"
	out += fmt.Sprintf("%s views · %s likes", formatter.CompactCount(v.Views), formatter.CompactCount(v.LikesCount))
	if v.IsLiked {
		out += " " + styles.ok.Render("[liked]")
	}
	out += " · " + styles.dim.Render(formatter.TimeAgo(v.CreatedAt)) + "\n"

	if v.Description != "" {
		out += "\n" + v.Description + "\n"
	}

	out += "\n" + styles.title.Render(fmt.Sprintf("Comments (%d)", len(m.comments))) + "\n"
	for _, c := range m.comments {
		out += fmt.Sprintf("@%s %s\n  %s\n", c.Owner.Username, styles.dim.Render(formatter.TimeAgo(c.CreatedAt)), c.Content)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.like, m.keys.subscribe, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", out, m.status, helpView)
}

func (m *Model) renderTweets() string {
	if !m.tweetsReady {
		return styles.dim.Render("Loading tweets...")
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.like, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", m.tweetList.View(), m.status, helpView)
}

func (m *Model) renderDashboard() string {
	if m.stats == nil {
		return styles.dim.Render("Loading dashboard...")
	}

	out := styles.title.Render("Channel Dashboard") + "\n"
	out += fmt.Sprintf("Subscribers  %s\n", formatter.CompactCount(m.stats.TotalSubscribers))
	out += fmt.Sprintf("Views        %s\n", formatter.CompactCount(m.stats.TotalViews))
	out += fmt.Sprintf("Videos       %d\n", m.stats.TotalVideos)
	out += fmt.Sprintf("Likes        %s\n", formatter.CompactCount(m.stats.TotalLikes))

	out += "\n" + styles.title.Render("Your Videos") + "\n"
	for _, v := range m.ownVideos {
		state := styles.dim.Render("hidden")
		if v.IsPublished {
			state = styles.ok.Render("published")
		}
		out += fmt.Sprintf("%s  %s  %s views\n", state, formatter.Truncate(v.Title, 40), formatter.CompactCount(v.Views))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s", out, helpView)
}
