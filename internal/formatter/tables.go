package formatter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dunerain/vidtube/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.Render())
}

// VideosTable renders a video list.
func VideosTable(w io.Writer, videos []models.Video) {
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{
			v.ID,
			Truncate(v.Title, 40),
			v.Owner.Username,
			FormatDuration(v.Duration),
			CompactCount(v.Views),
			TimeAgo(v.CreatedAt),
		})
	}
	renderTable(w, []string{"ID", "TITLE", "CHANNEL", "LENGTH", "VIEWS", "UPLOADED"}, rows)
}

// DashboardVideosTable renders the creator's own videos with publish state.
func DashboardVideosTable(w io.Writer, videos []models.Video) {
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		published := "hidden"
		if v.IsPublished {
			published = "published"
		}
		rows = append(rows, []string{
			v.ID,
			Truncate(v.Title, 40),
			published,
			CompactCount(v.Views),
			CompactCount(v.LikesCount),
		})
	}
	renderTable(w, []string{"ID", "TITLE", "STATE", "VIEWS", "LIKES"}, rows)
}

// PlaylistsTable renders a playlist collection.
func PlaylistsTable(w io.Writer, playlists []models.Playlist) {
	rows := make([][]string, 0, len(playlists))
	for _, p := range playlists {
		rows = append(rows, []string{
			p.ID,
			Truncate(p.Name, 30),
			fmt.Sprintf("%d", p.VideoCount()),
			TimeAgo(p.CreatedAt),
		})
	}
	renderTable(w, []string{"ID", "NAME", "VIDEOS", "CREATED"}, rows)
}

// TweetsList renders tweets as a feed.
func TweetsList(w io.Writer, tweets []models.Tweet) {
	for _, t := range tweets {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render("@"+t.Owner.Username), dimStyle.Render(TimeAgo(t.CreatedAt)))
		fmt.Fprintf(w, "  %s\n", t.Content)
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(t.ID))
	}
}

// CommentsList renders a video's comments.
func CommentsList(w io.Writer, comments []models.Comment) {
	for _, c := range comments {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render("@"+c.Owner.Username), dimStyle.Render(TimeAgo(c.CreatedAt)))
		fmt.Fprintf(w, "  %s\n", c.Content)
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(c.ID))
	}
}

// VideoDetail renders one video with its viewer flags.
func VideoDetail(w io.Writer, v *models.Video) {
	fmt.Fprintln(w, headerStyle.Render(v.Title))
	fmt.Fprintf(w, "@%s", v.Owner.Username)
	if v.Owner.SubscribersCount > 0 {
		fmt.Fprintf(w, " · %s subscribers", CompactCount(v.Owner.SubscribersCount))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s views · %s likes · %s\n", CompactCount(v.Views), CompactCount(v.LikesCount), TimeAgo(v.CreatedAt))

	flags := make([]string, 0, 2)
	if v.IsLiked {
		flags = append(flags, "liked")
	}
	if v.Owner.IsSubscribed {
		flags = append(flags, "subscribed")
	}
	if len(flags) > 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("you: %v", flags)))
	}
	if v.Description != "" {
		fmt.Fprintf(w, "\n%s\n", v.Description)
	}
}

// ChannelSummary renders a channel profile.
func ChannelSummary(w io.Writer, ch *models.Channel) {
	fmt.Fprintln(w, headerStyle.Render(ch.FullName))
	fmt.Fprintf(w, "@%s · %s subscribers · subscribed to %s\n",
		ch.Username, CompactCount(ch.SubscriberCount), CompactCount(ch.SubscribedToCount))
}

// StatsTable renders the dashboard aggregates.
func StatsTable(w io.Writer, stats *models.DashboardStats) {
	rows := [][]string{
		{"Subscribers", CompactCount(stats.TotalSubscribers)},
		{"Views", CompactCount(stats.TotalViews)},
		{"Videos", fmt.Sprintf("%d", stats.TotalVideos)},
		{"Likes", CompactCount(stats.TotalLikes)},
	}
	renderTable(w, []string{"METRIC", "VALUE"}, rows)
}
