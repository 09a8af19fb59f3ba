package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/dunerain/vidtube/internal/formatter"
	"github.com/dunerain/vidtube/internal/models"
)

var (
	_ list.Item = videoItem{}
	_ list.Item = tweetItem{}
)

// videoItem wraps [models.Video] to implement [list.Item].
type videoItem struct {
	video models.Video
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return i.video.Title }
func (i videoItem) Description() string {
	return fmt.Sprintf("@%s • %s views • %s",
		i.video.Owner.Username,
		formatter.CompactCount(i.video.Views),
		formatter.TimeAgo(i.video.CreatedAt))
}

// tweetItem wraps [models.Tweet] to implement [list.Item].
type tweetItem struct {
	tweet models.Tweet
}

func (i tweetItem) FilterValue() string { return i.tweet.Content }
func (i tweetItem) Title() string       { return formatter.Truncate(i.tweet.Content, 60) }
func (i tweetItem) Description() string {
	return fmt.Sprintf("@%s • %s", i.tweet.Owner.Username, formatter.TimeAgo(i.tweet.CreatedAt))
}
