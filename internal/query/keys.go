package query

import "fmt"

// Cache key namespace. Every cached entity lives under one of these keys;
// the invalidation table in mutations.go refers to the same names, so the
// read side and the write side cannot drift apart.
const (
	KeyVideos          = "videos"
	KeyTweets          = "tweets"
	KeyLikedVideos     = "likedvideos"
	KeyWatchHistory    = "history"
	KeyDashboardStats  = "dashboard:stats"
	KeyDashboardVideos = "dashboard:videos"

	// PatternVideoFeeds matches the published feed and every filtered or
	// paged view of it, so video mutations stale them all together.
	PatternVideoFeeds = "videos*"

	prefixVideo         = "video:"
	prefixComments      = "comments:"
	prefixChannel       = "channel:"
	prefixChannelVideos = "channelvideos:"
	prefixPlaylists     = "playlists:"
	prefixPlaylist      = "playlist:"
	prefixUserTweets    = "usertweets:"
	prefixSubscriptions = "subscriptions:"
)

// KeyVideoSearch is one filtered or paged view of the published feed. It
// lives in the feed family so [PatternVideoFeeds] invalidates it too.
func KeyVideoSearch(query, userID string, page int) string {
	return fmt.Sprintf("%s:search:%s:%s:%d", KeyVideos, query, userID, page)
}

// KeyVideo is the detail entry for a single video.
func KeyVideo(videoID string) string { return prefixVideo + videoID }

// KeyComments is the comment list for a video.
func KeyComments(videoID string) string { return prefixComments + videoID }

// KeyChannel is a channel profile, keyed by username.
func KeyChannel(username string) string { return prefixChannel + username }

// KeyChannelVideos is the video list of one channel, keyed by the owner's
// user id (resolved from the channel profile first).
func KeyChannelVideos(userID string) string { return prefixChannelVideos + userID }

// KeyPlaylists is a user's playlist collection.
func KeyPlaylists(userID string) string { return prefixPlaylists + userID }

// KeyPlaylist is a single playlist with its videos populated.
func KeyPlaylist(playlistID string) string { return prefixPlaylist + playlistID }

// KeyUserTweets is the tweet list of one author.
func KeyUserTweets(userID string) string { return prefixUserTweets + userID }

// KeySubscriptions is the channel list a user subscribes to.
func KeySubscriptions(userID string) string { return prefixSubscriptions + userID }
