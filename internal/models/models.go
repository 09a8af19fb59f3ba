// package models defines the client-side view of the platform's entities.
//
// All entities are server-owned; the structs here are transient cached copies
// decoded from the API's response envelopes. JSON tags follow the backend's
// field names (MongoDB-style "_id" identifiers, camelCase fields).
package models

import "time"

// User is the identity attached to a session and to owned entities.
type User struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Owner is the abbreviated channel owner embedded in a video detail payload.
// It carries the per-viewer subscription flag the toggle direction is read from.
type Owner struct {
	ID               string `json:"_id"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	SubscribersCount int    `json:"subscribersCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

// Channel is a public channel profile as returned by /users/channel/:username.
type Channel struct {
	ID                string `json:"_id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage"`
	SubscriberCount   int    `json:"subscriberCount"`
	SubscribedToCount int    `json:"subscribedToCount"`
}

// Video is a video entity. IsLiked and Owner.IsSubscribed are per-viewer
// flags computed by the server for the requesting session.
type Video struct {
	ID          string    `json:"_id"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration,omitempty"`
	Views       int       `json:"views"`
	IsPublished bool      `json:"isPublished"`
	Owner       Owner     `json:"owner"`
	LikesCount  int       `json:"likesCount"`
	IsLiked     bool      `json:"isLiked"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment is a comment on a video.
type Comment struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Owner     User      `json:"owner"`
	Video     string    `json:"video,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Playlist is a playlist as returned in list contexts: video membership is a
// slice of video IDs, which is what the membership toggle checks against.
type Playlist struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Videos      []string  `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlaylistDetail is a playlist as returned by /playlist/:id, with the video
// references populated into full documents.
type PlaylistDetail struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Videos      []Video   `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VideoCount returns the number of videos in the playlist.
func (p Playlist) VideoCount() int { return len(p.Videos) }

// Contains reports whether the playlist holds the given video ID.
func (p Playlist) Contains(videoID string) bool {
	for _, id := range p.Videos {
		if id == videoID {
			return true
		}
	}
	return false
}

// Tweet is a short text post.
type Tweet struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Owner     User      `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardStats are the aggregate counters for the session's own channel.
type DashboardStats struct {
	TotalSubscribers int `json:"totalSubscribers"`
	TotalViews       int `json:"totalViews"`
	TotalVideos      int `json:"totalVideos"`
	TotalLikes       int `json:"totalLikes"`
}
