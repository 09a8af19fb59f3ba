// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the local database and config file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config and the local cookie database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles session lifecycle operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed-in session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email or username",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "Email or username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fullname", Required: true, Usage: "Display name"},
					&cli.StringFlag{Name: "email", Required: true, Usage: "Email address"},
					&cli.StringFlag{Name: "username", Required: true, Usage: "Unique handle"},
					&cli.StringFlag{Name: "password", Required: true, Usage: "Password"},
					&cli.StringFlag{Name: "avatar", Required: true, Usage: "Path to avatar image"},
					&cli.StringFlag{Name: "cover", Usage: "Path to cover image"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear stored credentials",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the current session",
				Action: r.AuthWhoami,
			},
		},
	}
}

// accountCommand manages the signed-in user's own profile.
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage your profile",
		Commands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Change your full name or email",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fullname", Usage: "New display name"},
					&cli.StringFlag{Name: "email", Usage: "New email address"},
				},
				Action: r.AccountUpdate,
			},
			{
				Name:  "avatar",
				Usage: "Replace your avatar image",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Path to the new avatar"},
				},
				Action: r.AccountAvatar,
			},
			{
				Name:  "cover",
				Usage: "Replace your channel cover image",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Path to the new cover image"},
				},
				Action: r.AccountCover,
			},
			{
				Name:  "history",
				Usage: "Show your watch history",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.AccountHistory,
			},
		},
	}
}

// videosCommand handles video operations.
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "Browse and manage videos",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List published videos",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search term"},
					&cli.StringFlag{Name: "user", Usage: "Filter by owner user ID"},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.VideosList,
			},
			{
				Name:  "liked",
				Usage: "List the videos you have liked",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.VideosLiked,
			},
			{
				Name:      "get",
				Usage:     "Show one video with its comments",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.VideosGet,
			},
			{
				Name:      "open",
				Usage:     "Open a video's file URL in the browser",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.VideosOpen,
			},
			{
				Name:  "upload",
				Usage: "Publish a new video",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true, Usage: "Video title"},
					&cli.StringFlag{Name: "description", Usage: "Video description"},
					&cli.StringFlag{Name: "file", Required: true, Usage: "Path to video file"},
					&cli.StringFlag{Name: "thumbnail", Required: true, Usage: "Path to thumbnail image"},
				},
				Action: r.VideosUpload,
			},
			{
				Name:      "edit",
				Usage:     "Edit a video's title, description, or thumbnail",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "New title"},
					&cli.StringFlag{Name: "description", Usage: "New description"},
					&cli.StringFlag{Name: "thumbnail", Usage: "Path to new thumbnail"},
				},
				Action: r.VideosEdit,
			},
			{
				Name:      "delete",
				Usage:     "Delete a video",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.VideosDelete,
			},
			{
				Name:      "publish",
				Usage:     "Toggle a video between published and hidden",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.VideosPublish,
			},
		},
	}
}

// commentsCommand handles comment operations.
func commentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: "Read and write video comments",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List a video's comments",
				Arguments: []cli.Argument{&cli.StringArg{Name: "video-id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CommentsList,
			},
			{
				Name:      "add",
				Usage:     "Comment on a video",
				Arguments: []cli.Argument{&cli.StringArg{Name: "video-id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Required: true, Usage: "Comment text"},
				},
				Action: r.CommentsAdd,
			},
			{
				Name:      "edit",
				Usage:     "Edit one of your comments",
				Arguments: []cli.Argument{&cli.StringArg{Name: "comment-id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Required: true, Usage: "New text"},
					&cli.StringFlag{Name: "video", Usage: "Video ID the comment belongs to"},
				},
				Action: r.CommentsEdit,
			},
			{
				Name:      "delete",
				Usage:     "Delete one of your comments",
				Arguments: []cli.Argument{&cli.StringArg{Name: "comment-id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "video", Usage: "Video ID the comment belongs to"},
				},
				Action: r.CommentsDelete,
			},
		},
	}
}

// playlistsCommand handles playlist operations.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Manage your playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:      "get",
				Usage:     "Show one playlist with its videos",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.PlaylistsGet,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true, Usage: "Playlist name"},
					&cli.StringFlag{Name: "description", Usage: "Playlist description"},
				},
				Action: r.PlaylistsCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PlaylistsDelete,
			},
			{
				Name:  "add",
				Usage: "Add a video to a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "video", Required: true, Usage: "Video ID"},
					&cli.StringFlag{Name: "playlist", Required: true, Usage: "Playlist ID"},
				},
				Action: r.PlaylistsAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a video from a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "video", Required: true, Usage: "Video ID"},
					&cli.StringFlag{Name: "playlist", Required: true, Usage: "Playlist ID"},
				},
				Action: r.PlaylistsRemove,
			},
		},
	}
}

// tweetsCommand handles the micro-blogging feed.
func tweetsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tweets",
		Aliases: []string{"t"},
		Usage:   "Read and post tweets",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the tweet feed",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "Only this user ID's tweets"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.TweetsList,
			},
			{
				Name:      "post",
				Usage:     "Post a tweet",
				Arguments: []cli.Argument{&cli.StringArg{Name: "content"}},
				Action:    r.TweetsPost,
			},
			{
				Name:      "delete",
				Usage:     "Delete one of your tweets",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.TweetsDelete,
			},
		},
	}
}

// subCommand toggles channel subscriptions.
func subCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sub",
		Usage: "Manage subscriptions",
		Commands: []*cli.Command{
			{
				Name:      "toggle",
				Usage:     "Subscribe to or unsubscribe from a channel",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Action:    r.SubToggle,
			},
			{
				Name:   "list",
				Usage:  "List the channels you subscribe to",
				Action: r.SubList,
			},
		},
	}
}

// likeCommand toggles likes on videos, comments, and tweets.
func likeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "like",
		Usage: "Toggle likes",
		Commands: []*cli.Command{
			{
				Name:      "video",
				Usage:     "Toggle your like on a video",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.LikeVideo,
			},
			{
				Name:      "comment",
				Usage:     "Toggle your like on a comment",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "video", Usage: "Video ID the comment belongs to"},
				},
				Action: r.LikeComment,
			},
			{
				Name:      "tweet",
				Usage:     "Toggle your like on a tweet",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.LikeTweet,
			},
		},
	}
}

// channelCommand shows public channel profiles.
func channelCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "channel",
		Usage:     "Show a channel profile",
		Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "videos", Usage: "Also list the channel's videos"},
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.Channel,
	}
}

// dashboardCommand shows the signed-in creator's channel numbers.
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Your channel's stats and videos",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show aggregate channel stats",
				Action: r.DashboardStats,
			},
			{
				Name:  "videos",
				Usage: "List all of your videos, published or not",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "csv", Usage: "Export to a CSV file at this path"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.DashboardVideos,
			},
		},
	}
}

// cacheCommand manages the entity cache.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the entity cache",
		Commands: []*cli.Command{
			{
				Name:   "warm",
				Usage:  "Prefetch the feed and your own entities",
				Action: r.CacheWarm,
			},
			{
				Name:   "clear",
				Usage:  "Drop every cached entity",
				Action: r.CacheClear,
			},
		},
	}
}

// tuiCommand launches the interactive terminal client.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal client",
		Action:  r.TUI,
	}
}
