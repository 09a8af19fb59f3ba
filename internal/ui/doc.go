// Package ui implements the interactive terminal client using bubbletea's Elm
// architecture.
//
// Views:
//  1. [FeedView] : browse the published video feed
//  2. [DetailView] : one video with its comments; like and subscribe from here
//  3. [TweetsView] : the tweet feed, with likes and posting
//  4. [DashboardView] : the signed-in creator's stats and videos
//
// The [Model] implements the standard Init/Update/View pattern. Every read
// goes through the query cache, so revisiting a view renders instantly from
// cached state while a revalidation runs behind it; every write goes through
// the mutation dispatcher, which invalidates exactly the keys the mutation
// touched. Views Observe their keys while mounted so invalidation refetches
// them eagerly.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help via charmbracelet/bubbles/help.
package ui
