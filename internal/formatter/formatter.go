// package formatter renders entities for the terminal: tables for lists,
// compact view counts, relative timestamps, and a CSV export for the
// dashboard.
package formatter

import (
	"fmt"
	"strings"
	"time"
)

// CompactCount renders a count the way the web client does: 999, 1.2K, 3.4M,
// 1.1B. One decimal, dropped when it is zero.
func CompactCount(n int) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	format := func(value float64, suffix string) string {
		s := fmt.Sprintf("%.1f", value)
		s = strings.TrimSuffix(s, ".0")
		if n < 0 {
			s = "-" + s
		}
		return s + suffix
	}

	switch {
	case abs < 1_000:
		return fmt.Sprintf("%d", n)
	case abs < 1_000_000:
		return format(float64(abs)/1_000, "K")
	case abs < 1_000_000_000:
		return format(float64(abs)/1_000_000, "M")
	default:
		return format(float64(abs)/1_000_000_000, "B")
	}
}

// TimeAgo renders a timestamp relative to now: "just now", "5 minutes ago",
// "3 weeks ago".
func TimeAgo(t time.Time) string {
	return timeAgoAt(t, time.Now())
}

func timeAgoAt(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int64(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int64(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int64(d.Hours()/24), "day")
	case d < 30*24*time.Hour:
		return plural(int64(d.Hours()/(24*7)), "week")
	case d < 365*24*time.Hour:
		return plural(int64(d.Hours()/(24*30)), "month")
	default:
		return plural(int64(d.Hours()/(24*365)), "year")
	}
}

// FormatDuration renders a video length in seconds as m:ss or h:mm:ss.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Truncate shortens a string to max runes, appending an ellipsis when it cuts.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
