package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/dunerain/vidtube/internal/models"
)

func TestCompactCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.2K"},
		{999999, "1000K"},
		{1200000, "1.2M"},
		{3400000, "3.4M"},
		{1100000000, "1.1B"},
		{-1234, "-1.2K"},
	}

	for _, tc := range cases {
		if got := CompactCount(tc.n); got != tc.want {
			t.Errorf("CompactCount(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{36 * time.Hour, "1 day ago"},
		{10 * 24 * time.Hour, "1 week ago"},
		{70 * 24 * time.Hour, "2 months ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}

	for _, tc := range cases {
		if got := timeAgoAt(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("timeAgoAt(-%v) = %s, want %s", tc.ago, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61.4, "1:01"},
		{754, "12:34"},
		{3723, "1:02:03"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%v) = %s, want %s", tc.seconds, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged, got %s", got)
	}
	if got := Truncate("a long title here", 7); got != "a long…" {
		t.Errorf("expected ellipsis cut, got %s", got)
	}
}

func TestWriteVideosCSV(t *testing.T) {
	videos := []models.Video{
		{
			ID:          "v1",
			Title:       "Go, concurrently",
			IsPublished: true,
			Views:       1234567,
			LikesCount:  89,
			Duration:    754,
			CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteVideosCSV(&buf, videos); err != nil {
		t.Fatalf("csv export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported csv does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}
	row := records[1]
	if row[0] != "v1" || row[2] != "true" || row[3] != "1234567" {
		t.Errorf("unexpected row %v", row)
	}
}

func TestVideosTable(t *testing.T) {
	videos := []models.Video{
		{ID: "v1", Title: "Intro", Owner: models.Owner{Username: "alice"}, Views: 1500, Duration: 61},
	}

	var buf bytes.Buffer
	VideosTable(&buf, videos)

	out := buf.String()
	for _, want := range []string{"v1", "Intro", "alice", "1.5K", "1:01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}
}
