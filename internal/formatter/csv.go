package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dunerain/vidtube/internal/models"
)

// WriteVideosCSV exports dashboard videos as CSV with raw (non-compact)
// numbers, suitable for spreadsheets.
func WriteVideosCSV(w io.Writer, videos []models.Video) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "title", "published", "views", "likes", "duration_seconds", "created_at"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, v := range videos {
		record := []string{
			v.ID,
			v.Title,
			strconv.FormatBool(v.IsPublished),
			strconv.Itoa(v.Views),
			strconv.Itoa(v.LikesCount),
			strconv.FormatFloat(v.Duration, 'f', -1, 64),
			v.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", v.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
