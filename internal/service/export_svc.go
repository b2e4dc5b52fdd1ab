package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

var exportHeader = []string{
	"row_id", "video_id", "title", "country", "category", "publish_time",
	"views", "likes", "dislikes", "comment_count",
	"field", "sentiment", "pos", "neu", "neg",
}

// FilteredRows returns the current state and the rows it selects (date,
// country and category all applied).
func (d *DashboardService) FilteredRows() (model.FilterState, []model.VideoRecord) {
	s := d.state.Current()
	filter := NewRowFilter(s.Date, s.Country, s.Category)

	var out []model.VideoRecord
	rows := d.store.Rows()
	for i := range rows {
		if filter.Match(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return s, out
}

// WriteExportCSV writes rows with their bucket and scores for field.
func WriteExportCSV(w io.Writer, rows []model.VideoRecord, field model.TextField) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for i := range rows {
		r := &rows[i]
		t := r.Sentiment(field)
		rec := []string{
			strconv.Itoa(r.RowID),
			r.VideoID,
			r.Title,
			r.Country,
			r.CategoryName,
			r.PublishTime.UTC().Format(time.RFC3339),
			strconv.FormatInt(r.Views, 10),
			strconv.FormatInt(r.Likes, 10),
			strconv.FormatInt(r.Dislikes, 10),
			strconv.FormatInt(r.CommentCount, 10),
			string(field),
			string(Classify(t)),
			f(t.Pos), f(t.Neu), f(t.Neg),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r.RowID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
