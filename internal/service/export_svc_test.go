package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

func TestFilteredRows(t *testing.T) {
	d := newTestDashboard(t)
	d.UpdateState(context.Background(), model.FilterState{Field: model.FieldTitle, Date: "Jan", Country: "Canada"})

	s, rows := d.FilteredRows()
	if s.Country != "Canada" || len(rows) != 3 {
		t.Errorf("state %+v selected %d rows, want Canada and 3", s, len(rows))
	}
}

func TestWriteExportCSV(t *testing.T) {
	rows := sampleStore().Rows()[:2]

	var buf bytes.Buffer
	if err := WriteExportCSV(&buf, rows, model.FieldTitle); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2", len(records))
	}
	if records[0][0] != "row_id" || len(records[0]) != len(exportHeader) {
		t.Errorf("header = %v", records[0])
	}
	row := records[1]
	if row[0] != "0" || row[3] != "Canada" || row[4] != "Music" || row[11] != "Negative" || row[14] != "0.7" {
		t.Errorf("first row = %v", row)
	}
	if row[5] != "2018-01-01T12:00:00Z" {
		t.Errorf("publish_time = %q", row[5])
	}
}
