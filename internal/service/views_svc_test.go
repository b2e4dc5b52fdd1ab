package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

func TestBuildBubbles(t *testing.T) {
	rows := sampleStore().Rows()

	view := BuildBubbles(rows, model.FilterState{Field: model.FieldTitle, Date: "Jan", Country: "Canada"})
	if len(view.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(view.Points))
	}
	p := view.Points[0]
	if !almostEqual(p.Sentiment, -0.6, 1e-9) {
		t.Errorf("sentiment = %v, want -0.6", p.Sentiment)
	}
	if !almostEqual(p.Engagement, 16, 1e-9) {
		t.Errorf("engagement = %v, want 16", p.Engagement)
	}
	if view.ViewsExtent != (model.Extent{Min: 1000, Max: 1000}) {
		t.Errorf("views extent = %+v", view.ViewsExtent)
	}

	empty := BuildBubbles(rows, model.FilterState{Field: model.FieldTitle, Date: "Dec"})
	if empty.Points == nil || len(empty.Points) != 0 {
		t.Errorf("empty points = %v, want empty non-nil slice", empty.Points)
	}
}

func TestBuildBubbles_Extents(t *testing.T) {
	low := posRow("Canada", "Music", time.January, 1)
	low.Views = 10
	high := posRow("Canada", "Music", time.January, 2)
	high.Views = 5000
	high.CommentCount = 100

	view := BuildBubbles([]model.VideoRecord{low, high}, model.FilterState{Field: model.FieldTitle})
	if view.ViewsExtent != (model.Extent{Min: 10, Max: 5000}) {
		t.Errorf("views extent = %+v", view.ViewsExtent)
	}
	if view.EngagementExtent != (model.Extent{Min: 16, Max: 111}) {
		t.Errorf("engagement extent = %+v", view.EngagementExtent)
	}
}

func TestBuildDonut(t *testing.T) {
	r := testRow("Canada", "Music", time.January, 1, 0.125, 0.5, 0.375)
	donut := BuildDonut(&r, model.FieldTitle)

	want := []model.DonutSlice{
		{Label: model.Positive, Value: 0.125, Percent: 13},
		{Label: model.Neutral, Value: 0.5, Percent: 50},
		{Label: model.Negative, Value: 0.375, Percent: 38},
	}
	for i, w := range want {
		if donut.Slices[i] != w {
			t.Errorf("slice %d = %+v, want %+v", i, donut.Slices[i], w)
		}
	}
}

func TestBuildMonthGrid(t *testing.T) {
	rows := sampleStore().Rows()

	grid := BuildMonthGrid(rows, "", "")
	if len(grid.Cells) != 12 {
		t.Fatalf("cells = %d, want 12", len(grid.Cells))
	}
	want := []int{4, 2, 1}
	for i, n := range want {
		if grid.Cells[i].Count != n {
			t.Errorf("%s count = %d, want %d", grid.Cells[i].Label, grid.Cells[i].Count, n)
		}
	}
	if grid.Cells[0].AvgViews != 1000 || grid.Cells[11].AvgViews != 0 {
		t.Errorf("avg views = %v / %v", grid.Cells[0].AvgViews, grid.Cells[11].AvgViews)
	}

	music := BuildMonthGrid(rows, "", "Music")
	if music.Cells[0].Count != 4 || music.Cells[1].Count != 1 {
		t.Errorf("music counts = %d %d, want 4 1", music.Cells[0].Count, music.Cells[1].Count)
	}
}

func TestBuildDayGrid(t *testing.T) {
	rows := sampleStore().Rows()

	grid, err := BuildDayGrid(rows, "Jan", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.Cells) != 31 || grid.Month != "Jan" {
		t.Fatalf("grid = month %q cells %d", grid.Month, len(grid.Cells))
	}
	if grid.Cells[0].Count != 2 || grid.Cells[0].Label != "Jan 1" || grid.Cells[0].Day != 1 {
		t.Errorf("Jan 1 = %+v", grid.Cells[0])
	}

	feb, err := BuildDayGrid(rows, "Feb", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(feb.Cells) != 28 {
		t.Errorf("Feb cells = %d, want 28", len(feb.Cells))
	}

	if _, err := BuildDayGrid(rows, "jan", "", ""); !errors.Is(err, ErrUnknownMonth) {
		t.Errorf("err = %v, want ErrUnknownMonth", err)
	}
}

func TestBuildStats(t *testing.T) {
	rows := append(sampleStore().Rows(), negRow("Canada", model.UnknownCategory, time.April, 1))

	stats := BuildStats(rows, model.FieldTitle)
	if stats.TotalRows != 8 || stats.Unknown != 1 {
		t.Errorf("total = %d unknown = %d, want 8 and 1", stats.TotalRows, stats.Unknown)
	}
	canada := stats.Countries[0]
	if canada.Country != "Canada" || canada.Rows != 6 {
		t.Fatalf("first country = %+v", canada)
	}
	music := canada.Categories[0]
	if music.ByBucket[model.Negative] != 3 || music.ByBucket[model.Neutral] != 1 || music.ByBucket[model.Positive] != 0 {
		t.Errorf("music buckets = %v", music.ByBucket)
	}
}

func TestBuildDayGrid_LeapDayRow(t *testing.T) {
	leap := posRow("Canada", "Music", time.February, 1)
	leap.PublishTime = time.Date(2016, time.February, 29, 9, 0, 0, 0, time.UTC)
	rows := []model.VideoRecord{leap, posRow("Canada", "Music", time.February, 28)}

	grid, err := BuildDayGrid(rows, "Feb", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.Cells) != 28 {
		t.Fatalf("cells = %d, want 28", len(grid.Cells))
	}
	if grid.Cells[27].Count != 1 {
		t.Errorf("Feb 28 count = %d, want 1", grid.Cells[27].Count)
	}
	total := 0
	for _, c := range grid.Cells {
		total += c.Count
	}
	if total != 1 {
		t.Errorf("grid total = %d, want the leap-day row skipped", total)
	}

	months := BuildMonthGrid(rows, "", "")
	if months.Cells[1].Count != 2 {
		t.Errorf("Feb month count = %d, want 2", months.Cells[1].Count)
	}
}
