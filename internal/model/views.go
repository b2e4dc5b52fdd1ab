package model

import "time"

// BubblePoint is one video in the sentiment-vs-views scatterplot.
type BubblePoint struct {
	RowID      int     `json:"rowId"`
	VideoID    string  `json:"videoId"`
	Title      string  `json:"title"`
	Country    string  `json:"country"`
	Category   string  `json:"category"`
	Sentiment  float64 `json:"sentiment"`
	Views      int64   `json:"views"`
	Engagement float64 `json:"engagement"`
}

// Extent is a closed [Min, Max] interval used for chart scales.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BubbleView is the scatterplot's data for the current filter state.
type BubbleView struct {
	Field            TextField     `json:"field"`
	Points           []BubblePoint `json:"points"`
	ViewsExtent      Extent        `json:"viewsExtent"`
	EngagementExtent Extent        `json:"engagementExtent"`
}

// DonutSlice is one arc of a per-video sentiment donut.
type DonutSlice struct {
	Label   Sentiment `json:"label"`
	Value   float64   `json:"value"`
	Percent int       `json:"percent"`
}

// DonutView is the tooltip content for a selected bubble.
type DonutView struct {
	RowID    int          `json:"rowId"`
	Field    TextField    `json:"field"`
	Title    string       `json:"title"`
	Category string       `json:"category"`
	Likes    int64        `json:"likes"`
	Dislikes int64        `json:"dislikes"`
	Slices   []DonutSlice `json:"slices"`
}

// TimeCell is one month or day square of the time grid.
type TimeCell struct {
	Label    string  `json:"label"`
	Month    string  `json:"month"`
	Day      int     `json:"day,omitempty"`
	Count    int     `json:"count"`
	AvgViews float64 `json:"avgViews"`
}

// TimeGridView is either the 12-month overview or the days of one month.
type TimeGridView struct {
	Month string     `json:"month,omitempty"`
	Cells []TimeCell `json:"cells"`
}

// HierarchyView is the last aggregated tree plus the zoom focus derived from
// the country/category selection.
type HierarchyView struct {
	Field      TextField        `json:"field"`
	Date       string           `json:"date,omitempty"`
	Focus      []string         `json:"focus"`
	Root       *AggregationNode `json:"root"`
	Aggregated time.Time        `json:"aggregatedAt"`
	Cached     bool             `json:"cached"`
}

// CategoryStats counts rows per sentiment for one category of one country.
type CategoryStats struct {
	Category string            `json:"category"`
	Rows     int               `json:"rows"`
	ByBucket map[Sentiment]int `json:"bySentiment"`
}

// CountryStats summarizes one country's loaded rows.
type CountryStats struct {
	Country    string          `json:"country"`
	Rows       int             `json:"rows"`
	Categories []CategoryStats `json:"categories"`
}

// StatsResponse is the API response for GET /api/stats.
type StatsResponse struct {
	Field     TextField      `json:"field"`
	TotalRows int            `json:"totalRows"`
	Unknown   int            `json:"unknownCategoryRows"`
	Countries []CountryStats `json:"countries"`
}
