package service

import (
	"fmt"
	"math"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// BuildBubbles filters rows by the full tuple (date, country, category) and
// maps each to a scatterplot point for the tuple's field.
func BuildBubbles(rows []model.VideoRecord, s model.FilterState) model.BubbleView {
	filter := NewRowFilter(s.Date, s.Country, s.Category)
	view := model.BubbleView{Field: s.Field, Points: []model.BubblePoint{}}

	first := true
	for i := range rows {
		r := &rows[i]
		if !filter.Match(r) {
			continue
		}

		p := model.BubblePoint{
			RowID:      r.RowID,
			VideoID:    r.VideoID,
			Title:      r.Title,
			Country:    r.Country,
			Category:   r.CategoryName,
			Sentiment:  BubbleSentiment(r.Sentiment(s.Field)),
			Views:      r.Views,
			Engagement: Engagement(r),
		}
		view.Points = append(view.Points, p)

		views := float64(p.Views)
		if first {
			view.ViewsExtent = model.Extent{Min: views, Max: views}
			view.EngagementExtent = model.Extent{Min: p.Engagement, Max: p.Engagement}
			first = false
			continue
		}
		view.ViewsExtent.Min = math.Min(view.ViewsExtent.Min, views)
		view.ViewsExtent.Max = math.Max(view.ViewsExtent.Max, views)
		view.EngagementExtent.Min = math.Min(view.EngagementExtent.Min, p.Engagement)
		view.EngagementExtent.Max = math.Max(view.EngagementExtent.Max, p.Engagement)
	}
	return view
}

// BuildDonut produces the per-video tooltip for one row and text field.
// Slices are Positive, Neutral, Negative with percent = round(value*100).
func BuildDonut(r *model.VideoRecord, field model.TextField) model.DonutView {
	t := r.Sentiment(field)
	slice := func(label model.Sentiment, v float64) model.DonutSlice {
		return model.DonutSlice{Label: label, Value: v, Percent: int(math.Round(v * 100))}
	}
	return model.DonutView{
		RowID:    r.RowID,
		Field:    field,
		Title:    r.Title,
		Category: r.CategoryName,
		Likes:    r.Likes,
		Dislikes: r.Dislikes,
		Slices: []model.DonutSlice{
			slice(model.Positive, t.Pos),
			slice(model.Neutral, t.Neu),
			slice(model.Negative, t.Neg),
		},
	}
}

type viewsAcc struct {
	count int
	views int64
}

func (a viewsAcc) avg() float64 {
	if a.count == 0 {
		return 0
	}
	return float64(a.views) / float64(a.count)
}

// BuildMonthGrid returns one cell per month with the row count and average
// views of rows matching country/category.
func BuildMonthGrid(rows []model.VideoRecord, country, category string) model.TimeGridView {
	filter := RowFilter{Country: country, Category: category}
	var acc [12]viewsAcc
	for i := range rows {
		r := &rows[i]
		if !filter.Match(r) {
			continue
		}
		m := r.PublishTime.UTC().Month() - 1
		acc[m].count++
		acc[m].views += r.Views
	}

	view := model.TimeGridView{Cells: make([]model.TimeCell, 0, len(Months))}
	for i, name := range Months {
		view.Cells = append(view.Cells, model.TimeCell{
			Label:    name,
			Month:    name,
			Count:    acc[i].count,
			AvgViews: acc[i].avg(),
		})
	}
	return view
}

// BuildDayGrid returns one cell per day of month (in DataYear) with the row
// count and average views of rows matching country/category. Rows on a day
// DataYear lacks (Feb 29) have no cell and are skipped.
func BuildDayGrid(rows []model.VideoRecord, month, country, category string) (model.TimeGridView, error) {
	m, ok := MonthIndex(month)
	if !ok {
		return model.TimeGridView{}, fmt.Errorf("%w: %q", ErrUnknownMonth, month)
	}

	days := DaysIn(m)
	acc := make([]viewsAcc, days+1)
	filter := RowFilter{Date: DateSelector{Month: m}, Country: country, Category: category}
	for i := range rows {
		r := &rows[i]
		if !filter.Match(r) {
			continue
		}
		d := r.PublishTime.UTC().Day()
		if d > days {
			continue
		}
		acc[d].count++
		acc[d].views += r.Views
	}

	view := model.TimeGridView{Month: month, Cells: make([]model.TimeCell, 0, days)}
	for d := 1; d <= days; d++ {
		view.Cells = append(view.Cells, model.TimeCell{
			Label:    FormatDateSelector(month, d),
			Month:    month,
			Day:      d,
			Count:    acc[d].count,
			AvgViews: acc[d].avg(),
		})
	}
	return view, nil
}

// BuildStats counts rows per country and category and per sentiment bucket
// for the given field.
func BuildStats(rows []model.VideoRecord, field model.TextField) model.StatsResponse {
	tree := Aggregate(rows, AggregateParams{Field: field})
	resp := model.StatsResponse{Field: field, Countries: []model.CountryStats{}}

	for _, countryNode := range tree.Children {
		cs := model.CountryStats{Country: countryNode.Name, Categories: []model.CategoryStats{}}
		for _, catNode := range countryNode.Children {
			cat := model.CategoryStats{
				Category: catNode.Name,
				Rows:     catNode.Value(),
				ByBucket: make(map[model.Sentiment]int, len(catNode.Children)),
			}
			for _, leaf := range catNode.Children {
				cat.ByBucket[model.Sentiment(leaf.Name)] = leaf.Count
			}
			if catNode.Name == model.UnknownCategory {
				resp.Unknown += cat.Rows
			}
			cs.Rows += cat.Rows
			cs.Categories = append(cs.Categories, cat)
		}
		resp.TotalRows += cs.Rows
		resp.Countries = append(resp.Countries, cs)
	}
	return resp
}
