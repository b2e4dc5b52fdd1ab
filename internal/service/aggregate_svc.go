package service

import (
	"fmt"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// AggregateParams selects the rows and text field of an aggregation.
// Country and Category are optional extra filters; the dashboard itself
// never sets them because its tree shape does not depend on them.
type AggregateParams struct {
	Field    model.TextField
	Date     string
	Country  string
	Category string
}

// RowFilter is the combined date/country/category predicate.
type RowFilter struct {
	Date     DateSelector
	Country  string
	Category string
}

// NewRowFilter builds a filter; a malformed date selector filters nothing.
func NewRowFilter(date, country, category string) RowFilter {
	return RowFilter{Date: SelectorOrNone(date), Country: country, Category: category}
}

// Match reports whether the row passes every set filter.
func (f RowFilter) Match(r *model.VideoRecord) bool {
	if f.Country != "" && r.Country != f.Country {
		return false
	}
	if f.Category != "" && r.CategoryName != f.Category {
		return false
	}
	return f.Date.Match(r.PublishTime)
}

// PercentText formats a bucket's share of its category as " (NN.NN%)".
func PercentText(count, total int) string {
	if total == 0 {
		return fmt.Sprintf(" (%.2f%%)", 0.0)
	}
	return fmt.Sprintf(" (%.2f%%)", 100*float64(count)/float64(total))
}

type categoryGroup struct {
	name    string
	buckets map[model.Sentiment]int
	total   int
}

type countryGroup struct {
	name       string
	categories []*categoryGroup
	byName     map[string]*categoryGroup
}

// Aggregate groups the filtered rows into
// All Countries → country → category → Negative/Neutral/Positive.
// Countries and categories appear in first-seen order; every category has
// all three sentiment leaves, including empty ones.
func Aggregate(rows []model.VideoRecord, p AggregateParams) *model.AggregationNode {
	field := p.Field
	if !field.Valid() {
		field = model.FieldTitle
	}
	filter := NewRowFilter(p.Date, p.Country, p.Category)

	var countries []*countryGroup
	byCountry := make(map[string]*countryGroup)

	for i := range rows {
		r := &rows[i]
		if !filter.Match(r) {
			continue
		}

		cg, ok := byCountry[r.Country]
		if !ok {
			cg = &countryGroup{name: r.Country, byName: make(map[string]*categoryGroup)}
			byCountry[r.Country] = cg
			countries = append(countries, cg)
		}

		cat, ok := cg.byName[r.CategoryName]
		if !ok {
			cat = &categoryGroup{name: r.CategoryName, buckets: make(map[model.Sentiment]int, 3)}
			cg.byName[r.CategoryName] = cat
			cg.categories = append(cg.categories, cat)
		}

		cat.buckets[Classify(r.Sentiment(field))]++
		cat.total++
	}

	root := model.NewBranch(model.RootName)
	for _, cg := range countries {
		countryNode := model.NewBranch(cg.name)
		for _, cat := range cg.categories {
			catNode := model.NewBranch(cat.name)
			for _, s := range model.Sentiments {
				n := cat.buckets[s]
				catNode.Children = append(catNode.Children, model.NewLeaf(string(s), n, PercentText(n, cat.total)))
			}
			countryNode.Children = append(countryNode.Children, catNode)
		}
		root.Children = append(root.Children, countryNode)
	}
	return root
}

// FocusPath is the zoom target for a country/category selection. A category
// without a country cannot be located and yields the root.
func FocusPath(country, category string) []string {
	path := []string{}
	if country == "" {
		return path
	}
	path = append(path, country)
	if category != "" {
		path = append(path, category)
	}
	return path
}
