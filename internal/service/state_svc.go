package service

import (
	"fmt"
	"sync"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// FilterStateStore holds the single cross-filter tuple. Updates are
// serialized so every reader after Update returns sees the new tuple.
type FilterStateStore struct {
	mu    sync.RWMutex
	state model.FilterState
}

// NewFilterStateStore starts from {field, no date, no country, no category}.
func NewFilterStateStore(field model.TextField) *FilterStateStore {
	if !field.Valid() {
		field = model.FieldTitle
	}
	return &FilterStateStore{state: model.FilterState{Field: field}}
}

// Current returns a copy of the held tuple.
func (s *FilterStateStore) Current() model.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Update replaces the whole tuple and reports which members changed.
// An invalid field leaves the state untouched.
func (s *FilterStateStore) Update(next model.FilterState) (model.FilterState, model.StateChangeDiff, error) {
	if !next.Field.Valid() {
		return s.Current(), model.StateChangeDiff{}, fmt.Errorf("%w: %q", ErrInvalidField, next.Field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	diff := Diff(s.state, next)
	s.state = next
	return next, diff, nil
}

// UpdateField changes only the text field, holding date/country/category.
func (s *FilterStateStore) UpdateField(field model.TextField) (model.FilterState, model.StateChangeDiff, error) {
	if !field.Valid() {
		return s.Current(), model.StateChangeDiff{}, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Field = field
	diff := Diff(s.state, next)
	s.state = next
	return next, diff, nil
}

// Diff compares two tuples member by member.
func Diff(prev, next model.FilterState) model.StateChangeDiff {
	return model.StateChangeDiff{
		Field:    prev.Field != next.Field,
		Date:     prev.Date != next.Date,
		Country:  prev.Country != next.Country,
		Category: prev.Category != next.Category,
	}
}

// LabelsFor derives the layer/date labels and active button for a tuple.
func LabelsFor(s model.FilterState) model.Labels {
	country := s.Country
	if country == "" {
		country = model.RootName
	}
	category := s.Category
	if category == "" {
		category = "..."
	}
	date := s.Date
	if date == "" {
		date = "All Dates"
	}
	return model.Labels{
		Layer:       country + "/" + category,
		Date:        date,
		ActiveField: s.Field,
	}
}
