package service

import (
	"context"
	"fmt"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// RowSource loads the full set of annotated video rows.
type RowSource interface {
	LoadRows(ctx context.Context) ([]model.VideoRecord, error)
}

// RowStore is the read-only table of loaded rows. RowID equals the row's index.
type RowStore struct {
	rows      []model.VideoRecord
	countries []string
}

// NewRowStore takes ownership of rows and assigns their RowIDs.
func NewRowStore(rows []model.VideoRecord) *RowStore {
	s := &RowStore{rows: rows}
	seen := make(map[string]bool)
	for i := range s.rows {
		s.rows[i].RowID = i
		if c := s.rows[i].Country; !seen[c] {
			seen[c] = true
			s.countries = append(s.countries, c)
		}
	}
	return s
}

// LoadRowStore loads every row from src. It must complete before the
// dashboard accepts updates.
func LoadRowStore(ctx context.Context, src RowSource) (*RowStore, error) {
	rows, err := src.LoadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	return NewRowStore(rows), nil
}

// Rows returns the loaded rows. Callers must not modify them.
func (s *RowStore) Rows() []model.VideoRecord {
	return s.rows
}

func (s *RowStore) Len() int {
	return len(s.rows)
}

// Row returns the row with the given id.
func (s *RowStore) Row(id int) (*model.VideoRecord, error) {
	if id < 0 || id >= len(s.rows) {
		return nil, ErrRowNotFound
	}
	return &s.rows[id], nil
}

// Countries lists country names in load order.
func (s *RowStore) Countries() []string {
	return s.countries
}

// Categories lists the category names of one country in first-seen order.
func (s *RowStore) Categories(country string) []string {
	var out []string
	seen := make(map[string]bool)
	for i := range s.rows {
		r := &s.rows[i]
		if r.Country != country || seen[r.CategoryName] {
			continue
		}
		seen[r.CategoryName] = true
		out = append(out, r.CategoryName)
	}
	return out
}

// CountByCountry returns the number of rows per country name.
func (s *RowStore) CountByCountry() map[string]int {
	out := make(map[string]int, len(s.countries))
	for i := range s.rows {
		out[s.rows[i].Country]++
	}
	return out
}
