package service

import (
	"errors"
	"testing"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

func TestFilterStateStore_InitialState(t *testing.T) {
	s := NewFilterStateStore(model.FieldTags)
	got := s.Current()
	if got != (model.FilterState{Field: model.FieldTags}) {
		t.Errorf("initial state = %+v", got)
	}

	if NewFilterStateStore("bogus").Current().Field != model.FieldTitle {
		t.Error("invalid default field should fall back to title")
	}
}

func TestFilterStateStore_UpdateDiff(t *testing.T) {
	s := NewFilterStateStore(model.FieldTitle)

	_, diff, err := s.Update(model.FilterState{Field: model.FieldTitle, Date: "Jan", Country: "Canada"})
	if err != nil {
		t.Fatal(err)
	}
	want := model.StateChangeDiff{Date: true, Country: true}
	if diff != want {
		t.Errorf("diff = %+v, want %+v", diff, want)
	}

	_, diff, _ = s.Update(model.FilterState{Field: model.FieldTags, Date: "Jan"})
	want = model.StateChangeDiff{Field: true, Country: true}
	if diff != want {
		t.Errorf("diff = %+v, want %+v", diff, want)
	}
}

func TestFilterStateStore_Idempotent(t *testing.T) {
	s := NewFilterStateStore(model.FieldTitle)
	next := model.FilterState{Field: model.FieldDescription, Date: "Feb 1,2", Country: "Canada", Category: "Music"}

	if _, first, _ := s.Update(next); !first.Any() {
		t.Fatal("first update should report changes")
	}
	_, second, err := s.Update(next)
	if err != nil {
		t.Fatal(err)
	}
	if second.Any() {
		t.Errorf("identical update diff = %+v, want all false", second)
	}
}

func TestFilterStateStore_InvalidFieldKeepsState(t *testing.T) {
	s := NewFilterStateStore(model.FieldTitle)
	s.Update(model.FilterState{Field: model.FieldTitle, Country: "Canada"})

	_, _, err := s.Update(model.FilterState{Field: "thumbnail"})
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("err = %v, want ErrInvalidField", err)
	}
	if got := s.Current(); got.Country != "Canada" || got.Field != model.FieldTitle {
		t.Errorf("state mutated by rejected update: %+v", got)
	}

	if _, _, err := s.UpdateField(""); !errors.Is(err, ErrInvalidField) {
		t.Errorf("UpdateField(\"\") err = %v, want ErrInvalidField", err)
	}
}

func TestFilterStateStore_UpdateFieldHoldsOthers(t *testing.T) {
	s := NewFilterStateStore(model.FieldTitle)
	s.Update(model.FilterState{Field: model.FieldTitle, Date: "Jan 1", Country: "Canada", Category: "Music"})

	state, diff, err := s.UpdateField(model.FieldTags)
	if err != nil {
		t.Fatal(err)
	}
	if diff != (model.StateChangeDiff{Field: true}) {
		t.Errorf("diff = %+v, want only field", diff)
	}
	want := model.FilterState{Field: model.FieldTags, Date: "Jan 1", Country: "Canada", Category: "Music"}
	if state != want || s.Current() != want {
		t.Errorf("state = %+v, want %+v", state, want)
	}
}

func TestLabelsFor(t *testing.T) {
	got := LabelsFor(model.FilterState{Field: model.FieldTitle})
	if got.Layer != "All Countries/..." || got.Date != "All Dates" || got.ActiveField != model.FieldTitle {
		t.Errorf("default labels = %+v", got)
	}

	got = LabelsFor(model.FilterState{Field: model.FieldTags, Date: "Jan 1,2", Country: "Canada", Category: "Music"})
	if got.Layer != "Canada/Music" || got.Date != "Jan 1,2" {
		t.Errorf("labels = %+v", got)
	}
}
