package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// View identifies one dependent view of the filter state.
type View string

const (
	ViewBubbles   View = "bubbles"
	ViewHierarchy View = "hierarchy"
	ViewZoom      View = "zoom"
	ViewControls  View = "controls"
	ViewLabels    View = "labels"
)

// viewOrder is the order subscribers run in.
var viewOrder = []View{ViewBubbles, ViewHierarchy, ViewZoom, ViewControls, ViewLabels}

// ViewSet is the set of views an update must refresh.
type ViewSet map[View]bool

// List returns the set's members in notification order.
func (v ViewSet) List() []string {
	out := make([]string, 0, len(v))
	for _, view := range viewOrder {
		if v[view] {
			out = append(out, string(view))
		}
	}
	return out
}

// PlanViews maps a diff to the views to refresh:
//   - bubbles and labels on every update
//   - hierarchy (re-aggregation) only when field or date changed
//   - zoom when only country/category changed; they never re-aggregate
//   - controls when field changed
func PlanViews(d model.StateChangeDiff) ViewSet {
	set := ViewSet{ViewBubbles: true, ViewLabels: true}
	if d.Field || d.Date {
		set[ViewHierarchy] = true
	} else if d.Country || d.Category {
		set[ViewZoom] = true
	}
	if d.Field {
		set[ViewControls] = true
	}
	return set
}

// RenderFunc refreshes one view for the new state.
type RenderFunc func(ctx context.Context, state model.FilterState) error

// Notifier dispatches state changes to the renderers subscribed per view.
type Notifier struct {
	subs map[View][]RenderFunc
	log  zerolog.Logger
}

func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{subs: make(map[View][]RenderFunc), log: log}
}

// Subscribe registers fn to run whenever view is planned.
func (n *Notifier) Subscribe(view View, fn RenderFunc) {
	n.subs[view] = append(n.subs[view], fn)
}

// Notify plans the views for diff, logs the new tuple, and runs the planned
// subscribers. A failing renderer is logged and does not stop the others.
func (n *Notifier) Notify(ctx context.Context, state model.FilterState, diff model.StateChangeDiff) ViewSet {
	plan := PlanViews(diff)

	n.log.Info().
		Str("field", string(state.Field)).
		Str("date", state.Date).
		Str("country", state.Country).
		Str("category", state.Category).
		Bool("field_changed", diff.Field).
		Bool("date_changed", diff.Date).
		Bool("country_changed", diff.Country).
		Bool("category_changed", diff.Category).
		Strs("refresh", plan.List()).
		Msg("state updated")

	for _, view := range viewOrder {
		if !plan[view] {
			continue
		}
		for _, fn := range n.subs[view] {
			if err := fn(ctx, state); err != nil {
				n.log.Error().Err(err).Str("view", string(view)).Msg("view refresh failed")
			}
		}
	}
	return plan
}
