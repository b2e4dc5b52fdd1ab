package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// Instrumentation receives dashboard events for metrics.
type Instrumentation interface {
	StateUpdated(diff model.StateChangeDiff)
	AggregationObserved(d time.Duration)
	CacheHit()
	CacheMiss()
}

type nopInstrumentation struct{}

func (nopInstrumentation) StateUpdated(model.StateChangeDiff) {}
func (nopInstrumentation) AggregationObserved(time.Duration)  {}
func (nopInstrumentation) CacheHit()                          {}
func (nopInstrumentation) CacheMiss()                         {}

// DashboardService owns the filter state and the views derived from it.
// It subscribes its own renderers to the notifier, so a state update refreshes
// exactly the views PlanViews selects.
type DashboardService struct {
	store    *RowStore
	state    *FilterStateStore
	notifier *Notifier
	cache    HierarchyCache
	instr    Instrumentation
	log      zerolog.Logger

	// events serializes updates: one state change and its refreshes run to
	// completion before the next starts.
	events sync.Mutex

	mu           sync.RWMutex
	hierarchy    model.HierarchyView
	bubbles      model.BubbleView
	labels       model.Labels
	aggregations int
}

// NewDashboardService builds the dashboard over a loaded store. cache and
// instr may be nil; a nil store fails with ErrNotLoaded.
func NewDashboardService(store *RowStore, cache HierarchyCache, field model.TextField, instr Instrumentation, log zerolog.Logger) (*DashboardService, error) {
	if store == nil {
		return nil, ErrNotLoaded
	}
	if cache == nil {
		cache = &CacheService{ttl: DefaultHierarchyTTL}
	}
	if instr == nil {
		instr = nopInstrumentation{}
	}

	d := &DashboardService{
		store:    store,
		state:    NewFilterStateStore(field),
		notifier: NewNotifier(log),
		cache:    cache,
		instr:    instr,
		log:      log,
	}

	d.notifier.Subscribe(ViewBubbles, d.renderBubbles)
	d.notifier.Subscribe(ViewHierarchy, d.renderHierarchy)
	d.notifier.Subscribe(ViewZoom, d.renderZoom)
	d.notifier.Subscribe(ViewControls, d.renderControls)
	d.notifier.Subscribe(ViewLabels, d.renderLabels)
	return d, nil
}

// Start renders every view for the initial state.
func (d *DashboardService) Start(ctx context.Context) error {
	d.events.Lock()
	defer d.events.Unlock()

	s := d.state.Current()
	if err := d.renderHierarchy(ctx, s); err != nil {
		return err
	}
	if err := d.renderBubbles(ctx, s); err != nil {
		return err
	}
	return d.renderLabels(ctx, s)
}

// UpdateState replaces the whole tuple (updateState).
func (d *DashboardService) UpdateState(ctx context.Context, next model.FilterState) (model.StateResponse, error) {
	d.events.Lock()
	defer d.events.Unlock()

	s, diff, err := d.state.Update(next)
	if err != nil {
		return model.StateResponse{}, err
	}
	return d.notify(ctx, s, diff), nil
}

// UpdateField changes only the text field (updateFilterOnly).
func (d *DashboardService) UpdateField(ctx context.Context, field model.TextField) (model.StateResponse, error) {
	d.events.Lock()
	defer d.events.Unlock()

	s, diff, err := d.state.UpdateField(field)
	if err != nil {
		return model.StateResponse{}, err
	}
	return d.notify(ctx, s, diff), nil
}

func (d *DashboardService) notify(ctx context.Context, s model.FilterState, diff model.StateChangeDiff) model.StateResponse {
	d.instr.StateUpdated(diff)
	plan := d.notifier.Notify(ctx, s, diff)
	return model.StateResponse{
		State:     s,
		Diff:      &diff,
		Refreshed: plan.List(),
		Labels:    d.Labels(),
	}
}

// State returns the current tuple and its labels.
func (d *DashboardService) State() model.StateResponse {
	return model.StateResponse{State: d.state.Current(), Labels: d.Labels()}
}

// Hierarchy returns the last aggregated tree and the current zoom focus.
func (d *DashboardService) Hierarchy() model.HierarchyView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.hierarchy
}

// Bubbles returns the last rendered scatterplot data.
func (d *DashboardService) Bubbles() model.BubbleView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bubbles
}

// Labels returns the last rendered UI labels.
func (d *DashboardService) Labels() model.Labels {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.labels
}

// Snapshot returns the state together with every rendered view.
func (d *DashboardService) Snapshot() model.Snapshot {
	s := d.state.Current()
	d.mu.RLock()
	defer d.mu.RUnlock()
	return model.Snapshot{
		State:     s,
		Labels:    d.labels,
		Hierarchy: d.hierarchy,
		Bubbles:   d.bubbles,
	}
}

// Aggregations counts how many trees were computed (cache hits excluded).
func (d *DashboardService) Aggregations() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.aggregations
}

// Donut builds the tooltip for one row. An empty field uses the current one.
func (d *DashboardService) Donut(rowID int, field model.TextField) (model.DonutView, error) {
	if field == "" {
		field = d.state.Current().Field
	}
	if !field.Valid() {
		return model.DonutView{}, ErrInvalidField
	}
	row, err := d.store.Row(rowID)
	if err != nil {
		return model.DonutView{}, err
	}
	return BuildDonut(row, field), nil
}

// MonthGrid returns the month overview under the current country/category.
func (d *DashboardService) MonthGrid() model.TimeGridView {
	s := d.state.Current()
	return BuildMonthGrid(d.store.Rows(), s.Country, s.Category)
}

// DayGrid returns the day grid of one month under the current country/category.
func (d *DashboardService) DayGrid(month string) (model.TimeGridView, error) {
	s := d.state.Current()
	return BuildDayGrid(d.store.Rows(), month, s.Country, s.Category)
}

// Stats summarizes the store for a field; an empty field uses the current one.
func (d *DashboardService) Stats(field model.TextField) (model.StatsResponse, error) {
	if field == "" {
		field = d.state.Current().Field
	}
	if !field.Valid() {
		return model.StatsResponse{}, ErrInvalidField
	}
	return BuildStats(d.store.Rows(), field), nil
}

// Store exposes the row store (for health checks and stats).
func (d *DashboardService) Store() *RowStore {
	return d.store
}

func (d *DashboardService) renderBubbles(_ context.Context, s model.FilterState) error {
	view := BuildBubbles(d.store.Rows(), s)

	d.mu.Lock()
	d.bubbles = view
	d.mu.Unlock()
	return nil
}

// renderHierarchy re-aggregates for (field, date). Country and category only
// move the focus.
func (d *DashboardService) renderHierarchy(ctx context.Context, s model.FilterState) error {
	root, cached := d.lookupHierarchy(ctx, s.Field, s.Date)
	if root == nil {
		start := time.Now()
		root = Aggregate(d.store.Rows(), AggregateParams{Field: s.Field, Date: s.Date})
		d.instr.AggregationObserved(time.Since(start))

		if err := d.cache.SetHierarchy(ctx, s.Field, s.Date, root); err != nil {
			d.log.Warn().Err(err).Msg("hierarchy cache write failed")
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !cached {
		d.aggregations++
	}
	d.hierarchy = model.HierarchyView{
		Field:      s.Field,
		Date:       s.Date,
		Focus:      resolveFocus(root, s.Country, s.Category),
		Root:       root,
		Aggregated: time.Now().UTC(),
		Cached:     cached,
	}
	return nil
}

func (d *DashboardService) lookupHierarchy(ctx context.Context, field model.TextField, date string) (*model.AggregationNode, bool) {
	if !d.cache.Enabled() {
		return nil, false
	}
	root, err := d.cache.GetHierarchy(ctx, field, date)
	if err != nil {
		d.log.Warn().Err(err).Msg("hierarchy cache read failed")
		d.instr.CacheMiss()
		return nil, false
	}
	if root == nil {
		d.instr.CacheMiss()
		return nil, false
	}
	d.instr.CacheHit()
	return root, true
}

func (d *DashboardService) renderZoom(_ context.Context, s model.FilterState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hierarchy.Root == nil {
		return nil
	}
	d.hierarchy.Focus = resolveFocus(d.hierarchy.Root, s.Country, s.Category)
	return nil
}

func (d *DashboardService) renderControls(_ context.Context, s model.FilterState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.labels.ActiveField = s.Field
	return nil
}

func (d *DashboardService) renderLabels(_ context.Context, s model.FilterState) error {
	labels := LabelsFor(s)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.labels.Layer = labels.Layer
	d.labels.Date = labels.Date
	if d.labels.ActiveField == "" {
		d.labels.ActiveField = labels.ActiveField
	}
	return nil
}

// resolveFocus returns the longest prefix of the selection path present in
// the tree.
func resolveFocus(root *model.AggregationNode, country, category string) []string {
	path := FocusPath(country, category)
	for len(path) > 0 && root.Find(path...) == nil {
		path = path[:len(path)-1]
	}
	return path
}
