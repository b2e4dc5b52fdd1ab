package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// warmConcurrency caps parallel aggregations during a warm cycle.
const warmConcurrency = 4

// CacheWarmer periodically precomputes the trees a user reaches with one
// click (every text field, whole data set and each month) so those
// updates hit the cache.
type CacheWarmer struct {
	store    *RowStore
	cache    HierarchyCache
	interval time.Duration
	log      zerolog.Logger
	stopCh   chan struct{}
}

// NewCacheWarmer creates a warmer that ticks every interval.
func NewCacheWarmer(store *RowStore, cache HierarchyCache, interval time.Duration, log zerolog.Logger) *CacheWarmer {
	return &CacheWarmer{
		store:    store,
		cache:    cache,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// WarmKeys lists the (field, date) pairs a warm cycle fills.
func WarmKeys() []AggregateParams {
	var keys []AggregateParams
	for _, f := range model.TextFields {
		keys = append(keys, AggregateParams{Field: f})
		for _, m := range Months {
			keys = append(keys, AggregateParams{Field: f, Date: m})
		}
	}
	return keys
}

// Start runs one cycle immediately, then every interval. With a
// non-positive interval it returns after the first cycle.
func (w *CacheWarmer) Start(ctx context.Context) {
	if !w.cache.Enabled() {
		w.log.Info().Msg("cache-warmer: cache disabled, not starting")
		return
	}
	w.log.Info().Dur("interval", w.interval).Msg("cache-warmer: starting")

	w.tick(ctx)
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			w.log.Info().Msg("cache-warmer: stopping (context cancelled)")
			return
		case <-w.stopCh:
			w.log.Info().Msg("cache-warmer: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the warmer to stop.
func (w *CacheWarmer) Stop() {
	close(w.stopCh)
}

func (w *CacheWarmer) tick(ctx context.Context) {
	start := time.Now()
	warmed, err := w.WarmOnce(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("cache-warmer: cycle failed")
		return
	}
	w.log.Info().
		Int("trees", warmed).
		Dur("elapsed", time.Since(start)).
		Msg("cache-warmer: cycle complete")
}

// WarmOnce fills every missing key and returns how many trees it stored.
func (w *CacheWarmer) WarmOnce(ctx context.Context) (int, error) {
	if !w.cache.Enabled() {
		return 0, nil
	}
	keys := WarmKeys()
	stored := make([]bool, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for i, k := range keys {
		g.Go(func() error {
			existing, err := w.cache.GetHierarchy(ctx, k.Field, k.Date)
			if err != nil {
				return err
			}
			if existing != nil {
				return nil
			}
			root := Aggregate(w.store.Rows(), k)
			if err := w.cache.SetHierarchy(ctx, k.Field, k.Date, root); err != nil {
				return err
			}
			stored[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for _, ok := range stored {
		if ok {
			n++
		}
	}
	return n, nil
}
