package handler

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// Metrics holds all Prometheus collectors for the TrendScope backend.
var Metrics = struct {
	StateUpdates        *prometheus.CounterVec
	Aggregations        prometheus.Counter
	AggregationDuration prometheus.Histogram
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	RowsLoaded          *prometheus.GaugeVec
	RequestDuration     *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
	DBPoolActive        prometheus.GaugeFunc
	DBPoolIdle          prometheus.GaugeFunc
}{}

var metricsOnce sync.Once

// InitMetrics registers all Prometheus metrics. Only the first call has an
// effect; pool may be nil.
func InitMetrics(pool *pgxpool.Pool) {
	metricsOnce.Do(func() { registerMetrics(pool) })
}

func registerMetrics(pool *pgxpool.Pool) {
	Metrics.StateUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendscope_state_updates_total",
			Help: "Total filter state updates, by whether field and date changed.",
		},
		[]string{"field_changed", "date_changed"},
	)

	Metrics.Aggregations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trendscope_aggregations_total",
			Help: "Total hierarchy aggregations computed (cache hits excluded).",
		},
	)

	Metrics.AggregationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trendscope_aggregation_duration_seconds",
			Help:    "Duration of hierarchy aggregations.",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trendscope_cache_hits_total",
			Help: "Total hierarchy cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trendscope_cache_misses_total",
			Help: "Total hierarchy cache misses.",
		},
	)

	Metrics.RowsLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trendscope_rows_loaded",
			Help: "Rows held in the row store, by country.",
		},
		[]string{"country"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trendscope_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trendscope_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// DB pool gauges read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "trendscope_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "trendscope_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.StateUpdates,
		Metrics.Aggregations,
		Metrics.AggregationDuration,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.RowsLoaded,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
	)
}

// RecordRowsLoaded publishes per-country row counts.
func RecordRowsLoaded(counts map[string]int) {
	for country, n := range counts {
		Metrics.RowsLoaded.WithLabelValues(country).Set(float64(n))
	}
}

// PromInstrumentation feeds dashboard events into the Prometheus collectors.
// InitMetrics must run first.
type PromInstrumentation struct{}

func (PromInstrumentation) StateUpdated(diff model.StateChangeDiff) {
	Metrics.StateUpdates.WithLabelValues(strconv.FormatBool(diff.Field), strconv.FormatBool(diff.Date)).Inc()
}

func (PromInstrumentation) AggregationObserved(d time.Duration) {
	Metrics.Aggregations.Inc()
	Metrics.AggregationDuration.Observe(d.Seconds())
}

func (PromInstrumentation) CacheHit()  { Metrics.CacheHits.Inc() }
func (PromInstrumentation) CacheMiss() { Metrics.CacheMisses.Inc() }

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Fiber's path and method are backed by the fasthttp buffer, which
		// handlers may reuse; copy them before c.Next().
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/rows/"):
		return "/api/rows/:rowId/donut"
	case strings.HasPrefix(path, "/api/timegrid/"):
		return "/api/timegrid/:month"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
