package main

import (
	"context"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/TrendScope/internal/config"
	"github.com/mathieu-neron/TrendScope/internal/db"
	"github.com/mathieu-neron/TrendScope/internal/handler"
	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/repository"
	"github.com/mathieu-neron/TrendScope/internal/router"
	"github.com/mathieu-neron/TrendScope/internal/service"
	"github.com/mathieu-neron/TrendScope/pkg/hash"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "trendscope")
	log := middleware.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		src  service.RowSource
		pool *pgxpool.Pool
	)
	switch cfg.RowSource {
	case config.SourcePostgres:
		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, middleware.Component("db"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		src = repository.NewVideoRepo(pool, cfg.Countries, cfg.SampleEvery)
	default:
		src = repository.NewFileRepo(cfg.DataDir, cfg.Countries, cfg.SampleEvery, middleware.Component("file-repo"))
	}

	start := time.Now()
	store, err := service.LoadRowStore(ctx, src)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.RowSource).Msg("failed to load rows")
	}
	log.Info().
		Int("rows", store.Len()).
		Strs("countries", store.Countries()).
		Dur("elapsed", time.Since(start)).
		Msg("row store loaded")

	handler.InitMetrics(pool)
	handler.RecordRowsLoaded(store.CountByCountry())

	cache := service.NewCacheService(cfg.RedisURL, cfg.CacheTTL, middleware.Component("cache"))
	defer cache.Close()
	cache.SetNamespace(datasetNamespace(cfg, store))

	dash, err := service.NewDashboardService(store, cache, cfg.DefaultField, handler.PromInstrumentation{}, middleware.Component("dashboard"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create dashboard")
	}
	if err := dash.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial render failed")
	}

	warmer := service.NewCacheWarmer(store, cache, cfg.WarmInterval, middleware.Component("cache-warmer"))
	go warmer.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "TrendScope API",
		ServerHeader: "TrendScope",
	})
	router.Setup(app, router.NewHandlers(dash, handler.NewHealthHandler(store, pool, cache.Client())), cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Str("field", string(cfg.DefaultField)).
		Bool("cache", cache.Enabled()).
		Msg("TrendScope backend starting")
	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// datasetNamespace identifies the loaded data set so cached trees from a
// different load are never served.
func datasetNamespace(cfg *config.Config, store *service.RowStore) string {
	codes := make([]string, len(cfg.Countries))
	for i, c := range cfg.Countries {
		codes[i] = c.Code
	}
	return hash.Key(
		cfg.RowSource,
		strings.Join(codes, ","),
		strconv.Itoa(cfg.SampleEvery),
		strconv.Itoa(store.Len()),
	)[:16]
}
