// Command seed imports the per-country CSV and category files into Postgres
// so the server can run with ROW_SOURCE=postgres.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mathieu-neron/TrendScope/internal/config"
	"github.com/mathieu-neron/TrendScope/internal/db"
	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/repository"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "trendscope-seed")
	log := middleware.Logger

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, middleware.Component("db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	videos := repository.NewVideoRepo(pool, cfg.Countries, 1)
	if err := videos.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}

	files := repository.NewFileRepo(cfg.DataDir, cfg.Countries, 1, middleware.Component("file-repo"))
	var total int64
	for _, src := range cfg.Countries {
		cats, rows, err := files.ReadCountry(ctx, src)
		if err != nil {
			log.Fatal().Err(err).Str("country", src.Code).Msg("failed to read country files")
		}
		n, err := videos.ReplaceCountry(ctx, src.Code, cats, rows)
		if err != nil {
			log.Fatal().Err(err).Str("country", src.Code).Msg("failed to import country")
		}
		total += n
		log.Info().Str("country", src.Code).Int64("rows", n).Int("categories", len(cats)).Msg("country imported")
	}
	log.Info().Int64("rows", total).Msg("seed complete")
}
