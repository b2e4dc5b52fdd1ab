package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mathieu-neron/TrendScope/internal/service"
)

type HealthHandler struct {
	store   *service.RowStore
	pool    *pgxpool.Pool
	rdb     *redis.Client
	startAt time.Time
}

// NewHealthHandler builds the health checks. pool and rdb may be nil when the file
// row source or no cache is configured.
func NewHealthHandler(store *service.RowStore, pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		store:   store,
		pool:    pool,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	rows := checkRows(h.store)
	checks["rows"] = rows
	if rows["status"] != "up" {
		overallStatus = "unhealthy"
	}

	db := checkDB(ctx, h.pool)
	checks["database"] = db
	if db["status"] == "down" && overallStatus == "healthy" {
		overallStatus = "degraded"
	}

	cache := checkRedis(ctx, h.rdb)
	checks["redis"] = cache
	if cache["status"] == "down" && overallStatus == "healthy" {
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        "1.0.0",
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

func checkRows(store *service.RowStore) fiber.Map {
	if store == nil {
		return fiber.Map{
			"status": "down",
			"error":  service.ErrNotLoaded.Error(),
		}
	}
	return fiber.Map{
		"status":    "up",
		"rows":      store.Len(),
		"countries": len(store.Countries()),
	}
}

func checkDB(ctx context.Context, pool *pgxpool.Pool) fiber.Map {
	if pool == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
