package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/TrendScope/internal/handler"
	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/service"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	State    *handler.StateHandler
	View     *handler.ViewHandler
	TimeGrid *handler.TimeGridHandler
	Stats    *handler.StatsHandler
	Export   *handler.ExportHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	writeLimit := middleware.NewStateRateLimiter().Handler()
	readLimit := middleware.NewReadRateLimiter().Handler()

	api := app.Group("/api")

	// Filter state
	api.Get("/state", readLimit, h.State.Get)
	api.Post("/state", writeLimit, h.State.Update)
	api.Post("/state/field", writeLimit, h.State.UpdateField)

	// Rendered views
	api.Get("/hierarchy", readLimit, h.View.Hierarchy)
	api.Get("/bubbles", readLimit, h.View.Bubbles)
	api.Get("/snapshot", readLimit, h.View.Snapshot)
	api.Get("/rows/:rowId/donut", readLimit, h.View.Donut)

	// Time grid
	api.Get("/timegrid", readLimit, h.TimeGrid.Months)
	api.Get("/timegrid/:month", readLimit, h.TimeGrid.Days)

	api.Get("/stats", readLimit, h.Stats.GetStats)
	api.Get("/export", readLimit, h.Export.Export)
}

// NewHandlers wires every handler to one dashboard.
func NewHandlers(dash *service.DashboardService, health *handler.HealthHandler) *Handlers {
	return &Handlers{
		State:    handler.NewStateHandler(dash),
		View:     handler.NewViewHandler(dash),
		TimeGrid: handler.NewTimeGridHandler(dash),
		Stats:    handler.NewStatsHandler(dash),
		Export:   handler.NewExportHandler(dash),
		Health:   health,
	}
}
