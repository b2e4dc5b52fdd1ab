package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/model"
	"github.com/mathieu-neron/TrendScope/internal/service"
)

type StatsHandler struct {
	svc *service.DashboardService
}

func NewStatsHandler(svc *service.DashboardService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats?field=X
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	var field model.TextField
	if raw := fiber.Query[string](c, "field"); raw != "" {
		f, errMsg := middleware.ValidateField(raw)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		field = f
	}

	stats, err := h.svc.Stats(field)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}
	return c.JSON(stats)
}
