package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/service"
)

type TimeGridHandler struct {
	svc *service.DashboardService
}

func NewTimeGridHandler(svc *service.DashboardService) *TimeGridHandler {
	return &TimeGridHandler{svc: svc}
}

// Months handles GET /api/timegrid
func (h *TimeGridHandler) Months(c fiber.Ctx) error {
	return c.JSON(h.svc.MonthGrid())
}

// Days handles GET /api/timegrid/:month
func (h *TimeGridHandler) Days(c fiber.Ctx) error {
	grid, err := h.svc.DayGrid(c.Params("month"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownMonth) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_MONTH",
				"Invalid month. Must be one of: Jan, Feb, Mar, Apr, May, Jun, Jul, Aug, Sep, Oct, Nov, Dec")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build time grid")
	}
	return c.JSON(grid)
}
