package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/model"
	"github.com/mathieu-neron/TrendScope/internal/service"
)

// ViewHandler serves the views rendered by the last state update.
type ViewHandler struct {
	svc *service.DashboardService
}

func NewViewHandler(svc *service.DashboardService) *ViewHandler {
	return &ViewHandler{svc: svc}
}

// Hierarchy handles GET /api/hierarchy
func (h *ViewHandler) Hierarchy(c fiber.Ctx) error {
	return c.JSON(h.svc.Hierarchy())
}

// Bubbles handles GET /api/bubbles
func (h *ViewHandler) Bubbles(c fiber.Ctx) error {
	return c.JSON(h.svc.Bubbles())
}

// Snapshot handles GET /api/snapshot
func (h *ViewHandler) Snapshot(c fiber.Ctx) error {
	return c.JSON(h.svc.Snapshot())
}

// Donut handles GET /api/rows/:rowId/donut?field=X
func (h *ViewHandler) Donut(c fiber.Ctx) error {
	rowID, errMsg := middleware.ValidateRowID(c.Params("rowId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var field model.TextField
	if raw := fiber.Query[string](c, "field"); raw != "" {
		field, errMsg = middleware.ValidateField(raw)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}

	donut, err := h.svc.Donut(rowID, field)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRowNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Row not found")
		case errors.Is(err, service.ErrInvalidField):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build donut")
	}
	return c.JSON(donut)
}
