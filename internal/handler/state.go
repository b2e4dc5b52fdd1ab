package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/model"
	"github.com/mathieu-neron/TrendScope/internal/service"
)

type StateHandler struct {
	svc *service.DashboardService
}

func NewStateHandler(svc *service.DashboardService) *StateHandler {
	return &StateHandler{svc: svc}
}

// Get handles GET /api/state
func (h *StateHandler) Get(c fiber.Ctx) error {
	return c.JSON(h.svc.State())
}

// Update handles POST /api/state
func (h *StateHandler) Update(c fiber.Ctx) error {
	var req model.StateUpdateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	field, errMsg := middleware.ValidateField(req.Field)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	date, errMsg := middleware.ValidateDate(req.Date)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	country, errMsg := middleware.ValidateName("country", req.Country)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	category, errMsg := middleware.ValidateName("category", req.Category)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.UpdateState(c.Context(), model.FilterState{
		Field:    field,
		Date:     date,
		Country:  country,
		Category: category,
	})
	if err != nil {
		return stateError(c, err)
	}
	return c.JSON(resp)
}

// UpdateField handles POST /api/state/field
func (h *StateHandler) UpdateField(c fiber.Ctx) error {
	var req model.FieldUpdateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	field, errMsg := middleware.ValidateField(req.Field)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.UpdateField(c.Context(), field)
	if err != nil {
		return stateError(c, err)
	}
	return c.JSON(resp)
}

func stateError(c fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrInvalidField) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update state")
}
