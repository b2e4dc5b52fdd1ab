package handler

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TrendScope/internal/middleware"
	"github.com/mathieu-neron/TrendScope/internal/service"
)

type ExportHandler struct {
	svc *service.DashboardService
}

func NewExportHandler(svc *service.DashboardService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles GET /api/export
// Serves the rows selected by the current filter state as CSV.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	state, rows := h.svc.FilteredRows()

	var buf bytes.Buffer
	if err := service.WriteExportCSV(&buf, rows, state.Field); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export rows")
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=trendscope-%s.csv", state.Field))
	return c.Send(buf.Bytes())
}
