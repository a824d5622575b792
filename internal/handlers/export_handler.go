package handlers

import (
	"net/http"

	"nsap-service/internal/models"
	"nsap-service/internal/services"
	"nsap-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type ExportHandler struct {
	exportService *services.ExportService
	middleware    *Middleware
}

func NewExportHandler(exportService *services.ExportService, middleware *Middleware) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		middleware:    middleware,
	}
}

func (h *ExportHandler) Register(app *fiber.App) {
	protectedGr := app.Group("nsap/protected/api/v1", h.middleware.Protect())
	protectedGr.Get("/export/:report", h.ExportCSV)
}

// ExportCSV streams one report as a CSV attachment.
func (h *ExportHandler) ExportCSV(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	period := models.AggregationPeriod(c.Query("period", string(models.PeriodDaily)))
	if !period.IsValid() {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "period must be daily or monthly"))
	}

	filename, data, err := h.exportService.Export(c.Context(), scope, c.Params("report"), period)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Status(http.StatusOK).Send(data)
}
