package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"nsap-service/internal/models"
	"nsap-service/internal/services"
	"nsap-service/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// SamplingHandler exposes CRUD for the whole sample-day hierarchy.
type SamplingHandler struct {
	samplingService *services.SamplingService
	middleware      *Middleware
}

func NewSamplingHandler(samplingService *services.SamplingService, middleware *Middleware) *SamplingHandler {
	return &SamplingHandler{
		samplingService: samplingService,
		middleware:      middleware,
	}
}

func (h *SamplingHandler) Register(app *fiber.App) {
	protectedGr := app.Group("nsap/protected/api/v1", h.middleware.Protect())

	dayGroup := protectedGr.Group("/sample-days")
	dayGroup.Get("/", h.ListSampleDays)
	dayGroup.Post("/", h.CreateSampleDay)
	dayGroup.Get("/:id", h.GetSampleDay)
	dayGroup.Put("/:id", h.UpdateSampleDay)
	dayGroup.Delete("/:id", h.DeleteSampleDay)
	dayGroup.Get("/:id/gear-unloads", h.ListGearUnloads)

	gearGroup := protectedGr.Group("/gear-unloads")
	gearGroup.Post("/", h.CreateGearUnload)
	gearGroup.Put("/:id", h.UpdateGearUnload)
	gearGroup.Delete("/:id", h.DeleteGearUnload)
	gearGroup.Get("/:id/vessel-unloads", h.ListVesselUnloads)

	vesselGroup := protectedGr.Group("/vessel-unloads")
	vesselGroup.Post("/", h.CreateVesselUnload)
	vesselGroup.Put("/:id", h.UpdateVesselUnload)
	vesselGroup.Delete("/:id", h.DeleteVesselUnload)
	vesselGroup.Get("/:id/catches", h.ListVesselCatches)

	catchGroup := protectedGr.Group("/vessel-catches")
	catchGroup.Post("/", h.CreateVesselCatch)
	catchGroup.Put("/:id", h.UpdateVesselCatch)
	catchGroup.Delete("/:id", h.DeleteVesselCatch)
	catchGroup.Get("/:id/lengths", h.ListSampleLengths)

	lengthGroup := protectedGr.Group("/sample-lengths")
	lengthGroup.Post("/", h.CreateSampleLength)
	lengthGroup.Delete("/:id", h.DeleteSampleLength)
}

func parseIDParam(c fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// ============================================================================
// SAMPLE DAYS
// ============================================================================

func (h *SamplingHandler) ListSampleDays(c fiber.Ctx) error {
	claims := claimsFrom(c)

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "from must be YYYY-MM-DD"))
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "to must be YYYY-MM-DD"))
		}
		to = &parsed
	}
	var regionID *uuid.UUID
	if raw := c.Query("region_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid region_id"))
		}
		regionID = &parsed
	}

	days, err := h.samplingService.ListSampleDays(c.Context(), claims, from, to, regionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(days))
}

func (h *SamplingHandler) GetSampleDay(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	day, err := h.samplingService.GetSampleDay(c.Context(), claimsFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(day))
}

func (h *SamplingHandler) CreateSampleDay(c fiber.Ctx) error {
	var input models.SampleDayInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	day, err := h.samplingService.CreateSampleDay(c.Context(), claimsFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(day))
}

func (h *SamplingHandler) UpdateSampleDay(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.SampleDayInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	day, err := h.samplingService.UpdateSampleDay(c.Context(), claimsFrom(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(day))
}

func (h *SamplingHandler) DeleteSampleDay(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := h.samplingService.DeleteSampleDay(c.Context(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Sample day deleted successfully",
	}))
}

// ============================================================================
// GEAR UNLOADS
// ============================================================================

func (h *SamplingHandler) ListGearUnloads(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	unloads, err := h.samplingService.ListGearUnloads(c.Context(), claimsFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(unloads))
}

func (h *SamplingHandler) CreateGearUnload(c fiber.Ctx) error {
	var input models.GearUnloadInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	unload, err := h.samplingService.CreateGearUnload(c.Context(), claimsFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(unload))
}

func (h *SamplingHandler) UpdateGearUnload(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.GearUnloadInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	unload, err := h.samplingService.UpdateGearUnload(c.Context(), claimsFrom(c), id, input.GearID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(unload))
}

func (h *SamplingHandler) DeleteGearUnload(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := h.samplingService.DeleteGearUnload(c.Context(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Gear unload deleted successfully",
	}))
}

// ============================================================================
// VESSEL UNLOADS
// ============================================================================

func (h *SamplingHandler) ListVesselUnloads(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	unloads, err := h.samplingService.ListVesselUnloads(c.Context(), claimsFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(unloads))
}

func (h *SamplingHandler) CreateVesselUnload(c fiber.Ctx) error {
	var input models.VesselUnloadInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	unload, err := h.samplingService.CreateVesselUnload(c.Context(), claimsFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(unload))
}

func (h *SamplingHandler) UpdateVesselUnload(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.VesselUnloadInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	unload, err := h.samplingService.UpdateVesselUnload(c.Context(), claimsFrom(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(unload))
}

func (h *SamplingHandler) DeleteVesselUnload(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := h.samplingService.DeleteVesselUnload(c.Context(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Vessel unload deleted successfully",
	}))
}

// ============================================================================
// VESSEL CATCHES
// ============================================================================

func (h *SamplingHandler) ListVesselCatches(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	catches, err := h.samplingService.ListVesselCatches(c.Context(), claimsFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(catches))
}

func (h *SamplingHandler) CreateVesselCatch(c fiber.Ctx) error {
	var input models.VesselCatchInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	vc, err := h.samplingService.CreateVesselCatch(c.Context(), claimsFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(vc))
}

func (h *SamplingHandler) UpdateVesselCatch(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.VesselCatchInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	vc, err := h.samplingService.UpdateVesselCatch(c.Context(), claimsFrom(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(vc))
}

func (h *SamplingHandler) DeleteVesselCatch(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := h.samplingService.DeleteVesselCatch(c.Context(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Vessel catch deleted successfully",
	}))
}

// ============================================================================
// SAMPLE LENGTHS
// ============================================================================

func (h *SamplingHandler) ListSampleLengths(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(services.DefaultLengthPageSize)))

	lengths, err := h.samplingService.ListSampleLengths(c.Context(), claimsFrom(c), id, page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(lengths))
}

func (h *SamplingHandler) CreateSampleLength(c fiber.Ctx) error {
	var input models.SampleLengthInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	sl, err := h.samplingService.CreateSampleLength(c.Context(), claimsFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(sl))
}

func (h *SamplingHandler) DeleteSampleLength(c fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	if err := h.samplingService.DeleteSampleLength(c.Context(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Sample length deleted successfully",
	}))
}
