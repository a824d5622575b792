package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"nsap-service/internal/models"
	"nsap-service/internal/services"
	"nsap-service/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// EditSessionHandler exposes the master-detail editing flow. Every route
// is scoped by the sample-day id in the path; the session itself is keyed
// by the authenticated user.
type EditSessionHandler struct {
	editService *services.EditSessionService
	middleware  *Middleware
}

func NewEditSessionHandler(editService *services.EditSessionService, middleware *Middleware) *EditSessionHandler {
	return &EditSessionHandler{
		editService: editService,
		middleware:  middleware,
	}
}

func (h *EditSessionHandler) Register(app *fiber.App) {
	protectedGr := app.Group("nsap/protected/api/v1", h.middleware.Protect())

	sessionGroup := protectedGr.Group("/edit-sessions/:dayId")
	sessionGroup.Post("/open", h.Open)
	sessionGroup.Delete("/", h.Close)
	sessionGroup.Put("/select/gear-unload/:id", h.SelectGearUnload)
	sessionGroup.Put("/select/vessel-unload/:id", h.SelectVesselUnload)
	sessionGroup.Put("/select/vessel-catch/:id", h.SelectVesselCatch)
	sessionGroup.Get("/lengths", h.LengthPage)

	sessionGroup.Post("/vessel-unloads", h.AddVesselUnload)
	sessionGroup.Put("/vessel-unloads/:id", h.EditVesselUnload)
	sessionGroup.Delete("/vessel-unloads/:id", h.RemoveVesselUnload)

	sessionGroup.Post("/vessel-catches", h.AddVesselCatch)
	sessionGroup.Put("/vessel-catches/:id", h.EditVesselCatch)
	sessionGroup.Delete("/vessel-catches/:id", h.RemoveVesselCatch)

	sessionGroup.Post("/sample-lengths", h.AddSampleLength)
	sessionGroup.Delete("/sample-lengths/:id", h.RemoveSampleLength)
}

func sessionParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	dayID, err := uuid.Parse(c.Params("dayId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	if raw := c.Params("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, uuid.Nil, false
		}
		return dayID, id, true
	}
	return dayID, uuid.Nil, true
}

func (h *EditSessionHandler) Open(c fiber.Ctx) error {
	dayID, _, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	view, err := h.editService.Open(c.Context(), claimsFrom(c), dayID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) Close(c fiber.Ctx) error {
	dayID, _, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	h.editService.Close(claimsFrom(c), dayID)
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Edit session closed",
	}))
}

func (h *EditSessionHandler) SelectGearUnload(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	view, err := h.editService.SelectGearUnload(c.Context(), claimsFrom(c), dayID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) SelectVesselUnload(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	view, err := h.editService.SelectVesselUnload(c.Context(), claimsFrom(c), dayID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) SelectVesselCatch(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	view, err := h.editService.SelectVesselCatch(c.Context(), claimsFrom(c), dayID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) LengthPage(c fiber.Ctx) error {
	dayID, _, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(services.DefaultLengthPageSize)))

	view, err := h.editService.LengthPage(c.Context(), claimsFrom(c), dayID, page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) AddVesselUnload(c fiber.Ctx) error {
	dayID, _, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.VesselUnloadInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	view, err := h.editService.AddVesselUnload(c.Context(), claimsFrom(c), dayID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) EditVesselUnload(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.VesselUnloadInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	view, err := h.editService.EditVesselUnload(c.Context(), claimsFrom(c), dayID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) RemoveVesselUnload(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	view, err := h.editService.RemoveVesselUnload(c.Context(), claimsFrom(c), dayID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) AddVesselCatch(c fiber.Ctx) error {
	dayID, _, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.VesselCatchInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	view, err := h.editService.AddVesselCatch(c.Context(), claimsFrom(c), dayID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) EditVesselCatch(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.VesselCatchInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	view, err := h.editService.EditVesselCatch(c.Context(), claimsFrom(c), dayID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) RemoveVesselCatch(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	view, err := h.editService.RemoveVesselCatch(c.Context(), claimsFrom(c), dayID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) AddSampleLength(c fiber.Ctx) error {
	dayID, _, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	var input models.SampleLengthInput
	if err := c.Bind().Body(&input); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	view, err := h.editService.AddSampleLength(c.Context(), claimsFrom(c), dayID, input.LengthValue)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(view))
}

func (h *EditSessionHandler) RemoveSampleLength(c fiber.Ctx) error {
	dayID, id, ok := sessionParams(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_ID", "Invalid UUID format"))
	}

	view, err := h.editService.RemoveSampleLength(c.Context(), claimsFrom(c), dayID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}
