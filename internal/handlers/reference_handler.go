package handlers

import (
	"net/http"

	"nsap-service/internal/services"
	"nsap-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// ReferenceHandler serves the cached lookup tables, region-filtered by the
// caller's visibility.
type ReferenceHandler struct {
	referenceService *services.ReferenceService
	middleware       *Middleware
}

func NewReferenceHandler(referenceService *services.ReferenceService, middleware *Middleware) *ReferenceHandler {
	return &ReferenceHandler{
		referenceService: referenceService,
		middleware:       middleware,
	}
}

func (h *ReferenceHandler) Register(app *fiber.App) {
	protectedGr := app.Group("nsap/protected/api/v1", h.middleware.Protect())

	refGroup := protectedGr.Group("/reference")
	refGroup.Get("/regions", h.GetRegions)
	refGroup.Get("/landing-centers", h.GetLandingCenters)
	refGroup.Get("/fishing-grounds", h.GetFishingGrounds)
	refGroup.Get("/gears", h.GetGears)
	refGroup.Get("/vessels", h.GetVessels)
	refGroup.Get("/species", h.GetSpecies)
	refGroup.Get("/effort-units", h.GetEffortUnits)
	refGroup.Post("/reload", h.Reload)
}

func (h *ReferenceHandler) GetRegions(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.referenceService.Regions(claimsFrom(c))))
}

func (h *ReferenceHandler) GetLandingCenters(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.referenceService.LandingCenters(claimsFrom(c))))
}

func (h *ReferenceHandler) GetFishingGrounds(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.referenceService.FishingGrounds(claimsFrom(c))))
}

func (h *ReferenceHandler) GetGears(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.referenceService.Gears()))
}

func (h *ReferenceHandler) GetVessels(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.referenceService.Vessels(claimsFrom(c))))
}

func (h *ReferenceHandler) GetSpecies(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.referenceService.Species()))
}

func (h *ReferenceHandler) GetEffortUnits(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.referenceService.EffortUnits()))
}

// Reload refreshes the lookup cache from the database. Admin only.
func (h *ReferenceHandler) Reload(c fiber.Ctx) error {
	claims := claimsFrom(c)
	if !claims.Role.IsAdmin() {
		return c.Status(http.StatusForbidden).JSON(utils.CreateErrorResponse("FORBIDDEN", "only administrators can reload reference data"))
	}

	h.referenceService.Reload(c.Context())
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "Reference data reloaded",
	}))
}
