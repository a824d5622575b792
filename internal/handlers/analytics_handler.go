package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"nsap-service/internal/models"
	"nsap-service/internal/services"
	"nsap-service/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	middleware       *Middleware
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, middleware *Middleware) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		middleware:       middleware,
	}
}

func (h *AnalyticsHandler) Register(app *fiber.App) {
	protectedGr := app.Group("nsap/protected/api/v1", h.middleware.Protect())

	analyticsGroup := protectedGr.Group("/analytics")
	analyticsGroup.Get("/dashboard", h.GetDashboard)
	analyticsGroup.Get("/catch-trends", h.GetCatchTrends)
	analyticsGroup.Get("/species-distribution", h.GetSpeciesDistribution)
	analyticsGroup.Get("/regional-comparison", h.GetRegionalComparison)
	analyticsGroup.Get("/gear-analysis", h.GetGearAnalysis)
	analyticsGroup.Get("/top-vessels", h.GetTopVessels)
	analyticsGroup.Get("/top-species", h.GetTopSpecies)
	analyticsGroup.Get("/top-landing-centers", h.GetTopLandingCenters)
	analyticsGroup.Get("/top-fishing-grounds", h.GetTopFishingGrounds)
	analyticsGroup.Get("/efficiency", h.GetEfficiencyMetrics)
	analyticsGroup.Get("/comparison", h.GetComparisonStats)
}

// GetDashboard gathers the landing-page metrics in one response. The four
// aggregations are independent, so they fan out concurrently; any failure
// fails the whole response.
func (h *AnalyticsHandler) GetDashboard(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	var (
		wg         sync.WaitGroup
		trends     models.LabeledSeries
		species    models.LabeledSeries
		topVessels models.RankingResult
		efficiency models.EfficiencyMetrics
		errs       [4]error
	)
	ctx := c.Context()

	wg.Add(4)
	go func() {
		defer wg.Done()
		trends, errs[0] = h.analyticsService.CatchTrends(ctx, scope, models.PeriodDaily)
	}()
	go func() {
		defer wg.Done()
		species, errs[1] = h.analyticsService.SpeciesDistribution(ctx, scope)
	}()
	go func() {
		defer wg.Done()
		topVessels, errs[2] = h.analyticsService.TopVessels(ctx, scope, services.DefaultRankingLimit)
	}()
	go func() {
		defer wg.Done()
		efficiency, errs[3] = h.analyticsService.EfficiencyMetrics(ctx, scope, models.EfficiencyFilters{})
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return respondError(c, err)
		}
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(fiber.Map{
		"catch_trends":         trends,
		"species_distribution": species,
		"top_vessels":          topVessels,
		"efficiency":           efficiency,
	}))
}

// scopeFromRequest assembles the aggregation scope from the caller's
// claims plus the window and region query parameters.
func scopeFromRequest(c fiber.Ctx, claims *models.Claims) (models.AnalyticsScope, error) {
	scope := models.AnalyticsScope{
		Role:     claims.Role,
		RegionID: claims.RegionID,
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return scope, services.ErrValidation
		}
		scope.FromDate = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return scope, services.ErrValidation
		}
		scope.ToDate = &to
	}
	if raw := c.Query("region_id"); raw != "" {
		regionID, err := uuid.Parse(raw)
		if err != nil {
			return scope, services.ErrValidation
		}
		scope.FilterRegionID = &regionID
	}
	return scope, nil
}

func rankingLimit(c fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		return 10
	}
	return limit
}

func (h *AnalyticsHandler) GetCatchTrends(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	period := models.AggregationPeriod(c.Query("period", string(models.PeriodDaily)))
	if !period.IsValid() {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "period must be daily or monthly"))
	}

	series, err := h.analyticsService.CatchTrends(c.Context(), scope, period)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(series))
}

func (h *AnalyticsHandler) GetSpeciesDistribution(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	series, err := h.analyticsService.SpeciesDistribution(c.Context(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(series))
}

func (h *AnalyticsHandler) GetRegionalComparison(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	series, err := h.analyticsService.RegionalComparison(c.Context(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(series))
}

func (h *AnalyticsHandler) GetGearAnalysis(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	series, err := h.analyticsService.GearAnalysis(c.Context(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(series))
}

func (h *AnalyticsHandler) GetTopVessels(c fiber.Ctx) error {
	return h.ranking(c, h.analyticsService.TopVessels)
}

func (h *AnalyticsHandler) GetTopSpecies(c fiber.Ctx) error {
	return h.ranking(c, h.analyticsService.TopSpecies)
}

func (h *AnalyticsHandler) GetTopLandingCenters(c fiber.Ctx) error {
	return h.ranking(c, h.analyticsService.TopLandingCenters)
}

func (h *AnalyticsHandler) GetTopFishingGrounds(c fiber.Ctx) error {
	return h.ranking(c, h.analyticsService.TopFishingGrounds)
}

func (h *AnalyticsHandler) ranking(c fiber.Ctx, fetch func(ctx context.Context, scope models.AnalyticsScope, limit int) (models.RankingResult, error)) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	ranking, err := fetch(c.Context(), scope, rankingLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(ranking))
}

func (h *AnalyticsHandler) GetEfficiencyMetrics(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	var filters models.EfficiencyFilters
	if raw := c.Query("gear_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid gear_id"))
		}
		filters.GearID = &id
	}
	if raw := c.Query("vessel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid vessel_id"))
		}
		filters.VesselID = &id
	}
	if raw := c.Query("effort_unit_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid effort_unit_id"))
		}
		filters.EffortUnitID = &id
	}

	metrics, err := h.analyticsService.EfficiencyMetrics(c.Context(), scope, filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(metrics))
}

func (h *AnalyticsHandler) GetComparisonStats(c fiber.Ctx) error {
	claims := claimsFrom(c)
	scope, err := scopeFromRequest(c, claims)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "invalid query parameters"))
	}

	stats, err := h.analyticsService.ComparisonStats(c.Context(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(stats))
}
