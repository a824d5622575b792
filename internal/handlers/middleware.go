package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"nsap-service/internal/models"
	"nsap-service/internal/repository"
	"nsap-service/internal/services"
	"nsap-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type Middleware struct {
	jwtService *services.JWTService
}

func NewMiddleware(jwtService *services.JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

// Protect verifies the bearer token and stashes the claims for handlers.
func (m *Middleware) Protect() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			slog.Error("token validation failed", "error", err)
			return c.Status(http.StatusUnauthorized).JSON(utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}

func claimsFrom(c fiber.Ctx) *models.Claims {
	claims, _ := c.Locals("claims").(*models.Claims)
	return claims
}

// respondError maps the service sentinels onto HTTP statuses and wraps the
// message in the standard envelope.
func respondError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", err.Error()))
	case errors.Is(err, services.ErrNoSelection):
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("NO_SELECTION", err.Error()))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(http.StatusForbidden).JSON(utils.CreateErrorResponse("FORBIDDEN", err.Error()))
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	default:
		slog.Error("request failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_ERROR", "operation failed: "+err.Error()))
	}
}
