package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is what the external session provider puts in each token. The
// service never authenticates users itself; it only verifies the token and
// applies role/region to every visibility predicate.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID  `json:"user_id"`
	Role     UserRole   `json:"role"`
	RegionID *uuid.UUID `json:"region_id,omitempty"`
}

// VisibleRegion returns the region predicate for this caller: nil means
// unrestricted (admin), otherwise rows must match the returned region.
func (c *Claims) VisibleRegion() *uuid.UUID {
	if c.Role.IsAdmin() {
		return nil
	}
	return c.RegionID
}
