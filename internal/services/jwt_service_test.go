package services

import (
	"testing"

	"nsap-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()
	regionID := uuid.New()

	token, err := svc.GenerateNewToken(userID, models.RoleEncoder, &regionID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, models.RoleEncoder, claims.Role)
	require.NotNil(t, claims.RegionID)
	assert.Equal(t, regionID, *claims.RegionID)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateNewToken(uuid.New(), models.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTService_InvalidRoleRejected(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateNewToken(uuid.New(), models.UserRole("superuser"), nil)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTService_GarbageTokenRejected(t *testing.T) {
	_, err := NewJWTService("test-secret").VerifyToken("not.a.token")
	assert.Error(t, err)
}
