package auth

import (
	"testing"
	"time"

	"github.com/costledger/backend/internal/domain/authz"
	"github.com/costledger/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters-long",
		Expiration: expiration,
		Issuer:     "costledger-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)
	tenantID := uuid.New()
	userID := uuid.New()

	token, err := svc.GenerateToken(tenantID, userID, []authz.Role{authz.RoleManager, authz.RoleViewer})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, []string{"manager", "viewer"}, claims.Roles)

	principal, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, tenantID, principal.TenantID)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, []authz.Role{authz.RoleManager, authz.RoleViewer}, principal.Roles)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := newTestService(time.Hour).GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:     "a-different-secret-also-32-chars-plus",
		Expiration: time.Hour,
		Issuer:     "costledger-test",
	})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	_, err := newTestService(time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_PrincipalRequiresIDs(t *testing.T) {
	claims := &Claims{TenantID: "nope", UserID: uuid.New().String()}
	_, err := claims.Principal()
	assert.ErrorIs(t, err, ErrMissingTenantID)

	claims = &Claims{TenantID: uuid.New().String(), UserID: ""}
	_, err = claims.Principal()
	assert.ErrorIs(t, err, ErrMissingUserID)
}
