package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerai/backend/config"
	"github.com/careerai/backend/models"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.Config{
		JWTSecret:      "test-secret-key",
		JWTExpiryHours: 24,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       "user@example.com",
		Email:    "user@example.com",
		FullName: "Test User",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService()

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.FullName)
	assert.Equal(t, "careerai", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := testJWTService().GenerateToken(testUser())
	require.NoError(t, err)

	other := NewJWTService(&config.Config{JWTSecret: "different-secret", JWTExpiryHours: 24})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := testJWTService().ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc := testJWTService()

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.UserID)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}
