package auth

import (
	"testing"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string, expiryHours int) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      secret,
			JWTExpiryHours: expiryHours,
			JWTIssuer:      "fieldops-test",
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig("test-secret", 1))
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "worker@example.com", []string{"worker"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "worker@example.com", claims.Email)
	assert.Equal(t, []string{"worker"}, claims.Roles)
	assert.Equal(t, "fieldops-test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig("test-secret", 1))

	token, err := svc.GenerateToken(uuid.New(), "worker@example.com", nil)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiryDefaultsToOneDay(t *testing.T) {
	svc := NewJWTService(testConfig("test-secret", 0))
	assert.Equal(t, 24*time.Hour, svc.tokenDuration)
}
