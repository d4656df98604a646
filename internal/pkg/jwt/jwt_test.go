package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(42, "ana@example.com", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, "admin", claims["role"])
	assert.EqualValues(t, 42, claims["user_id"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken(1, "a@b.cd", user.RoleEmployee)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("stale", now.Add(-time.Minute).Unix())
	svc.RevokeToken("live", now.Add(time.Hour).Unix())

	assert.True(t, svc.IsTokenRevoked("live"))
	assert.False(t, svc.IsTokenRevoked("stale"), "expired entries are pruned on the next revoke")
	assert.False(t, svc.IsTokenRevoked("never-revoked"))
}
