package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("hr-dashboard")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	subject, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "hr-dashboard", subject)
}

func TestJWTService_ValidateAccessToken_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("other-secret", time.Hour)
	expired := NewJWTService("test-secret", -time.Hour)

	foreign, _, err := other.GenerateAccessToken("ops")
	require.NoError(t, err)
	stale, _, err := expired.GenerateAccessToken("ops")
	require.NoError(t, err)
	_, refresh, err := svc.JWTAuth().Encode(map[string]interface{}{
		"sub":  "ops",
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong signature", foreign},
		{"expired", stale},
		{"wrong type", refresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_GenerateAccessToken_RequiresSubject(t *testing.T) {
	_, _, err := NewJWTService("test-secret", time.Hour).GenerateAccessToken("")
	assert.Error(t, err)
}
