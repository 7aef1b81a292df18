package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenEmbedsAccountAndExpiry(t *testing.T) {
	token, expiresAt, err := GenerateToken("acc-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return tokenKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "acc-1", claims.Subject)
	require.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestGenerateTokenIsUnique(t *testing.T) {
	a, _, err := GenerateToken("acc-1", time.Hour)
	require.NoError(t, err)
	b, _, err := GenerateToken("acc-1", time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
