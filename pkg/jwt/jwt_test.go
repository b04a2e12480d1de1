package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(secret, 42, TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TokenTypeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestParseTokenRejectsWrongType(t *testing.T) {
	token, err := GenerateToken(secret, 42, "refresh", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, 42, TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(secret, 42, TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestShouldRotateRefreshToken(t *testing.T) {
	token, err := GenerateToken(secret, 1, TokenTypeAccess, 10*time.Second)
	require.NoError(t, err)
	claims, err := ParseToken(secret, TokenTypeAccess, token)
	require.NoError(t, err)

	assert.True(t, ShouldRotateRefreshToken(claims, time.Minute))
	assert.False(t, ShouldRotateRefreshToken(claims, time.Second))
	assert.False(t, ShouldRotateRefreshToken(&Claims{}, time.Minute))
}
