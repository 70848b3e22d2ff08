package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", "gazette", time.Hour)

	token, err := svc.Generate("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "gazette", claims.Issuer)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", "gazette", time.Hour).Generate("admin")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", "gazette", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", "gazette", -time.Minute)
	token, err := svc.Generate("admin")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", "gazette", time.Hour)
	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
	assert.False(t, CheckPasswordHash("hunter2", "not-a-hash"))
}
