package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("one", time.Minute).GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = NewHMACService("two", time.Minute).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("two", time.Minute).ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsMisconfiguration(t *testing.T) {
	_, err := NewHMACService("", time.Minute).GenerateAccessToken(uuid.New())
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("secret", 0).GenerateAccessToken(uuid.New())
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("secret", time.Minute).GenerateAccessToken(uuid.Nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
