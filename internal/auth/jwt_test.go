package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionClaims(userID string, expiresAt time.Time) SessionClaims {
	now := time.Now()
	return SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "onboarding",
			Audience:  jwt.ClaimStrings{"onboarding"},
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	a := NewJWTAuthenticator("secret", "onboarding", "onboarding")

	token, err := a.GenerateToken(sessionClaims("user-1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	claims := &SessionClaims{}
	_, err = a.ValidateTokenWithClaims(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	a := NewJWTAuthenticator("secret", "onboarding", "onboarding")
	other := NewJWTAuthenticator("other-secret", "onboarding", "onboarding")

	token, err := a.GenerateToken(sessionClaims("user-1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = other.ValidateTokenWithClaims(token, &SessionClaims{})
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	a := NewJWTAuthenticator("secret", "onboarding", "onboarding")

	token, err := a.GenerateToken(sessionClaims("user-1", time.Now().Add(-time.Minute)))
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(token, &SessionClaims{})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	a := NewJWTAuthenticator("secret", "onboarding", "onboarding")
	stranger := NewJWTAuthenticator("secret", "somewhere-else", "onboarding")

	token, err := a.GenerateToken(sessionClaims("user-1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = stranger.ValidateTokenWithClaims(token, &SessionClaims{})
	assert.Error(t, err)
}

func TestValidateToken_RejectsUnsignedAlgorithm(t *testing.T) {
	a := NewJWTAuthenticator("secret", "onboarding", "onboarding")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims("user-1", time.Now().Add(time.Hour)))
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(token, &SessionClaims{})
	assert.Error(t, err)
}
