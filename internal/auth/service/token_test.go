package service

import (
	"testing"
	"time"

	"github.com/dokuhost/admin-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour, 7*24*time.Hour)

	assert.NotNil(t, tg)
	assert.Equal(t, "test-secret", tg.secret)
	assert.Equal(t, time.Hour, tg.accessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, tg.refreshTokenExpiry)
}

func TestTokenGenerator_GenerateAndValidate(t *testing.T) {
	tg := NewTokenGenerator("b8a3c2267dc85f855dea9b46b452bf20", time.Hour, 7*24*time.Hour)

	t.Run("round trip preserves user id and tier", func(t *testing.T) {
		accessToken, refreshToken, err := tg.GenerateTokens(123, models.TierAdmin)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)

		userID, tier, err := tg.ValidateAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, 123, userID)
		assert.Equal(t, models.TierAdmin, tier)

		assert.NoError(t, tg.ValidateRefreshToken(refreshToken))
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, refreshToken, err := tg.GenerateTokens(123, models.TierUser)
		require.NoError(t, err)

		// The type claim is checked before any identity claims
		_, _, err = tg.ValidateAccessToken(refreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		accessToken, _, err := tg.GenerateTokens(123, models.TierUser)
		require.NoError(t, err)

		err = tg.ValidateRefreshToken(accessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenGenerator_ValidateAccessToken_Failures(t *testing.T) {
	secret := "b8a3c2267dc85f855dea9b46b452bf20"
	tg := NewTokenGenerator(secret, time.Hour, 7*24*time.Hour)

	// signToken builds a token with arbitrary claims using the same secret
	signToken := func(t *testing.T, claims jwt.MapClaims) string {
		t.Helper()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, jwt.MapClaims{
			"user_id": 123,
			"tier":    int(models.TierUser),
			"exp":     time.Now().Add(-time.Hour).Unix(),
			"iat":     time.Now().Add(-2 * time.Hour).Unix(),
			"type":    "access",
		})

		_, _, err := tg.ValidateAccessToken(expired)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, _, err := tg.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenGenerator("different-secret", time.Hour, 7*24*time.Hour)
		accessToken, _, err := other.GenerateTokens(123, models.TierUser)
		require.NoError(t, err)

		_, _, err = tg.ValidateAccessToken(accessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"tier": int(models.TierUser),
			"exp":  time.Now().Add(time.Hour).Unix(),
			"type": "access",
		})

		_, _, err := tg.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrMissingUserClaim)
	})

	t.Run("missing tier claim is a distinct error", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id": 123,
			"exp":     time.Now().Add(time.Hour).Unix(),
			"type":    "access",
		})

		_, _, err := tg.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrMissingTierClaim)
		assert.NotErrorIs(t, err, ErrMissingUserClaim)
	})
}
