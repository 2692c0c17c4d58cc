// Package service provides JWT token generation and validation
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dokuhost/admin-service/internal/models"
)

// Token validation errors. The missing-claim cases are distinct from plain
// invalid-token failures so callers can report them separately.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("token is invalid")
	ErrMissingUserClaim = errors.New("user_id claim not found in token")
	ErrMissingTierClaim = errors.New("tier claim not found in token")
)

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret             string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry, refreshExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:             secret,
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
	}
}

// GenerateTokens generates both access and refresh tokens for a user.
// The access token carries user_id and the role tier, the refresh token does not
func (tg *TokenGenerator) GenerateTokens(userID int, tier models.Tier) (string, string, error) {
	accessToken, err := tg.generateAccessToken(userID, tier)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := tg.generateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// generateAccessToken creates an access token with userID and tier in payload
func (tg *TokenGenerator) generateAccessToken(userID int, tier models.Tier) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"tier":    int(tier),
		"exp":     time.Now().Add(tg.accessTokenExpiry).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// generateRefreshToken creates a refresh token without identity claims.
// The jti claim keeps tokens unique even when issued within the same second.
func (tg *TokenGenerator) generateRefreshToken() (string, error) {
	claims := jwt.MapClaims{
		"exp":  time.Now().Add(tg.refreshTokenExpiry).Unix(),
		"iat":  time.Now().Unix(),
		"jti":  uuid.NewString(),
		"type": "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the userID and tier
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (int, models.Tier, error) {
	claims, err := tg.parse(tokenString)
	if err != nil {
		return 0, 0, err
	}

	// Check token type
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return 0, 0, fmt.Errorf("%w: token is not an access token", ErrInvalidToken)
	}

	// JWT claims decode numbers as float64
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, 0, ErrMissingUserClaim
	}

	tierFloat, ok := claims["tier"].(float64)
	if !ok {
		return 0, 0, ErrMissingTierClaim
	}

	return int(userIDFloat), models.Tier(tierFloat), nil
}

// ValidateRefreshToken validates a refresh token
func (tg *TokenGenerator) ValidateRefreshToken(tokenString string) error {
	claims, err := tg.parse(tokenString)
	if err != nil {
		return err
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return fmt.Errorf("%w: token is not a refresh token", ErrInvalidToken)
	}

	return nil
}

// parse verifies the signature and expiry and returns the claims
func (tg *TokenGenerator) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}

	return claims, nil
}
