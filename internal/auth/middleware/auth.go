// Package middleware provides authentication and authorization middlewares
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dokuhost/admin-service/internal/auth/service"
	"github.com/dokuhost/admin-service/internal/models"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	tierKey   contextKey = "tier"
)

// AccessTokenCookie is the cookie holding the session access token
const AccessTokenCookie = "access_token"

// AuthMiddleware validates the JWT access token and puts the caller identity
// into the request context. The token is read from the Authorization header or
// the access_token cookie.
func AuthMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			userID, tier, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				respondUnauthorized(w, authErrorMessage(err))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, tierKey, tier)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTier ensures the caller's role tier is at least minTier. Must be
// mounted inside AuthMiddleware.
func RequireTier(minTier models.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier, ok := GetTier(r.Context())
			if !ok {
				respondUnauthorized(w, "authentication required")
				return
			}

			if tier < minTier {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// GetTier retrieves the role tier from context
func GetTier(ctx context.Context) (models.Tier, bool) {
	tier, ok := ctx.Value(tierKey).(models.Tier)
	return tier, ok
}

// extractToken pulls the access token from the Authorization header or cookie
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// authErrorMessage keeps the missing-claim failures distinguishable from
// ordinary invalid or expired tokens
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, service.ErrMissingUserClaim):
		return "user id not found in token"
	case errors.Is(err, service.ErrMissingTierClaim):
		return "role not found in token"
	default:
		return "invalid or expired token"
	}
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
