package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dokuhost/admin-service/internal/auth/middleware"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RefreshTokenCookie is the cookie holding the refresh token
const RefreshTokenCookie = "refresh_token"

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register performs a user credentials validation and creation and returns access and refresh tokens.
	//
	// "req" parameter contains phone, email, password, names and an optional nick.
	//
	// If user passed invalid credentials, or such user already exists, or some other error occurs, the error will be returned together with empty strings for access and refresh tokens.
	Register(ctx context.Context, req *models.RegisterRequest) (string, string, error)
	// Method Login performs a user credentials validation and returns access and refresh tokens.
	//
	// "req" parameter contains email and password.
	//
	// If user passed invalid credentials, or such user does not exist, or some other error occurs, the error will be returned together with empty strings for access and refresh tokens.
	Login(ctx context.Context, req *models.LoginRequest) (string, string, error)
	// Method Refresh performs a refresh token validation and returns a new access token and refresh token.
	//
	// "refreshToken" parameter is used to identify the user.
	//
	// If refresh token is invalid or expired, or some other error occurs, the error will be returned together with empty strings for new access and refresh tokens.
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	// Method Logout deletes the stored refresh token.
	//
	// "refreshToken" parameter identifies the session to terminate.
	//
	// If some error occurs during deletion, the error will be returned.
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService   AuthService
	accessMaxAge  int
	refreshMaxAge int
}

// NewAuthHandler creates a new auth handler. Cookie lifetimes follow the
// token expiries.
func NewAuthHandler(
	authService AuthService,
	accessExpiry, refreshExpiry time.Duration,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		authService:   authService,
		accessMaxAge:  int(accessExpiry / time.Second),
		refreshMaxAge: int(refreshExpiry / time.Second),
	}
}

// RegisterRoutes registers the auth routes on the public /users group
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)
}

// Register handles POST /users/register
// @Summary Register a new user
// @Description Register a new user with phone, email, password and names. Returns access and refresh tokens as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Email or phone already registered"
// @Router /users/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to register user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

// Login handles POST /users/login
// @Summary Login user
// @Description Authenticate user with email and password. Returns access and refresh tokens as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]string "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to login user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /users/refresh
// @Summary Refresh access token
// @Description Refresh access and refresh tokens using a valid refresh token. Token can be provided in request body or as a cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token request (optional if using cookie)"
// @Success 200 {object} map[string]string "Tokens refreshed successfully"
// @Failure 400 {object} map[string]string "Refresh token required"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /users/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.refreshTokenFromRequest(r)
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "refresh token required")
		return
	}

	accessToken, newRefreshToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.Logger.Warn("failed to refresh tokens", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.setTokenCookies(w, accessToken, newRefreshToken)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "tokens refreshed successfully"})
}

// Logout handles POST /users/logout
// @Summary Logout user
// @Description Delete the stored refresh token and clear both token cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /users/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if refreshToken, ok := h.refreshTokenFromRequest(r); ok {
		if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
			// The session cookies are cleared regardless
			h.Logger.Warn("failed to delete refresh token", zap.Error(err))
		}
	}

	h.clearTokenCookies(w)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// refreshTokenFromRequest reads the refresh token from the body or the cookie
func (h *AuthHandler) refreshTokenFromRequest(r *http.Request) (string, bool) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken, true
	}

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// setTokenCookies sets access and refresh tokens as HTTP-only cookies
func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.accessMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.refreshMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearTokenCookies expires both token cookies
func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
