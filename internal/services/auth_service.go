package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dokuhost/admin-service/internal/auth/service"
	"github.com/dokuhost/admin-service/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserSharedRepository is the interface that wraps uniqueness checks on the User table shared by auth and admin flows
type UserSharedRepository interface {
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByPhone checks if a user with such phone exists.
	//
	// "phone" parameter is used to check if a user with such phone exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// AuthUserRepository is the interface that wraps User table data access needed by the auth flow
type AuthUserRepository interface {
	UserSharedRepository
	// Method Create inserts a new user into the database, increments the
	// counter of its role and writes an audit record, all in one transaction.
	//
	// "user" parameter is used to create a new user.
	// "createdBy" parameter is the ID of the actor, 0 for self-registration.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User, createdBy int) error
	// Method GetWithRole retrieves a user by ID together with its role name and tier.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetWithRole(ctx context.Context, userID int) (*models.UserWithRole, error)
	// Method GetWithRoleByEmail retrieves a user by email together with its role name and tier.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, the error will be returned together with "nil" value.
	GetWithRoleByEmail(ctx context.Context, email string) (*models.UserWithRole, error)
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Method Create inserts a new user token into the database.
	//
	// "userToken" parameter is used to create a new user token.
	//
	// If some error occurs during user token creation, the error will be returned.
	Create(ctx context.Context, userToken *models.UserToken) error
	// Method GetByToken retrieves a user token by token string.
	//
	// "token" parameter is used to retrieve a user token by token string.
	//
	// If user token with such token does not exist, the error will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// Method UpdateToken updates a user token by old token string and new token string.
	//
	// "oldToken" parameter is used to update a user token by old token string.
	// "newToken" parameter is used to update a user token by new token string.
	// "userID" parameter is used to update a user token by user ID.
	//
	// If some error occurs during user token update, the error will be returned.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error
	// Method DeleteByToken deletes a user token by token string.
	//
	// "token" parameter is used to delete a user token by token string.
	//
	// If some error occurs during user token deletion, the error will be returned.
	DeleteByToken(ctx context.Context, token string) error
}

// authService implements registration, login and token lifecycle
type authService struct {
	userRepo       AuthUserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo AuthUserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a new user account with the default role and logs it in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, string, error) {
	// Check user credentials, return normalized email and phone
	normalizedEmail, normalizedPhone, err := checkRegisterCredentials(ctx, s.userRepo, req.UserEmail, req.UserPhone, req.Password)
	if err != nil {
		return "", "", err
	}

	if err = validateName("first_name", req.FirstName); err != nil {
		return "", "", err
	}
	if err = validateName("last_name", req.LastName); err != nil {
		return "", "", err
	}

	// Nick is optional, a missing one is derived from the name
	nick := strings.TrimSpace(req.UserNick)
	if nick == "" {
		nick = GenerateNick(req.FirstName, req.LastName)
	} else if err = validateNick(nick); err != nil {
		return "", "", err
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	// Create user with the default role, counter and audit record are handled by the repository transaction
	user := &models.User{
		UserPhone:    normalizedPhone,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		UserNick:     nick,
		PasswordHash: string(passwordHash),
		UserEmail:    normalizedEmail,
		RoleID:       models.DefaultRoleID,
	}

	if err = s.userRepo.Create(ctx, user, 0); err != nil {
		return "", "", err
	}

	// Generate and save access and refresh tokens
	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID, models.TierUser)
}

// Login authenticates a user by email and password.
//
// An unknown email and a wrong password produce the same error value, so the
// response does not reveal whether the account exists.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.UserEmail))
	if email == "" || req.Password == "" {
		return "", "", fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}

	user, err := s.userRepo.GetWithRoleByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", "", fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
		}
		return "", "", err
	}

	// Verify password
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}

	// Generate and save access and refresh tokens
	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID, user.Tier)
}

// Refresh rotates a refresh token and issues a new access token.
//
// The stored-token lookup and the signature check do not depend on each
// other, so both run in parallel.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	errorChan := make(chan error, 2)
	userTokenChan := make(chan *models.UserToken, 1) // Buffered to prevent goroutine leak

	// Check if user token exists in database and return it
	go func() {
		userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
		if err != nil {
			errorChan <- fmt.Errorf("%w: unknown refresh token", models.ErrUnauthorized)
			userTokenChan <- nil
			return
		}
		userTokenChan <- userToken
		errorChan <- nil // Signal success
	}()

	// Validate refresh token signature and expiry
	go func() {
		if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
			errorChan <- fmt.Errorf("%w: invalid or expired refresh token", models.ErrUnauthorized)
			// Drop the stored token if it still exists in database
			if delErr := s.userTokenRepo.DeleteByToken(ctx, refreshToken); delErr != nil {
				s.logger.Warn("failed to delete stale refresh token", zap.Error(delErr))
			}
			return
		}
		errorChan <- nil // Signal success
	}()

	// Wait for both operations to complete
	for i := 0; i < 2; i++ {
		if err := <-errorChan; err != nil {
			return "", "", err
		}
	}
	userToken := <-userTokenChan
	if userToken == nil {
		return "", "", fmt.Errorf("%w: unknown refresh token", models.ErrUnauthorized)
	}

	// Get the user to pick up the current tier, a role change since login takes effect here
	user, err := s.userRepo.GetWithRole(ctx, userToken.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", "", fmt.Errorf("%w: user no longer exists", models.ErrUnauthorized)
		}
		return "", "", err
	}

	// Generate new tokens using userToken.UserID to stay consistent with the stored token
	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(userToken.UserID, user.Tier)
	if err != nil {
		return "", "", err
	}

	// Replace the old refresh token with the new one
	if err := s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, userToken.UserID); err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// Logout invalidates a refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.userTokenRepo.DeleteByToken(ctx, refreshToken)
}

// Method that generates and saves access and refresh tokens
func generateAndSaveTokens(ctx context.Context, tokenGenerator *service.TokenGenerator,
	userTokenRepo UserTokenRepository, userID int, tier models.Tier) (string, string, error) {
	// Generate tokens
	accessToken, refreshToken, err := tokenGenerator.GenerateTokens(userID, tier)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Save refresh token
	userToken := &models.UserToken{
		UserID: userID,
		Token:  refreshToken,
	}
	if err := userTokenRepo.Create(ctx, userToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// Method that combines all checks for register credentials
//
// The password check and the two uniqueness checks do not depend on each
// other, so they run in parallel.
func checkRegisterCredentials(ctx context.Context, userRepo UserSharedRepository, email, phone, password string) (string, string, error) {
	// Validation errors objects
	validationErrors := make(chan error, 3)

	normalizedEmail, err := validateEmail(email)
	if err != nil {
		return "", "", err
	}
	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return "", "", err
	}

	// Validate password
	go func() {
		validationErrors <- validatePassword(password)
	}()

	// Check email uniqueness
	go func() {
		emailExists, err := userRepo.ExistsByEmail(ctx, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if emailExists {
			validationErrors <- fmt.Errorf("%w: email already registered", models.ErrConflict)
			return
		}
		validationErrors <- nil
	}()

	// Check phone uniqueness
	go func() {
		phoneExists, err := userRepo.ExistsByPhone(ctx, normalizedPhone)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check phone: %w", err)
			return
		}
		if phoneExists {
			validationErrors <- fmt.Errorf("%w: phone already registered", models.ErrConflict)
			return
		}
		validationErrors <- nil
	}()

	for i := 0; i < 3; i++ {
		if err := <-validationErrors; err != nil {
			return "", "", err
		}
	}

	return normalizedEmail, normalizedPhone, nil
}
