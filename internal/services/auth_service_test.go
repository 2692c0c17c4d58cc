package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dokuhost/admin-service/internal/auth/service"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of AuthUserRepository and AdminUserRepository
type mockUserRepository struct {
	emailExists   bool
	phoneExists   bool
	existsErr     error
	createErr     error
	createdUser   *models.User
	createdBy     int
	userWithRole  *models.UserWithRole
	getErr        error
	user          *models.User
	changed       bool
	changeErr     error
	changeRoleArg int
	deleteErr     error
	deletedID     int
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.emailExists, m.existsErr
}

func (m *mockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return m.phoneExists, m.existsErr
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User, createdBy int) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 42
	m.createdUser = user
	m.createdBy = createdBy
	return nil
}

func (m *mockUserRepository) GetWithRole(ctx context.Context, userID int) (*models.UserWithRole, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.userWithRole, nil
}

func (m *mockUserRepository) GetWithRoleByEmail(ctx context.Context, email string) (*models.UserWithRole, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.userWithRole, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) GetAll(ctx context.Context, page, count int, roleID int, search string) ([]models.UserListItem, error) {
	return nil, nil
}

func (m *mockUserRepository) ChangeRole(ctx context.Context, userID, newRoleID, changedBy int) (bool, error) {
	m.changeRoleArg = newRoleID
	return m.changed, m.changeErr
}

func (m *mockUserRepository) Delete(ctx context.Context, userID, deletedBy int) error {
	m.deletedID = userID
	return m.deleteErr
}

// mockUserTokenRepository is a mock implementation of UserTokenRepository
// and UserSessionRepository
type mockUserTokenRepository struct {
	createErr     error
	savedToken    *models.UserToken
	storedToken   *models.UserToken
	getErr        error
	updateErr     error
	deleteErr     error
	deletedToken  string
	deletedUserID int
}

func (m *mockUserTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.savedToken = userToken
	return nil
}

func (m *mockUserTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.storedToken, nil
}

func (m *mockUserTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	return m.updateErr
}

func (m *mockUserTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	m.deletedToken = token
	return m.deleteErr
}

func (m *mockUserTokenRepository) DeleteByUserID(ctx context.Context, userID int) error {
	m.deletedUserID = userID
	return m.deleteErr
}

func newTestTokenGenerator() *service.TokenGenerator {
	return service.NewTokenGenerator("test-secret-for-auth-service", time.Hour, 7*24*time.Hour)
}

func validRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		UserPhone: "8 900 123-45-67",
		UserEmail: "Ivan@Example.com",
		Password:  "secret123",
		FirstName: "Иван",
		LastName:  "Петров",
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name        string
		req         *models.RegisterRequest
		userRepo    *mockUserRepository
		expectedErr error
	}{
		{
			name:     "success",
			req:      validRegisterRequest(),
			userRepo: &mockUserRepository{},
		},
		{
			name: "email already registered",
			req:  validRegisterRequest(),
			userRepo: &mockUserRepository{
				emailExists: true,
			},
			expectedErr: models.ErrConflict,
		},
		{
			name: "phone already registered",
			req:  validRegisterRequest(),
			userRepo: &mockUserRepository{
				phoneExists: true,
			},
			expectedErr: models.ErrConflict,
		},
		{
			name: "invalid phone",
			req: &models.RegisterRequest{
				UserPhone: "12", UserEmail: "ivan@example.com", Password: "secret123",
				FirstName: "Ivan", LastName: "Petrov",
			},
			userRepo:    &mockUserRepository{},
			expectedErr: models.ErrValidation,
		},
		{
			name: "short password",
			req: &models.RegisterRequest{
				UserPhone: "+79001234567", UserEmail: "ivan@example.com", Password: "1234",
				FirstName: "Ivan", LastName: "Petrov",
			},
			userRepo:    &mockUserRepository{},
			expectedErr: models.ErrValidation,
		},
		{
			name: "bad nick",
			req: &models.RegisterRequest{
				UserPhone: "+79001234567", UserEmail: "ivan@example.com", Password: "secret123",
				FirstName: "Ivan", LastName: "Petrov", UserNick: "no spaces allowed",
			},
			userRepo:    &mockUserRepository{},
			expectedErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenRepo := &mockUserTokenRepository{}
			svc := NewAuthService(tt.userRepo, tokenRepo, newTestTokenGenerator(), zaptest.NewLogger(t))

			accessToken, refreshToken, err := svc.Register(context.Background(), tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, accessToken)
				assert.Nil(t, tt.userRepo.createdUser)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, refreshToken)

			created := tt.userRepo.createdUser
			require.NotNil(t, created)
			assert.Equal(t, "+79001234567", created.UserPhone)
			assert.Equal(t, "ivan@example.com", created.UserEmail)
			assert.Equal(t, "ivan_petrov", created.UserNick)
			assert.Equal(t, models.DefaultRoleID, created.RoleID)
			assert.Equal(t, 0, tt.userRepo.createdBy)
			// Password is stored hashed
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
			// Refresh token is persisted
			require.NotNil(t, tokenRepo.savedToken)
			assert.Equal(t, 42, tokenRepo.savedToken.UserID)
			assert.Equal(t, refreshToken, tokenRepo.savedToken.Token)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	knownUser := &models.UserWithRole{
		User: models.User{
			ID:           42,
			UserEmail:    "ivan@example.com",
			PasswordHash: string(passwordHash),
			RoleID:       models.RoleIDUser,
		},
		RoleName: "User",
		Tier:     models.TierUser,
	}

	t.Run("success", func(t *testing.T) {
		userRepo := &mockUserRepository{userWithRole: knownUser}
		tokenRepo := &mockUserTokenRepository{}
		svc := NewAuthService(userRepo, tokenRepo, newTestTokenGenerator(), zaptest.NewLogger(t))

		accessToken, refreshToken, err := svc.Login(context.Background(), &models.LoginRequest{
			UserEmail: "Ivan@Example.com",
			Password:  "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		require.NotNil(t, tokenRepo.savedToken)
		assert.Equal(t, 42, tokenRepo.savedToken.UserID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		unknownRepo := &mockUserRepository{getErr: fmt.Errorf("%w: user with email x", models.ErrNotFound)}
		svcUnknown := NewAuthService(unknownRepo, &mockUserTokenRepository{}, newTestTokenGenerator(), zaptest.NewLogger(t))

		_, _, errUnknown := svcUnknown.Login(context.Background(), &models.LoginRequest{
			UserEmail: "ghost@example.com",
			Password:  "whatever1",
		})

		wrongPassRepo := &mockUserRepository{userWithRole: knownUser}
		svcWrongPass := NewAuthService(wrongPassRepo, &mockUserTokenRepository{}, newTestTokenGenerator(), zaptest.NewLogger(t))

		_, _, errWrongPass := svcWrongPass.Login(context.Background(), &models.LoginRequest{
			UserEmail: "ivan@example.com",
			Password:  "wrong-password",
		})

		require.Error(t, errUnknown)
		require.Error(t, errWrongPass)
		assert.ErrorIs(t, errUnknown, models.ErrUnauthorized)
		assert.ErrorIs(t, errWrongPass, models.ErrUnauthorized)
		// The response must not reveal whether the account exists
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})

	t.Run("database error is not masked as unauthorized", func(t *testing.T) {
		userRepo := &mockUserRepository{getErr: errors.New("connection refused")}
		svc := NewAuthService(userRepo, &mockUserTokenRepository{}, newTestTokenGenerator(), zaptest.NewLogger(t))

		_, _, err := svc.Login(context.Background(), &models.LoginRequest{
			UserEmail: "ivan@example.com",
			Password:  "secret123",
		})

		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrUnauthorized)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	tg := newTestTokenGenerator()

	user := &models.UserWithRole{
		User:     models.User{ID: 42, RoleID: models.RoleIDUser},
		RoleName: "User",
		Tier:     models.TierUser,
	}

	t.Run("success rotates the stored token", func(t *testing.T) {
		_, refreshToken, err := tg.GenerateTokens(42, models.TierUser)
		require.NoError(t, err)

		userRepo := &mockUserRepository{userWithRole: user}
		tokenRepo := &mockUserTokenRepository{storedToken: &models.UserToken{ID: 1, UserID: 42, Token: refreshToken}}
		svc := NewAuthService(userRepo, tokenRepo, tg, zaptest.NewLogger(t))

		accessToken, newRefreshToken, err := svc.Refresh(context.Background(), refreshToken)

		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, newRefreshToken)
		assert.NotEqual(t, refreshToken, newRefreshToken)
	})

	t.Run("unknown stored token", func(t *testing.T) {
		_, refreshToken, err := tg.GenerateTokens(42, models.TierUser)
		require.NoError(t, err)

		tokenRepo := &mockUserTokenRepository{getErr: fmt.Errorf("%w: token", models.ErrNotFound)}
		svc := NewAuthService(&mockUserRepository{userWithRole: user}, tokenRepo, tg, zaptest.NewLogger(t))

		_, _, err = svc.Refresh(context.Background(), refreshToken)

		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		tokenRepo := &mockUserTokenRepository{getErr: fmt.Errorf("%w: token", models.ErrNotFound)}
		svc := NewAuthService(&mockUserRepository{userWithRole: user}, tokenRepo, tg, zaptest.NewLogger(t))

		_, _, err := svc.Refresh(context.Background(), "not-a-token")

		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	tokenRepo := &mockUserTokenRepository{}
	svc := NewAuthService(&mockUserRepository{}, tokenRepo, newTestTokenGenerator(), zaptest.NewLogger(t))

	err := svc.Logout(context.Background(), "  some-refresh-token  ")

	assert.NoError(t, err)
	assert.Equal(t, "some-refresh-token", tokenRepo.deletedToken)

	// Empty token is a silent no-op
	tokenRepo.deletedToken = ""
	assert.NoError(t, svc.Logout(context.Background(), "   "))
	assert.Empty(t, tokenRepo.deletedToken)
}
