package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dokuhost/admin-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockUserLogRepository is a mock implementation of UserLogRepository
type mockUserLogRepository struct {
	logs      []models.UserLog
	err       error
	gotFilter models.UserLogFilter
	gotSince  time.Time
}

func (m *mockUserLogRepository) List(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, error) {
	m.gotFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.logs, nil
}

func (m *mockUserLogRepository) ListByUser(ctx context.Context, userID int) ([]models.UserLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.logs, nil
}

func (m *mockUserLogRepository) ListRoleChangesSince(ctx context.Context, since time.Time) ([]models.UserLog, error) {
	m.gotSince = since
	if m.err != nil {
		return nil, m.err
	}
	return m.logs, nil
}

func newTestUserService(userRepo *mockUserRepository, logRepo *mockUserLogRepository, t *testing.T) *userService {
	if logRepo == nil {
		logRepo = &mockUserLogRepository{}
	}
	return NewUserService(userRepo, logRepo, &mockUserTokenRepository{}, zaptest.NewLogger(t))
}

func TestUserService_GetUsersList(t *testing.T) {
	tests := []struct {
		name          string
		page, count   int
		expectedPage  int
		expectedCount int
	}{
		{name: "values in range pass through", page: 3, count: 50, expectedPage: 3, expectedCount: 50},
		{name: "zero page clamps to first", page: 0, count: 10, expectedPage: 1, expectedCount: 10},
		{name: "negative page clamps to first", page: -2, count: 10, expectedPage: 1, expectedCount: 10},
		{name: "zero count falls back to default", page: 1, count: 0, expectedPage: 1, expectedCount: 20},
		{name: "oversized count falls back to default", page: 1, count: 500, expectedPage: 1, expectedCount: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &listCapturingUserRepository{}
			svc := NewUserService(userRepo, &mockUserLogRepository{}, &mockUserTokenRepository{}, zaptest.NewLogger(t))

			_, err := svc.GetUsersList(context.Background(), tt.page, tt.count, 0, "  admin  ")

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPage, userRepo.gotPage)
			assert.Equal(t, tt.expectedCount, userRepo.gotCount)
			assert.Equal(t, "admin", userRepo.gotSearch)
		})
	}
}

// listCapturingUserRepository records GetAll arguments
type listCapturingUserRepository struct {
	mockUserRepository
	gotPage   int
	gotCount  int
	gotSearch string
}

func (m *listCapturingUserRepository) GetAll(ctx context.Context, page, count int, roleID int, search string) ([]models.UserListItem, error) {
	m.gotPage = page
	m.gotCount = count
	m.gotSearch = search
	return nil, nil
}

func TestUserService_CreateUser(t *testing.T) {
	validReq := func() *models.CreateUserRequest {
		return &models.CreateUserRequest{
			UserPhone: "+79001234567",
			UserEmail: "new@example.com",
			Password:  "secret123",
			FirstName: "Anna",
			LastName:  "Smirnova",
		}
	}

	t.Run("defaults to the user role", func(t *testing.T) {
		userRepo := &mockUserRepository{
			userWithRole: &models.UserWithRole{
				User:     models.User{ID: 42, RoleID: models.RoleIDUser},
				RoleName: "User",
				Tier:     models.TierUser,
			},
		}
		svc := newTestUserService(userRepo, nil, t)

		created, err := svc.CreateUser(context.Background(), 7, validReq())

		require.NoError(t, err)
		require.NotNil(t, created)
		require.NotNil(t, userRepo.createdUser)
		assert.Equal(t, models.DefaultRoleID, userRepo.createdUser.RoleID)
		assert.Equal(t, "anna_smirnova", userRepo.createdUser.UserNick)
		assert.Equal(t, 7, userRepo.createdBy)
	})

	t.Run("explicit role is kept", func(t *testing.T) {
		userRepo := &mockUserRepository{
			userWithRole: &models.UserWithRole{
				User: models.User{ID: 42, RoleID: models.RoleIDModerator},
			},
		}
		svc := newTestUserService(userRepo, nil, t)

		req := validReq()
		req.RoleID = models.RoleIDModerator
		_, err := svc.CreateUser(context.Background(), 7, req)

		require.NoError(t, err)
		assert.Equal(t, models.RoleIDModerator, userRepo.createdUser.RoleID)
	})

	t.Run("super admin role is refused", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		svc := newTestUserService(userRepo, nil, t)

		req := validReq()
		req.RoleID = models.RoleIDSuperAdmin
		_, err := svc.CreateUser(context.Background(), 7, req)

		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.Nil(t, userRepo.createdUser)
	})

	t.Run("duplicate email is refused before insert", func(t *testing.T) {
		userRepo := &mockUserRepository{emailExists: true}
		svc := newTestUserService(userRepo, nil, t)

		_, err := svc.CreateUser(context.Background(), 7, validReq())

		assert.ErrorIs(t, err, models.ErrConflict)
		assert.Nil(t, userRepo.createdUser)
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	t.Run("changing your own role is refused", func(t *testing.T) {
		userRepo := &mockUserRepository{changed: true}
		svc := newTestUserService(userRepo, nil, t)

		changed, err := svc.UpdateRole(context.Background(), 7, &models.UpdateRoleRequest{
			UserID: 7,
			RoleID: models.RoleIDAdmin,
		})

		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.False(t, changed)
		// The repository must not be reached
		assert.Zero(t, userRepo.changeRoleArg)
	})

	t.Run("delegates to the repository", func(t *testing.T) {
		userRepo := &mockUserRepository{changed: true}
		svc := newTestUserService(userRepo, nil, t)

		changed, err := svc.UpdateRole(context.Background(), 7, &models.UpdateRoleRequest{
			UserID: 10,
			RoleID: models.RoleIDModerator,
		})

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.RoleIDModerator, userRepo.changeRoleArg)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		userRepo := &mockUserRepository{changed: false}
		svc := newTestUserService(userRepo, nil, t)

		changed, err := svc.UpdateRole(context.Background(), 7, &models.UpdateRoleRequest{
			UserID: 10,
			RoleID: models.RoleIDUser,
		})

		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestUserService_UpdateRoleByEmail(t *testing.T) {
	t.Run("resolves the target by email", func(t *testing.T) {
		userRepo := &mockUserRepository{
			user:    &models.User{ID: 10, UserEmail: "target@example.com"},
			changed: true,
		}
		svc := newTestUserService(userRepo, nil, t)

		changed, err := svc.UpdateRoleByEmail(context.Background(), 7, &models.UpdateRoleByEmailRequest{
			UserEmail: "  Target@Example.com ",
			RoleID:    models.RoleIDModerator,
		})

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.RoleIDModerator, userRepo.changeRoleArg)
	})

	t.Run("self change is still refused after resolution", func(t *testing.T) {
		userRepo := &mockUserRepository{
			user: &models.User{ID: 7, UserEmail: "me@example.com"},
		}
		svc := newTestUserService(userRepo, nil, t)

		_, err := svc.UpdateRoleByEmail(context.Background(), 7, &models.UpdateRoleByEmailRequest{
			UserEmail: "me@example.com",
			RoleID:    models.RoleIDModerator,
		})

		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("deleting your own account is refused", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		svc := newTestUserService(userRepo, nil, t)

		err := svc.DeleteUser(context.Background(), 7, 7)

		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.Zero(t, userRepo.deletedID)
	})

	t.Run("delegates to the repository and revokes sessions", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		tokenRepo := &mockUserTokenRepository{}
		svc := NewUserService(userRepo, &mockUserLogRepository{}, tokenRepo, zaptest.NewLogger(t))

		err := svc.DeleteUser(context.Background(), 7, 10)

		require.NoError(t, err)
		assert.Equal(t, 10, userRepo.deletedID)
		assert.Equal(t, 10, tokenRepo.deletedUserID)
	})

	t.Run("session revocation failure does not fail the delete", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		tokenRepo := &mockUserTokenRepository{deleteErr: errors.New("connection refused")}
		svc := NewUserService(userRepo, &mockUserLogRepository{}, tokenRepo, zaptest.NewLogger(t))

		err := svc.DeleteUser(context.Background(), 7, 10)

		require.NoError(t, err)
		assert.Equal(t, 10, userRepo.deletedID)
	})
}

func TestUserService_GetRecentRoleChanges(t *testing.T) {
	logRepo := &mockUserLogRepository{
		logs: []models.UserLog{{ID: 1, Action: models.LogActionRoleChange}},
	}
	svc := newTestUserService(&mockUserRepository{}, logRepo, t)

	before := time.Now().Add(-roleChangeWindow)
	logs, err := svc.GetRecentRoleChanges(context.Background())
	after := time.Now().Add(-roleChangeWindow)

	require.NoError(t, err)
	assert.Len(t, logs, 1)
	// The window trails the current moment by 24 hours
	assert.False(t, logRepo.gotSince.Before(before))
	assert.False(t, logRepo.gotSince.After(after))
}
