package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewUserRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Create(t *testing.T) {
	user := &models.User{
		UserPhone:    "+79001234567",
		FirstName:    "Ivan",
		LastName:     "Petrov",
		UserNick:     "ivan_petrov",
		PasswordHash: "$2a$10$hash",
		UserEmail:    "ivan@example.com",
		RoleID:       models.DefaultRoleID,
	}

	tests := []struct {
		name        string
		createdBy   int
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:      "success self registration",
			createdBy: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.DefaultRoleID).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(models.DefaultRoleID))
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(user.UserPhone, user.FirstName, user.LastName, user.UserNick,
						user.PasswordHash, user.UserEmail, 0, nil, models.DefaultRoleID).
					WillReturnResult(sqlmock.NewResult(42, 1))
				mock.ExpectExec(`UPDATE roles SET count_users = count_users \+ 1`).
					WithArgs(models.DefaultRoleID).
					WillReturnResult(sqlmock.NewResult(0, 1))
				// Self-registration: the new user is recorded as the actor
				mock.ExpectExec(`INSERT INTO user_logs`).
					WithArgs(42, 42, models.LogActionUserCreate, "", "role_id=4").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:      "success admin created",
			createdBy: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.DefaultRoleID).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(models.DefaultRoleID))
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(user.UserPhone, user.FirstName, user.LastName, user.UserNick,
						user.PasswordHash, user.UserEmail, 0, nil, models.DefaultRoleID).
					WillReturnResult(sqlmock.NewResult(43, 1))
				mock.ExpectExec(`UPDATE roles SET count_users = count_users \+ 1`).
					WithArgs(models.DefaultRoleID).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_logs`).
					WithArgs(43, 7, models.LogActionUserCreate, "", "role_id=4").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:      "role not found",
			createdBy: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.DefaultRoleID).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: models.ErrNotFound,
		},
		{
			name:      "duplicate entry",
			createdBy: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.DefaultRoleID).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(models.DefaultRoleID))
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(user.UserPhone, user.FirstName, user.LastName, user.UserNick,
						user.PasswordHash, user.UserEmail, 0, nil, models.DefaultRoleID).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectRollback()
			},
			expectedErr: models.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			u := *user
			err := repo.Create(context.Background(), &u, tt.createdBy)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, u.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ChangeRole(t *testing.T) {
	tests := []struct {
		name            string
		userID          int
		newRoleID       int
		setupMock       func(sqlmock.Sqlmock)
		expectedChanged bool
		expectedErr     error
	}{
		{
			name:      "success",
			userID:    10,
			newRoleID: models.RoleIDModerator,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT u.role_id, r.tier`).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"role_id", "tier"}).
						AddRow(models.RoleIDUser, models.TierUser))
				mock.ExpectQuery(`SELECT tier FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.RoleIDModerator).
					WillReturnRows(sqlmock.NewRows([]string{"tier"}).AddRow(models.TierModerator))
				mock.ExpectQuery(`SELECT id FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.RoleIDUser).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(models.RoleIDUser))
				mock.ExpectExec(`UPDATE users SET role_id = \? WHERE id = \?`).
					WithArgs(models.RoleIDModerator, 10).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE roles SET count_users = count_users - 1`).
					WithArgs(models.RoleIDUser).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE roles SET count_users = count_users \+ 1`).
					WithArgs(models.RoleIDModerator).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_logs`).
					WithArgs(10, 1, models.LogActionRoleChange, "role_id=4", "role_id=3").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			expectedChanged: true,
		},
		{
			name:      "same role is a no-op",
			userID:    10,
			newRoleID: models.RoleIDUser,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT u.role_id, r.tier`).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"role_id", "tier"}).
						AddRow(models.RoleIDUser, models.TierUser))
				mock.ExpectQuery(`SELECT tier FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.RoleIDUser).
					WillReturnRows(sqlmock.NewRows([]string{"tier"}).AddRow(models.TierUser))
				// No counter updates and no audit row
				mock.ExpectCommit()
			},
			expectedChanged: false,
		},
		{
			name:      "user not found",
			userID:    99,
			newRoleID: models.RoleIDModerator,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT u.role_id, r.tier`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: models.ErrNotFound,
		},
		{
			name:      "target holds super-admin",
			userID:    1,
			newRoleID: models.RoleIDUser,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT u.role_id, r.tier`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"role_id", "tier"}).
						AddRow(models.RoleIDSuperAdmin, models.TierSuperAdmin))
				mock.ExpectRollback()
			},
			expectedErr: models.ErrForbidden,
		},
		{
			name:      "assigning super-admin role",
			userID:    10,
			newRoleID: models.RoleIDSuperAdmin,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT u.role_id, r.tier`).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"role_id", "tier"}).
						AddRow(models.RoleIDUser, models.TierUser))
				mock.ExpectQuery(`SELECT tier FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.RoleIDSuperAdmin).
					WillReturnRows(sqlmock.NewRows([]string{"tier"}).AddRow(models.TierSuperAdmin))
				mock.ExpectRollback()
			},
			expectedErr: models.ErrForbidden,
		},
		{
			name:      "new role not found",
			userID:    10,
			newRoleID: 77,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT u.role_id, r.tier`).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"role_id", "tier"}).
						AddRow(models.RoleIDUser, models.TierUser))
				mock.ExpectQuery(`SELECT tier FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(77).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: models.ErrNotFound,
		},
		{
			name:      "counter update failure rolls back",
			userID:    10,
			newRoleID: models.RoleIDModerator,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT u.role_id, r.tier`).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"role_id", "tier"}).
						AddRow(models.RoleIDUser, models.TierUser))
				mock.ExpectQuery(`SELECT tier FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.RoleIDModerator).
					WillReturnRows(sqlmock.NewRows([]string{"tier"}).AddRow(models.TierModerator))
				mock.ExpectQuery(`SELECT id FROM roles WHERE id = \? FOR UPDATE`).
					WithArgs(models.RoleIDUser).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(models.RoleIDUser))
				mock.ExpectExec(`UPDATE users SET role_id = \? WHERE id = \?`).
					WithArgs(models.RoleIDModerator, 10).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE roles SET count_users = count_users - 1`).
					WithArgs(models.RoleIDUser).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedErr: nil, // plain error, checked below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			changed, err := repo.ChangeRole(context.Background(), tt.userID, tt.newRoleID, 1)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.False(t, changed)
			case tt.name == "counter update failure rolls back":
				assert.Error(t, err)
				assert.False(t, changed)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedChanged, changed)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name        string
		userID      int
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:   "success",
			userID: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT role_id FROM users WHERE id = \? FOR UPDATE`).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"role_id"}).AddRow(models.RoleIDUser))
				mock.ExpectExec(`DELETE FROM users WHERE id = \?`).
					WithArgs(10).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE roles SET count_users = count_users - 1`).
					WithArgs(models.RoleIDUser).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO user_logs`).
					WithArgs(10, 1, models.LogActionUserDelete, "role_id=4", "").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "user not found",
			userID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT role_id FROM users WHERE id = \? FOR UPDATE`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.userID, 1)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetWithRole(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		userID      int
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:   "success",
			userID: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "user_phone", "first_name", "last_name", "user_nick", "password_hash",
					"user_email", "two_fa_auth", "email_verified", "phone_verified", "user_status",
					"special_notes", "role_id", "tg_chat_id", "created_at", "updated_at",
					"role_name", "tier",
				}).AddRow(10, "+79001234567", "Ivan", "Petrov", "ivan_petrov", "$2a$10$hash",
					"ivan@example.com", 0, 0, 0, nil,
					nil, models.RoleIDUser, nil, now, now,
					"User", models.TierUser)
				mock.ExpectQuery(`SELECT u.id, u.user_phone`).
					WithArgs(10).
					WillReturnRows(rows)
			},
		},
		{
			name:   "not found",
			userID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT u.id, u.user_phone`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetWithRole(context.Background(), tt.userID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.userID, user.ID)
				assert.Equal(t, "User", user.RoleName)
				assert.Equal(t, models.TierUser, user.Tier)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ivan@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "ivan@example.com")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
