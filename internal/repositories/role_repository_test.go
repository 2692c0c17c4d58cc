package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRoleTestRepository creates a role repository with a mock database
func setupRoleTestRepository(t *testing.T) (*roleRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewRoleRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRoleRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		role        *models.Role
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success",
			role: &models.Role{RoleName: "Support", Description: "Support staff", Tier: models.TierModerator},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO roles`).
					WithArgs("Support", "Support staff", models.TierModerator).
					WillReturnResult(sqlmock.NewResult(6, 1))
			},
		},
		{
			name: "duplicate name",
			role: &models.Role{RoleName: "Admin", Tier: models.TierAdmin},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO roles`).
					WithArgs("Admin", "", models.TierAdmin).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
			},
			expectedErr: models.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRoleTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.role)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 6, tt.role.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoleRepository_Delete(t *testing.T) {
	tests := []struct {
		name        string
		roleName    string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:     "success",
			roleName: "Support",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id, count_users FROM roles WHERE role_name = \? FOR UPDATE`).
					WithArgs("Support").
					WillReturnRows(sqlmock.NewRows([]string{"id", "count_users"}).AddRow(6, 0))
				mock.ExpectExec(`DELETE FROM roles WHERE id = \?`).
					WithArgs(6).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:     "reserved role",
			roleName: "Admin",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id, count_users FROM roles WHERE role_name = \? FOR UPDATE`).
					WithArgs("Admin").
					WillReturnRows(sqlmock.NewRows([]string{"id", "count_users"}).AddRow(models.RoleIDAdmin, 0))
				mock.ExpectRollback()
			},
			expectedErr: models.ErrForbidden,
		},
		{
			name:     "role still has users",
			roleName: "Support",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id, count_users FROM roles WHERE role_name = \? FOR UPDATE`).
					WithArgs("Support").
					WillReturnRows(sqlmock.NewRows([]string{"id", "count_users"}).AddRow(6, 3))
				mock.ExpectRollback()
			},
			expectedErr: models.ErrConflict,
		},
		{
			name:     "role not found",
			roleName: "Ghost",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id, count_users FROM roles WHERE role_name = \? FOR UPDATE`).
					WithArgs("Ghost").
					WillReturnRows(sqlmock.NewRows([]string{"id", "count_users"}))
				mock.ExpectRollback()
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRoleTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.roleName)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoleRepository_GetStats(t *testing.T) {
	repo, mock, cleanup := setupRoleTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "role_name", "role_description", "tier", "count_users"}).
		AddRow(1, "SuperAdmin", "", models.TierSuperAdmin, 1).
		AddRow(2, "Admin", "", models.TierAdmin, 2).
		AddRow(4, "User", "", models.TierUser, 40)
	mock.ExpectQuery(`SELECT id, role_name, role_description, tier, count_users`).
		WillReturnRows(rows)

	stats, err := repo.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRoles)
	assert.Equal(t, 43, stats.TotalUsers)
	require.Len(t, stats.Roles, 3)
	assert.Equal(t, "User", stats.Roles[2].Name)
	assert.Equal(t, 40, stats.Roles[2].UserCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_UpdateDescription(t *testing.T) {
	tests := []struct {
		name        string
		roleName    string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:     "success",
			roleName: "Support",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE roles SET role_description = \? WHERE role_name = \?`).
					WithArgs("Handles tickets", "Support").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:     "role not found",
			roleName: "Ghost",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE roles SET role_description = \? WHERE role_name = \?`).
					WithArgs("Handles tickets", "Ghost").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRoleTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateDescription(context.Background(), tt.roleName, "Handles tickets")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
