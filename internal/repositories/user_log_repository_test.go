package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupUserLogTestRepository creates a user log repository with a mock database
func setupUserLogTestRepository(t *testing.T) (*userLogRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserLogRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func logRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "changed_by", "action", "old_value", "new_value", "created_at"}).
		AddRow(3, 10, 1, models.LogActionRoleChange, "role_id=4", "role_id=3", now).
		AddRow(2, 10, 1, models.LogActionUserCreate, "", "role_id=4", now.Add(-time.Hour))
}

func TestUserLogRepository_List(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		filter    models.UserLogFilter
		setupMock func(sqlmock.Sqlmock)
	}{
		{
			name:   "no filters uses default limit",
			filter: models.UserLogFilter{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM user_logs ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`).
					WithArgs(50, 0).
					WillReturnRows(logRows(now))
			},
		},
		{
			name:   "user and action filters",
			filter: models.UserLogFilter{UserID: 10, Action: models.LogActionRoleChange, Offset: 5, Limit: 20},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM user_logs WHERE user_id = \? AND action = \?`).
					WithArgs(10, models.LogActionRoleChange, 20, 5).
					WillReturnRows(logRows(now))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserLogTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			logs, err := repo.List(context.Background(), tt.filter)

			require.NoError(t, err)
			require.Len(t, logs, 2)
			// Newest-first ordering comes back from the query as-is
			assert.Equal(t, 3, logs[0].ID)
			assert.Equal(t, models.LogActionRoleChange, logs[0].Action)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserLogRepository_ListRoleChangesSince(t *testing.T) {
	repo, mock, cleanup := setupUserLogTestRepository(t)
	defer cleanup()

	since := time.Now().Add(-24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "changed_by", "action", "old_value", "new_value", "created_at"}).
		AddRow(3, 10, 1, models.LogActionRoleChange, "role_id=4", "role_id=3", time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM user_logs\s+WHERE action = \? AND created_at >= \?`).
		WithArgs(models.LogActionRoleChange, since).
		WillReturnRows(rows)

	logs, err := repo.ListRoleChangesSince(context.Background(), since)

	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.LogActionRoleChange, logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserLogRepository_ListByUser(t *testing.T) {
	repo, mock, cleanup := setupUserLogTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM user_logs WHERE user_id = \?`).
		WithArgs(10).
		WillReturnRows(logRows(time.Now()))

	logs, err := repo.ListByUser(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
