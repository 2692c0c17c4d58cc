package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dokuhost/admin-service/internal/models"
)

// userLogRepository reads the append-only audit log. Writes happen inside the
// user repository transactions so a log row can never outlive or miss its
// triggering mutation.
type userLogRepository struct {
	db *sql.DB
}

// NewUserLogRepository creates a new user log repository
func NewUserLogRepository(db *sql.DB) *userLogRepository {
	return &userLogRepository{
		db: db,
	}
}

const userLogColumns = `id, user_id, changed_by, action, old_value, new_value, created_at`

// List retrieves audit rows newest-first with optional user/action filters and
// offset+limit pagination
func (r *userLogRepository) List(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, error) {
	query := `SELECT ` + userLogColumns + ` FROM user_logs`
	args := []any{}
	where := []string{}

	if filter.UserID != 0 {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Action != "" {
		where = append(where, "action = ?")
		args = append(args, filter.Action)
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY created_at DESC, id DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	return r.queryLogs(ctx, query, args...)
}

// ListByUser retrieves all audit rows for one user, newest-first
func (r *userLogRepository) ListByUser(ctx context.Context, userID int) ([]models.UserLog, error) {
	query := `SELECT ` + userLogColumns + ` FROM user_logs WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return r.queryLogs(ctx, query, userID)
}

// ListRoleChangesSince retrieves role-change rows created after the given
// time, newest-first
func (r *userLogRepository) ListRoleChangesSince(ctx context.Context, since time.Time) ([]models.UserLog, error) {
	query := `SELECT ` + userLogColumns + ` FROM user_logs
		WHERE action = ? AND created_at >= ?
		ORDER BY created_at DESC, id DESC`
	return r.queryLogs(ctx, query, models.LogActionRoleChange, since)
}

func (r *userLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]models.UserLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user logs: %w", err)
	}
	defer rows.Close()

	var logs []models.UserLog
	for rows.Next() {
		var log models.UserLog
		err := rows.Scan(
			&log.ID, &log.UserID, &log.ChangedBy, &log.Action,
			&log.OldValue, &log.NewValue, &log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user log: %w", err)
		}
		logs = append(logs, log)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return logs, nil
}
