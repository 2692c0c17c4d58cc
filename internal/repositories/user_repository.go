package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dokuhost/admin-service/internal/models"
)

// userRepository implements user data access
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

const userColumns = `id, user_phone, first_name, last_name, user_nick, password_hash, user_email,
		two_fa_auth, email_verified, phone_verified, user_status, special_notes, role_id, tg_chat_id,
		created_at, updated_at`

// Create inserts a new user and increments the target role's counter in one
// transaction. createdBy identifies the acting user for the audit row; pass 0
// for self-registration (the new user becomes the actor).
func (r *userRepository) Create(ctx context.Context, user *models.User, createdBy int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the role row first so the counter update cannot race a role delete
	var roleID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM roles WHERE id = ? FOR UPDATE`, user.RoleID).Scan(&roleID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: role %d", models.ErrNotFound, user.RoleID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock role: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO users (user_phone, first_name, last_name, user_nick, password_hash, user_email,
			two_fa_auth, special_notes, role_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.UserPhone, user.FirstName, user.LastName, user.UserNick, user.PasswordHash,
		user.UserEmail, user.TwoFAAuth, user.SpecialNotes, user.RoleID)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: user with such email, phone or nick", models.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = int(id)

	if _, err = tx.ExecContext(ctx, `
		UPDATE roles SET count_users = count_users + 1 WHERE id = ?
	`, user.RoleID); err != nil {
		return fmt.Errorf("failed to increment role counter: %w", err)
	}

	if createdBy == 0 {
		createdBy = user.ID
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO user_logs (user_id, changed_by, action, old_value, new_value)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, createdBy, models.LogActionUserCreate, "", fmt.Sprintf("role_id=%d", user.RoleID)); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.UserPhone, &user.FirstName, &user.LastName, &user.UserNick,
		&user.PasswordHash, &user.UserEmail, &user.TwoFAAuth, &user.EmailVerified,
		&user.PhoneVerified, &user.UserStatus, &user.SpecialNotes, &user.RoleID,
		&user.TgChatID, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %d", models.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_email = ? LIMIT 1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.UserPhone, &user.FirstName, &user.LastName, &user.UserNick,
		&user.PasswordHash, &user.UserEmail, &user.TwoFAAuth, &user.EmailVerified,
		&user.PhoneVerified, &user.UserStatus, &user.SpecialNotes, &user.RoleID,
		&user.TgChatID, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user with email %s", models.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetWithRole retrieves a user joined with its role name and tier
func (r *userRepository) GetWithRole(ctx context.Context, userID int) (*models.UserWithRole, error) {
	query := `
		SELECT u.id, u.user_phone, u.first_name, u.last_name, u.user_nick, u.password_hash,
			u.user_email, u.two_fa_auth, u.email_verified, u.phone_verified, u.user_status,
			u.special_notes, u.role_id, u.tg_chat_id, u.created_at, u.updated_at,
			r.role_name, r.tier
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = ?
		LIMIT 1
	`

	user := &models.UserWithRole{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.UserPhone, &user.FirstName, &user.LastName, &user.UserNick,
		&user.PasswordHash, &user.UserEmail, &user.TwoFAAuth, &user.EmailVerified,
		&user.PhoneVerified, &user.UserStatus, &user.SpecialNotes, &user.RoleID,
		&user.TgChatID, &user.CreatedAt, &user.UpdatedAt,
		&user.RoleName, &user.Tier,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %d", models.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user with role: %w", err)
	}

	return user, nil
}

// GetWithRoleByEmail retrieves a user with role info by email. Used by login,
// so the caller decides how much of the failure to reveal.
func (r *userRepository) GetWithRoleByEmail(ctx context.Context, email string) (*models.UserWithRole, error) {
	query := `
		SELECT u.id, u.user_phone, u.first_name, u.last_name, u.user_nick, u.password_hash,
			u.user_email, u.two_fa_auth, u.email_verified, u.phone_verified, u.user_status,
			u.special_notes, u.role_id, u.tg_chat_id, u.created_at, u.updated_at,
			r.role_name, r.tier
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.user_email = ?
		LIMIT 1
	`

	user := &models.UserWithRole{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.UserPhone, &user.FirstName, &user.LastName, &user.UserNick,
		&user.PasswordHash, &user.UserEmail, &user.TwoFAAuth, &user.EmailVerified,
		&user.PhoneVerified, &user.UserStatus, &user.SpecialNotes, &user.RoleID,
		&user.TgChatID, &user.CreatedAt, &user.UpdatedAt,
		&user.RoleName, &user.Tier,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user with email %s", models.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user with role by email: %w", err)
	}

	return user, nil
}

// GetAll retrieves a paginated list of users with role names, with optional
// role and search filters
func (r *userRepository) GetAll(ctx context.Context, page, count int, roleID int, search string) ([]models.UserListItem, error) {
	query := `
		SELECT u.id, u.user_nick, u.user_email, u.user_phone, u.role_id, r.role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
	`
	args := []any{}
	where := []string{}

	if roleID != 0 {
		where = append(where, "u.role_id = ?")
		args = append(args, roleID)
	}
	if search != "" {
		where = append(where, "(u.user_email LIKE ? OR u.user_nick LIKE ? OR u.first_name LIKE ? OR u.last_name LIKE ?)")
		like := "%" + search + "%"
		args = append(args, like, like, like, like)
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY u.id ASC LIMIT ? OFFSET ?"
	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.UserListItem
	for rows.Next() {
		var user models.UserListItem
		if err := rows.Scan(&user.ID, &user.UserNick, &user.UserEmail, &user.UserPhone, &user.RoleID, &user.RoleName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE user_email = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// ExistsByPhone checks if a user exists with the given phone
func (r *userRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE user_phone = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check phone existence: %w", err)
	}

	return exists, nil
}

// ChangeRole atomically moves a user to a new role: updates the reference,
// decrements the old role's counter, increments the new one and appends one
// audit row. Returns changed=false when the user already holds the role, in
// which case nothing is mutated.
//
// The protected-role rules that depend on database state live here, inside
// the transaction, so they hold under concurrent role changes:
//   - the target user and the new role must exist (ErrNotFound)
//   - the new role must not be the super-admin role (ErrForbidden)
//   - the target must not currently hold the super-admin role (ErrForbidden)
func (r *userRepository) ChangeRole(ctx context.Context, userID, newRoleID, changedBy int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the user row and read its current role tier
	var currentRoleID int
	var currentTier models.Tier
	err = tx.QueryRowContext(ctx, `
		SELECT u.role_id, r.tier
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = ?
		FOR UPDATE
	`, userID).Scan(&currentRoleID, &currentTier)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("%w: user %d", models.ErrNotFound, userID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to lock user: %w", err)
	}

	if currentTier == models.TierSuperAdmin {
		return false, fmt.Errorf("%w: cannot modify a super-admin", models.ErrForbidden)
	}

	// Lock the new role row and read its tier
	var newTier models.Tier
	err = tx.QueryRowContext(ctx, `SELECT tier FROM roles WHERE id = ? FOR UPDATE`, newRoleID).Scan(&newTier)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("%w: role %d", models.ErrNotFound, newRoleID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to lock role: %w", err)
	}

	if newTier == models.TierSuperAdmin {
		return false, fmt.Errorf("%w: cannot assign the super-admin role", models.ErrForbidden)
	}

	// Idempotent no-op: same role requested again
	if currentRoleID == newRoleID {
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return false, nil
	}

	// Lock the old role row before touching its counter
	var oldRoleID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM roles WHERE id = ? FOR UPDATE`, currentRoleID).Scan(&oldRoleID)
	if err != nil {
		return false, fmt.Errorf("failed to lock old role: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE users SET role_id = ? WHERE id = ?`, newRoleID, userID); err != nil {
		return false, fmt.Errorf("failed to update user role: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE roles SET count_users = count_users - 1 WHERE id = ?`, currentRoleID); err != nil {
		return false, fmt.Errorf("failed to decrement old role counter: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE roles SET count_users = count_users + 1 WHERE id = ?`, newRoleID); err != nil {
		return false, fmt.Errorf("failed to increment new role counter: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO user_logs (user_id, changed_by, action, old_value, new_value)
		VALUES (?, ?, ?, ?, ?)
	`, userID, changedBy, models.LogActionRoleChange,
		fmt.Sprintf("role_id=%d", currentRoleID), fmt.Sprintf("role_id=%d", newRoleID)); err != nil {
		return false, fmt.Errorf("failed to write audit log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// Delete removes a user and decrements its role counter in one transaction
func (r *userRepository) Delete(ctx context.Context, userID, deletedBy int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roleID int
	err = tx.QueryRowContext(ctx, `SELECT role_id FROM users WHERE id = ? FOR UPDATE`, userID).Scan(&roleID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: user %d", models.ErrNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock user: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE roles SET count_users = count_users - 1 WHERE id = ?`, roleID); err != nil {
		return fmt.Errorf("failed to decrement role counter: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO user_logs (user_id, changed_by, action, old_value, new_value)
		VALUES (?, ?, ?, ?, ?)
	`, userID, deletedBy, models.LogActionUserDelete, fmt.Sprintf("role_id=%d", roleID), ""); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
