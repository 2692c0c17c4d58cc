package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dokuhost/admin-service/internal/models"
)

// roleRepository implements role data access
type roleRepository struct {
	db *sql.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *sql.DB) *roleRepository {
	return &roleRepository{
		db: db,
	}
}

// Create inserts a new role
func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (role_name, role_description, tier, count_users)
		VALUES (?, ?, ?, 0)
	`

	result, err := r.db.ExecContext(ctx, query, role.RoleName, role.Description, role.Tier)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: role %s", models.ErrConflict, role.RoleName)
		}
		return fmt.Errorf("failed to create role: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	role.ID = int(id)
	return nil
}

// GetAll retrieves all roles ordered by id
func (r *roleRepository) GetAll(ctx context.Context) ([]models.Role, error) {
	query := `
		SELECT id, role_name, role_description, tier, count_users
		FROM roles
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.RoleName, &role.Description, &role.Tier, &role.CountUsers); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return roles, nil
}

// GetByID retrieves a role by ID
func (r *roleRepository) GetByID(ctx context.Context, roleID int) (*models.Role, error) {
	query := `
		SELECT id, role_name, role_description, tier, count_users
		FROM roles
		WHERE id = ?
		LIMIT 1
	`

	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, roleID).Scan(
		&role.ID, &role.RoleName, &role.Description, &role.Tier, &role.CountUsers,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: role %d", models.ErrNotFound, roleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role by id: %w", err)
	}

	return role, nil
}

// GetByName retrieves a role by name
func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := `
		SELECT id, role_name, role_description, tier, count_users
		FROM roles
		WHERE role_name = ?
		LIMIT 1
	`

	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&role.ID, &role.RoleName, &role.Description, &role.Tier, &role.CountUsers,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: role %s", models.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}

	return role, nil
}

// UpdateDescription updates a role's description by name
func (r *roleRepository) UpdateDescription(ctx context.Context, name, description string) error {
	query := `UPDATE roles SET role_description = ? WHERE role_name = ?`

	result, err := r.db.ExecContext(ctx, query, description, name)
	if err != nil {
		return fmt.Errorf("failed to update role description: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: role %s", models.ErrNotFound, name)
	}

	return nil
}

// Delete removes a role by name. Reserved roles and roles that still have
// users are refused.
func (r *roleRepository) Delete(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var role models.Role
	err = tx.QueryRowContext(ctx, `
		SELECT id, count_users FROM roles WHERE role_name = ? FOR UPDATE
	`, name).Scan(&role.ID, &role.CountUsers)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: role %s", models.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to lock role: %w", err)
	}

	role.RoleName = name
	if role.IsReserved() {
		return fmt.Errorf("%w: role %s is reserved", models.ErrForbidden, name)
	}

	if role.CountUsers > 0 {
		return fmt.Errorf("%w: role %s still has %d users", models.ErrConflict, name, role.CountUsers)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, role.ID); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetStats aggregates per-role user counts
func (r *roleRepository) GetStats(ctx context.Context) (*models.RoleStats, error) {
	roles, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.RoleStats{
		TotalRoles: len(roles),
		Roles:      make([]models.RoleStatsItem, len(roles)),
	}
	for i, role := range roles {
		stats.TotalUsers += role.CountUsers
		stats.Roles[i] = models.RoleStatsItem{
			ID:        role.ID,
			Name:      role.RoleName,
			UserCount: role.CountUsers,
			Tier:      role.Tier,
		}
	}

	return stats, nil
}
