package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dokuhost/admin-service/internal/models"
)

// majorRepository implements major data access
type majorRepository struct {
	db *sql.DB
}

// NewMajorRepository creates a new major repository
func NewMajorRepository(db *sql.DB) *majorRepository {
	return &majorRepository{
		db: db,
	}
}

// Create inserts a new major
func (r *majorRepository) Create(ctx context.Context, major *models.Major) error {
	query := `
		INSERT INTO majors (major_name, major_description, count_students)
		VALUES (?, ?, 0)
	`

	result, err := r.db.ExecContext(ctx, query, major.MajorName, major.Description)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: major %s", models.ErrConflict, major.MajorName)
		}
		return fmt.Errorf("failed to create major: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	major.ID = int(id)
	return nil
}

// GetAll retrieves all majors ordered by name
func (r *majorRepository) GetAll(ctx context.Context) ([]models.Major, error) {
	query := `
		SELECT id, major_name, major_description, count_students
		FROM majors
		ORDER BY major_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query majors: %w", err)
	}
	defer rows.Close()

	var majors []models.Major
	for rows.Next() {
		var major models.Major
		if err := rows.Scan(&major.ID, &major.MajorName, &major.Description, &major.CountStudents); err != nil {
			return nil, fmt.Errorf("failed to scan major: %w", err)
		}
		majors = append(majors, major)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return majors, nil
}

// GetByName retrieves a major by name
func (r *majorRepository) GetByName(ctx context.Context, name string) (*models.Major, error) {
	query := `
		SELECT id, major_name, major_description, count_students
		FROM majors
		WHERE major_name = ?
		LIMIT 1
	`

	major := &models.Major{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&major.ID, &major.MajorName, &major.Description, &major.CountStudents,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: major %s", models.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get major by name: %w", err)
	}

	return major, nil
}

// UpdateDescription updates a major's description by name
func (r *majorRepository) UpdateDescription(ctx context.Context, name, description string) error {
	query := `UPDATE majors SET major_description = ? WHERE major_name = ?`

	result, err := r.db.ExecContext(ctx, query, description, name)
	if err != nil {
		return fmt.Errorf("failed to update major description: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: major %s", models.ErrNotFound, name)
	}

	return nil
}

// Delete removes a major by name. Majors that still have students are refused.
func (r *majorRepository) Delete(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id, countStudents int
	err = tx.QueryRowContext(ctx, `
		SELECT id, count_students FROM majors WHERE major_name = ? FOR UPDATE
	`, name).Scan(&id, &countStudents)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: major %s", models.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to lock major: %w", err)
	}

	if countStudents > 0 {
		return fmt.Errorf("%w: major %s still has %d students", models.ErrConflict, name, countStudents)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM majors WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete major: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
