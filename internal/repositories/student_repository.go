package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dokuhost/admin-service/internal/models"
)

// studentRepository implements student data access. Students carry the same
// denormalized-counter pattern as users: every insert, delete and major change
// keeps majors.count_students in sync inside one transaction.
type studentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *sql.DB) *studentRepository {
	return &studentRepository{
		db: db,
	}
}

// Create inserts a student and increments the major's counter in one transaction
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var majorID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM majors WHERE id = ? FOR UPDATE`, student.MajorID).Scan(&majorID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: major %d", models.ErrNotFound, student.MajorID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock major: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO students (phone_number, first_name, last_name, date_of_birth, email,
			address, enrollment_year, course, special_notes, major_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, student.PhoneNumber, student.FirstName, student.LastName, student.DateOfBirth,
		student.Email, student.Address, student.EnrollmentYear, student.Course,
		student.SpecialNotes, student.MajorID)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: student with such phone or email", models.ErrConflict)
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	student.ID = int(id)

	if _, err = tx.ExecContext(ctx, `
		UPDATE majors SET count_students = count_students + 1 WHERE id = ?
	`, student.MajorID); err != nil {
		return fmt.Errorf("failed to increment major counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID joined with its major name
func (r *studentRepository) GetByID(ctx context.Context, studentID int) (*models.StudentWithMajor, error) {
	query := `
		SELECT s.id, s.phone_number, s.first_name, s.last_name, s.date_of_birth, s.email,
			s.address, s.enrollment_year, s.course, s.special_notes, s.major_id, m.major_name
		FROM students s
		JOIN majors m ON m.id = s.major_id
		WHERE s.id = ?
		LIMIT 1
	`

	student := &models.StudentWithMajor{}
	err := r.db.QueryRowContext(ctx, query, studentID).Scan(
		&student.ID, &student.PhoneNumber, &student.FirstName, &student.LastName,
		&student.DateOfBirth, &student.Email, &student.Address, &student.EnrollmentYear,
		&student.Course, &student.SpecialNotes, &student.MajorID, &student.MajorName,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: student %d", models.ErrNotFound, studentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}

	return student, nil
}

// GetAll retrieves students with optional course/major/enrollment year filters
func (r *studentRepository) GetAll(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithMajor, error) {
	query := `
		SELECT s.id, s.phone_number, s.first_name, s.last_name, s.date_of_birth, s.email,
			s.address, s.enrollment_year, s.course, s.special_notes, s.major_id, m.major_name
		FROM students s
		JOIN majors m ON m.id = s.major_id
	`
	args := []any{}
	where := []string{}

	if filter.Course != 0 {
		where = append(where, "s.course = ?")
		args = append(args, filter.Course)
	}
	if filter.MajorID != 0 {
		where = append(where, "s.major_id = ?")
		args = append(args, filter.MajorID)
	}
	if filter.EnrollmentYear != 0 {
		where = append(where, "s.enrollment_year = ?")
		args = append(args, filter.EnrollmentYear)
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY s.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.StudentWithMajor
	for rows.Next() {
		var student models.StudentWithMajor
		err := rows.Scan(
			&student.ID, &student.PhoneNumber, &student.FirstName, &student.LastName,
			&student.DateOfBirth, &student.Email, &student.Address, &student.EnrollmentYear,
			&student.Course, &student.SpecialNotes, &student.MajorID, &student.MajorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return students, nil
}

// Update applies field changes to a student. A major change moves the student
// between majors and updates both counters in the same transaction.
func (r *studentRepository) Update(ctx context.Context, studentID int, req *models.UpdateStudentRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var currentMajorID int
	err = tx.QueryRowContext(ctx, `SELECT major_id FROM students WHERE id = ? FOR UPDATE`, studentID).Scan(&currentMajorID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: student %d", models.ErrNotFound, studentID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock student: %w", err)
	}

	set := []string{}
	args := []any{}
	appendSet := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}

	if req.PhoneNumber != nil {
		appendSet("phone_number", *req.PhoneNumber)
	}
	if req.FirstName != nil {
		appendSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		appendSet("last_name", *req.LastName)
	}
	if req.Address != nil {
		appendSet("address", *req.Address)
	}
	if req.EnrollmentYear != nil {
		appendSet("enrollment_year", *req.EnrollmentYear)
	}
	if req.Course != nil {
		appendSet("course", *req.Course)
	}
	if req.SpecialNotes != nil {
		appendSet("special_notes", *req.SpecialNotes)
	}

	majorChanged := req.MajorID != nil && *req.MajorID != currentMajorID
	if majorChanged {
		// Lock both major rows before touching their counters
		var newMajorID int
		err = tx.QueryRowContext(ctx, `SELECT id FROM majors WHERE id = ? FOR UPDATE`, *req.MajorID).Scan(&newMajorID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: major %d", models.ErrNotFound, *req.MajorID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock major: %w", err)
		}

		var oldMajorID int
		if err = tx.QueryRowContext(ctx, `SELECT id FROM majors WHERE id = ? FOR UPDATE`, currentMajorID).Scan(&oldMajorID); err != nil {
			return fmt.Errorf("failed to lock old major: %w", err)
		}

		appendSet("major_id", *req.MajorID)
	}

	if len(set) == 0 {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	query := "UPDATE students SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = ?"
	args = append(args, studentID)

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: student with such phone or email", models.ErrConflict)
		}
		return fmt.Errorf("failed to update student: %w", err)
	}

	if majorChanged {
		if _, err = tx.ExecContext(ctx, `UPDATE majors SET count_students = count_students - 1 WHERE id = ?`, currentMajorID); err != nil {
			return fmt.Errorf("failed to decrement old major counter: %w", err)
		}
		if _, err = tx.ExecContext(ctx, `UPDATE majors SET count_students = count_students + 1 WHERE id = ?`, *req.MajorID); err != nil {
			return fmt.Errorf("failed to increment new major counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a student and decrements its major's counter in one transaction
func (r *studentRepository) Delete(ctx context.Context, studentID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var majorID int
	err = tx.QueryRowContext(ctx, `SELECT major_id FROM students WHERE id = ? FOR UPDATE`, studentID).Scan(&majorID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: student %d", models.ErrNotFound, studentID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock student: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, studentID); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE majors SET count_students = count_students - 1 WHERE id = ?`, majorID); err != nil {
		return fmt.Errorf("failed to decrement major counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
