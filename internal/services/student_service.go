package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dokuhost/admin-service/internal/models"
	"go.uber.org/zap"
)

// StudentRepository is the interface that wraps methods for Student table data access
type StudentRepository interface {
	// Method Create inserts a new student and increments the counter of its
	// major in one transaction.
	//
	// "student" parameter is used to create a new student.
	//
	// If the major does not exist, the error will be returned.
	Create(ctx context.Context, student *models.Student) error
	// Method GetByID retrieves a student by ID together with its major name.
	//
	// "studentID" parameter is used to retrieve a student by ID.
	//
	// If student with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, studentID int) (*models.StudentWithMajor, error)
	// Method GetAll retrieves students with their major names, honoring the filter.
	//
	// "filter" parameter narrows by course, major and enrollment year.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithMajor, error)
	// Method Update applies the non-nil fields of the request to a student.
	// When the major changes, both major counters are adjusted in the same
	// transaction.
	//
	// "studentID" parameter selects the student.
	// "req" parameter carries the fields to change.
	//
	// If student with such ID does not exist, the error will be returned.
	Update(ctx context.Context, studentID int, req *models.UpdateStudentRequest) error
	// Method Delete removes a student and decrements the counter of its major
	// in one transaction.
	//
	// "studentID" parameter selects the student.
	//
	// If student with such ID does not exist, the error will be returned.
	Delete(ctx context.Context, studentID int) error
}

const (
	minCourse         = 1
	maxCourse         = 5
	minEnrollmentYear = 2002
)

// studentService implements student record keeping
type studentService struct {
	studentRepo StudentRepository
	logger      *zap.Logger
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo StudentRepository, logger *zap.Logger) *studentService {
	return &studentService{studentRepo: studentRepo, logger: logger}
}

// GetStudents retrieves students with their major names, honoring the filter
func (s *studentService) GetStudents(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithMajor, error) {
	return s.studentRepo.GetAll(ctx, filter)
}

// GetStudent retrieves one student with its major name
func (s *studentService) GetStudent(ctx context.Context, studentID int) (*models.StudentWithMajor, error) {
	return s.studentRepo.GetByID(ctx, studentID)
}

// CreateStudent validates and creates a student record
func (s *studentService) CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (*models.StudentWithMajor, error) {
	phone, err := NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err = validateName("first_name", req.FirstName); err != nil {
		return nil, err
	}
	if err = validateName("last_name", req.LastName); err != nil {
		return nil, err
	}
	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if err = validateCourse(req.Course); err != nil {
		return nil, err
	}
	if err = validateEnrollmentYear(req.EnrollmentYear); err != nil {
		return nil, err
	}
	if req.MajorID <= 0 {
		return nil, fmt.Errorf("%w: major_id must be positive", models.ErrValidation)
	}

	student := &models.Student{
		PhoneNumber:    phone,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		DateOfBirth:    dateOfBirth,
		Email:          email,
		Address:        strings.TrimSpace(req.Address),
		EnrollmentYear: req.EnrollmentYear,
		Course:         req.Course,
		SpecialNotes:   req.SpecialNotes,
		MajorID:        req.MajorID,
	}

	if err = s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student created", zap.Int("studentId", student.ID), zap.Int("majorId", student.MajorID))
	return s.studentRepo.GetByID(ctx, student.ID)
}

// UpdateStudent validates the provided fields and applies them
func (s *studentService) UpdateStudent(ctx context.Context, studentID int, req *models.UpdateStudentRequest) (*models.StudentWithMajor, error) {
	if req.PhoneNumber != nil {
		phone, err := NormalizePhone(*req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		req.PhoneNumber = &phone
	}
	if req.FirstName != nil {
		if err := validateName("first_name", *req.FirstName); err != nil {
			return nil, err
		}
	}
	if req.LastName != nil {
		if err := validateName("last_name", *req.LastName); err != nil {
			return nil, err
		}
	}
	if req.Course != nil {
		if err := validateCourse(*req.Course); err != nil {
			return nil, err
		}
	}
	if req.EnrollmentYear != nil {
		if err := validateEnrollmentYear(*req.EnrollmentYear); err != nil {
			return nil, err
		}
	}
	if req.MajorID != nil && *req.MajorID <= 0 {
		return nil, fmt.Errorf("%w: major_id must be positive", models.ErrValidation)
	}

	if err := s.studentRepo.Update(ctx, studentID, req); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, studentID)
}

// DeleteStudent removes a student record
func (s *studentService) DeleteStudent(ctx context.Context, studentID int) error {
	if err := s.studentRepo.Delete(ctx, studentID); err != nil {
		return err
	}

	s.logger.Info("student deleted", zap.Int("studentId", studentID))
	return nil
}

// parseDateOfBirth parses a YYYY-MM-DD date and requires it to be in the past
func parseDateOfBirth(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date_of_birth must be a valid YYYY-MM-DD date", models.ErrValidation)
	}
	if !date.Before(time.Now()) {
		return time.Time{}, fmt.Errorf("%w: date_of_birth must be in the past", models.ErrValidation)
	}
	return date, nil
}

// validateCourse checks the course range
func validateCourse(course int) error {
	if course < minCourse || course > maxCourse {
		return fmt.Errorf("%w: course must be from %d to %d", models.ErrValidation, minCourse, maxCourse)
	}
	return nil
}

// validateEnrollmentYear checks the enrollment year range
func validateEnrollmentYear(year int) error {
	if year < minEnrollmentYear || year > time.Now().Year() {
		return fmt.Errorf("%w: enrollment_year must be from %d to the current year", models.ErrValidation, minEnrollmentYear)
	}
	return nil
}
