package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dokuhost/admin-service/internal/models"
	"go.uber.org/zap"
)

// MajorRepository is the interface that wraps methods for Major table data access
type MajorRepository interface {
	// Method Create inserts a new major into the database.
	//
	// "major" parameter is used to create a new major.
	//
	// If a major with such name already exists, the error will be returned.
	Create(ctx context.Context, major *models.Major) error
	// Method GetAll retrieves all majors with their student counters.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Major, error)
	// Method GetByName retrieves a major by name.
	//
	// "name" parameter is used to retrieve a major by name.
	//
	// If major with such name does not exist, the error will be returned together with "nil" value.
	GetByName(ctx context.Context, name string) (*models.Major, error)
	// Method UpdateDescription updates the description of a major by name.
	//
	// "name" parameter selects the major.
	// "description" parameter is the new description.
	//
	// If major with such name does not exist, the error will be returned.
	UpdateDescription(ctx context.Context, name, description string) error
	// Method Delete removes a major by name. Majors that still have students
	// are refused.
	//
	// "name" parameter selects the major.
	//
	// If major with such name does not exist, the error will be returned.
	Delete(ctx context.Context, name string) error
}

// majorService implements major administration
type majorService struct {
	majorRepo MajorRepository
	logger    *zap.Logger
}

// NewMajorService creates a new major service
func NewMajorService(majorRepo MajorRepository, logger *zap.Logger) *majorService {
	return &majorService{majorRepo: majorRepo, logger: logger}
}

// GetMajors retrieves all majors with their student counters
func (s *majorService) GetMajors(ctx context.Context) ([]models.Major, error) {
	return s.majorRepo.GetAll(ctx)
}

// GetMajor retrieves one major by name
func (s *majorService) GetMajor(ctx context.Context, name string) (*models.Major, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: major name cannot be empty", models.ErrValidation)
	}
	return s.majorRepo.GetByName(ctx, name)
}

// CreateMajor creates a new major with a zero student counter
func (s *majorService) CreateMajor(ctx context.Context, req *models.CreateMajorRequest) (*models.Major, error) {
	name := strings.TrimSpace(req.MajorName)
	if l := len([]rune(name)); l < 3 || l > 100 {
		return nil, fmt.Errorf("%w: major_name must be from 3 to 100 characters", models.ErrValidation)
	}

	major := &models.Major{
		MajorName:   name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.majorRepo.Create(ctx, major); err != nil {
		return nil, err
	}

	s.logger.Info("major created", zap.String("majorName", major.MajorName), zap.Int("majorId", major.ID))
	return major, nil
}

// UpdateMajorDescription updates the description of a major by name
func (s *majorService) UpdateMajorDescription(ctx context.Context, req *models.UpdateMajorDescriptionRequest) error {
	name := strings.TrimSpace(req.MajorName)
	if name == "" {
		return fmt.Errorf("%w: major_name cannot be empty", models.ErrValidation)
	}
	return s.majorRepo.UpdateDescription(ctx, name, strings.TrimSpace(req.Description))
}

// DeleteMajor removes an empty major by name
func (s *majorService) DeleteMajor(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: major name cannot be empty", models.ErrValidation)
	}

	if err := s.majorRepo.Delete(ctx, name); err != nil {
		return err
	}

	s.logger.Info("major deleted", zap.String("majorName", name))
	return nil
}
