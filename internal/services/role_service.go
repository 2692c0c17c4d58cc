package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dokuhost/admin-service/internal/models"
	"go.uber.org/zap"
)

// RoleRepository is the interface that wraps methods for Role table data access
type RoleRepository interface {
	// Method Create inserts a new role into the database.
	//
	// "role" parameter is used to create a new role.
	//
	// If a role with such name already exists, the error will be returned.
	Create(ctx context.Context, role *models.Role) error
	// Method GetAll retrieves all roles with their user counters.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Role, error)
	// Method GetByName retrieves a role by name.
	//
	// "name" parameter is used to retrieve a role by name.
	//
	// If role with such name does not exist, the error will be returned together with "nil" value.
	GetByName(ctx context.Context, name string) (*models.Role, error)
	// Method UpdateDescription updates the description of a role by name.
	//
	// "name" parameter selects the role.
	// "description" parameter is the new description.
	//
	// If role with such name does not exist, the error will be returned.
	UpdateDescription(ctx context.Context, name, description string) error
	// Method Delete removes a role by name. Reserved roles and roles that
	// still have users are refused.
	//
	// "name" parameter selects the role.
	//
	// If role with such name does not exist, the error will be returned.
	Delete(ctx context.Context, name string) error
	// Method GetStats retrieves the per-role user counts and totals.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetStats(ctx context.Context) (*models.RoleStats, error)
}

// roleService implements role administration
type roleService struct {
	roleRepo RoleRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo RoleRepository, logger *zap.Logger) *roleService {
	return &roleService{roleRepo: roleRepo, logger: logger}
}

// GetRoles retrieves all roles with their user counters
func (s *roleService) GetRoles(ctx context.Context) ([]models.Role, error) {
	return s.roleRepo.GetAll(ctx)
}

// GetStats retrieves the per-role user counts and totals
func (s *roleService) GetStats(ctx context.Context) (*models.RoleStats, error) {
	return s.roleRepo.GetStats(ctx)
}

// CreateRole creates a new role with a zero user counter
func (s *roleService) CreateRole(ctx context.Context, req *models.CreateRoleRequest) (*models.Role, error) {
	name := strings.TrimSpace(req.RoleName)
	if l := len([]rune(name)); l < 3 || l > 50 {
		return nil, fmt.Errorf("%w: role_name must be from 3 to 50 characters", models.ErrValidation)
	}
	if req.Tier < models.TierGuest || req.Tier > models.TierAdmin {
		return nil, fmt.Errorf("%w: tier must be from %d to %d", models.ErrValidation, models.TierGuest, models.TierAdmin)
	}

	role := &models.Role{
		RoleName:    name,
		Description: strings.TrimSpace(req.Description),
		Tier:        req.Tier,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("role created", zap.String("roleName", role.RoleName), zap.Int("roleId", role.ID))
	return role, nil
}

// UpdateRoleDescription updates the description of a role by name
func (s *roleService) UpdateRoleDescription(ctx context.Context, req *models.UpdateRoleDescriptionRequest) error {
	name := strings.TrimSpace(req.RoleName)
	if name == "" {
		return fmt.Errorf("%w: role_name cannot be empty", models.ErrValidation)
	}
	return s.roleRepo.UpdateDescription(ctx, name, strings.TrimSpace(req.Description))
}

// DeleteRole removes an empty, non-reserved role by name
func (s *roleService) DeleteRole(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: role name cannot be empty", models.ErrValidation)
	}

	if err := s.roleRepo.Delete(ctx, name); err != nil {
		return err
	}

	s.logger.Info("role deleted", zap.String("roleName", name))
	return nil
}
