package services

import (
	"context"
	"testing"

	"github.com/dokuhost/admin-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockRoleRepository is a mock implementation of RoleRepository
type mockRoleRepository struct {
	roles       []models.Role
	role        *models.Role
	stats       *models.RoleStats
	err         error
	createdRole *models.Role
	deletedName string
}

func (m *mockRoleRepository) Create(ctx context.Context, role *models.Role) error {
	if m.err != nil {
		return m.err
	}
	role.ID = 6
	m.createdRole = role
	return nil
}

func (m *mockRoleRepository) GetAll(ctx context.Context) ([]models.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.roles, nil
}

func (m *mockRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.role, nil
}

func (m *mockRoleRepository) UpdateDescription(ctx context.Context, name, description string) error {
	return m.err
}

func (m *mockRoleRepository) Delete(ctx context.Context, name string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedName = name
	return nil
}

func (m *mockRoleRepository) GetStats(ctx context.Context) (*models.RoleStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func TestRoleService_CreateRole(t *testing.T) {
	tests := []struct {
		name        string
		req         *models.CreateRoleRequest
		expectedErr error
	}{
		{
			name: "success",
			req:  &models.CreateRoleRequest{RoleName: "  Support  ", Description: "support staff", Tier: models.TierModerator},
		},
		{
			name:        "name too short",
			req:         &models.CreateRoleRequest{RoleName: "ab", Tier: models.TierUser},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "tier below range",
			req:         &models.CreateRoleRequest{RoleName: "Watcher", Tier: 0},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "super admin tier cannot be minted",
			req:         &models.CreateRoleRequest{RoleName: "Overlord", Tier: models.TierSuperAdmin},
			expectedErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roleRepo := &mockRoleRepository{}
			svc := NewRoleService(roleRepo, zaptest.NewLogger(t))

			role, err := svc.CreateRole(context.Background(), tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, roleRepo.createdRole)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, role)
			assert.Equal(t, "Support", role.RoleName)
			assert.Equal(t, models.TierModerator, role.Tier)
			assert.Zero(t, role.CountUsers)
		})
	}
}

func TestRoleService_DeleteRole(t *testing.T) {
	t.Run("trims the name", func(t *testing.T) {
		roleRepo := &mockRoleRepository{}
		svc := NewRoleService(roleRepo, zaptest.NewLogger(t))

		require.NoError(t, svc.DeleteRole(context.Background(), "  Support  "))
		assert.Equal(t, "Support", roleRepo.deletedName)
	})

	t.Run("empty name", func(t *testing.T) {
		roleRepo := &mockRoleRepository{}
		svc := NewRoleService(roleRepo, zaptest.NewLogger(t))

		err := svc.DeleteRole(context.Background(), "   ")

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Empty(t, roleRepo.deletedName)
	})
}
