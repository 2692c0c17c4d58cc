package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dokuhost/admin-service/internal/auth/middleware"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RoleService is the interface that wraps methods for role administration business logic.
type RoleService interface {
	// Method GetRoles retrieves all roles with their user counters.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetRoles(ctx context.Context) ([]models.Role, error)
	// Method GetStats retrieves the per-role user counts and totals.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetStats(ctx context.Context) (*models.RoleStats, error)
	// Method CreateRole creates a new role with a zero user counter.
	//
	// "req" parameter carries the role name, description and tier.
	//
	// If a role with such name already exists, the error will be returned together with "nil" value.
	CreateRole(ctx context.Context, req *models.CreateRoleRequest) (*models.Role, error)
	// Method UpdateRoleDescription updates the description of a role by name.
	//
	// "req" parameter carries the role name and the new description.
	//
	// If role with such name does not exist, the error will be returned.
	UpdateRoleDescription(ctx context.Context, req *models.UpdateRoleDescriptionRequest) error
	// Method DeleteRole removes an empty, non-reserved role by name.
	//
	// "name" parameter selects the role.
	//
	// If role with such name does not exist, the error will be returned.
	DeleteRole(ctx context.Context, name string) error
}

// RoleHandler handles role administration HTTP requests
type RoleHandler struct {
	BaseHandler
	roleService RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		BaseHandler: BaseHandler{Logger: logger},
		roleService: roleService,
	}
}

// RegisterRoutes registers the role routes. The router must already carry
// the auth middleware.
func (h *RoleHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierAdmin))
		r.Get("/", h.GetRoles)
		r.Get("/stats", h.GetStats)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierSuperAdmin))
		r.Post("/add", h.CreateRole)
		r.Put("/update_description", h.UpdateDescription)
		r.Delete("/{name}", h.DeleteRole)
	})
}

// GetRoles handles GET /roles/
// @Summary Get all roles
// @Description Get all roles with their user counters
// @Tags roles
// @Produce json
// @Success 200 {array} models.Role "List of roles"
// @Router /roles/ [get]
func (h *RoleHandler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.GetRoles(r.Context())
	if err != nil {
		h.Logger.Error("failed to get roles", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, roles)
}

// GetStats handles GET /roles/stats
// @Summary Get role statistics
// @Description Get total role and user counts with a per-role breakdown
// @Tags roles
// @Produce json
// @Success 200 {object} models.RoleStats "Role statistics"
// @Router /roles/stats [get]
func (h *RoleHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.roleService.GetStats(r.Context())
	if err != nil {
		h.Logger.Error("failed to get role stats", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}

// CreateRole handles POST /roles/add
// @Summary Create role
// @Description Create a new role with a zero user counter
// @Tags roles
// @Accept json
// @Produce json
// @Param request body models.CreateRoleRequest true "New role data"
// @Success 201 {object} models.Role "Created role"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Role name already exists"
// @Router /roles/add [post]
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.roleService.CreateRole(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to create role", zap.String("roleName", req.RoleName), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, role)
}

// UpdateDescription handles PUT /roles/update_description
// @Summary Update role description
// @Description Update the description of a role selected by name
// @Tags roles
// @Accept json
// @Produce json
// @Param request body models.UpdateRoleDescriptionRequest true "Role name and new description"
// @Success 200 {object} map[string]string "Description updated"
// @Failure 404 {object} map[string]string "Role not found"
// @Router /roles/update_description [put]
func (h *RoleHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.roleService.UpdateRoleDescription(r.Context(), &req); err != nil {
		h.Logger.Warn("failed to update role description", zap.String("roleName", req.RoleName), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "role description updated successfully"})
}

// DeleteRole handles DELETE /roles/{name}
// @Summary Delete role
// @Description Delete an empty, non-reserved role by name
// @Tags roles
// @Produce json
// @Param name path string true "Role name"
// @Success 200 {object} map[string]string "Role deleted"
// @Failure 403 {object} map[string]string "Role is reserved"
// @Failure 404 {object} map[string]string "Role not found"
// @Failure 409 {object} map[string]string "Role still has users"
// @Router /roles/{name} [delete]
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.roleService.DeleteRole(r.Context(), name); err != nil {
		h.Logger.Warn("failed to delete role", zap.String("roleName", name), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "role deleted successfully"})
}
