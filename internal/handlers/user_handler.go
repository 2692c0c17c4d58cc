package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dokuhost/admin-service/internal/auth/middleware"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user administration business logic.
type UserService interface {
	// Method GetUsersList retrieves a page of users with role names.
	//
	// "page" and "count" parameters control pagination.
	// "roleID" parameter filters by role when non-zero.
	// "search" parameter filters by name, nick or email when non-empty.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetUsersList(ctx context.Context, page, count int, roleID int, search string) ([]models.UserListItem, error)
	// Method GetUser retrieves one user with its role.
	//
	// "userID" parameter selects the user.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetUser(ctx context.Context, userID int) (*models.UserWithRole, error)
	// Method CreateUser creates a user on behalf of an administrator.
	//
	// "actorID" parameter is the acting administrator.
	// "req" parameter carries the new user's data.
	//
	// If validation fails or such user already exists, the error will be returned together with "nil" value.
	CreateUser(ctx context.Context, actorID int, req *models.CreateUserRequest) (*models.UserWithRole, error)
	// Method UpdateRole moves a user to a new role. Returns true when the
	// role actually changed, false for the same-role no-op.
	//
	// "actorID" parameter is the acting administrator.
	// "req" parameter carries the target user and the new role.
	//
	// If the change is refused or some error occurs, the error will be returned together with "false" value.
	UpdateRole(ctx context.Context, actorID int, req *models.UpdateRoleRequest) (bool, error)
	// Method UpdateRoleByEmail resolves the target by email, then applies UpdateRole.
	//
	// "actorID" parameter is the acting administrator.
	// "req" parameter carries the target email and the new role.
	//
	// If the change is refused or some error occurs, the error will be returned together with "false" value.
	UpdateRoleByEmail(ctx context.Context, actorID int, req *models.UpdateRoleByEmailRequest) (bool, error)
	// Method DeleteUser removes a user account.
	//
	// "actorID" parameter is the acting administrator.
	// "userID" parameter selects the user.
	//
	// If user with such ID does not exist, the error will be returned.
	DeleteUser(ctx context.Context, actorID, userID int) error
	// Method GetLogs retrieves audit records, newest-first.
	//
	// "filter" parameter narrows by user, action and pagination window.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetLogs(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, error)
	// Method GetUserLogs retrieves all audit records of one user, newest-first.
	//
	// "userID" parameter selects the user.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetUserLogs(ctx context.Context, userID int) ([]models.UserLog, error)
	// Method GetRecentRoleChanges retrieves role change records from the trailing 24 hours.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetRecentRoleChanges(ctx context.Context) ([]models.UserLog, error)
}

// UserHandler handles user administration HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers the user administration routes. The router must
// already carry the auth middleware; tier gates are applied per route here.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.GetMe)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierModerator))
		r.Get("/{id}", h.GetUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierAdmin))
		r.Get("/", h.GetUsersList)
		r.Post("/add", h.CreateUser)
		r.Get("/logs", h.GetLogs)
		r.Get("/logs/role-changes", h.GetRecentRoleChanges)
		r.Get("/{id}/logs", h.GetUserLogs)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierSuperAdmin))
		r.Put("/update-role", h.UpdateRole)
		r.Put("/update-role-by-email", h.UpdateRoleByEmail)
		r.Delete("/dell/{id}", h.DeleteUser)
	})
}

// GetUsersList handles GET /users/
// @Summary Get list of users
// @Description Get paginated list of users with optional role and search filters
// @Tags users
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 20)"
// @Param role query int false "Filter by role ID"
// @Param search query string false "Search in name, nick or email"
// @Success 200 {array} models.UserListItem "List of users"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /users/ [get]
func (h *UserHandler) GetUsersList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	roleID, _ := strconv.Atoi(r.URL.Query().Get("role"))
	search := r.URL.Query().Get("search")

	users, err := h.userService.GetUsersList(r.Context(), page, count, roleID, search)
	if err != nil {
		h.Logger.Error("failed to get users list", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// GetMe handles GET /users/me
// @Summary Get own profile
// @Description Get the authenticated caller's full profile with role
// @Tags users
// @Produce json
// @Success 200 {object} models.UserWithRole "Caller profile"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get own profile", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// GetUser handles GET /users/{id}
// @Summary Get user by ID
// @Description Get a user's full data including role name
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserWithRole "User data"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		h.Logger.Warn("failed to get user", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// CreateUser handles POST /users/add
// @Summary Create user
// @Description Create a user with a chosen role on behalf of an administrator
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "New user data"
// @Success 201 {object} models.UserWithRole "Created user"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Email or phone already registered"
// @Router /users/add [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), actorID, &req)
	if err != nil {
		h.Logger.Warn("failed to create user", zap.Int("actorId", actorID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}

// UpdateRole handles PUT /users/update-role
// @Summary Update user role
// @Description Move a user to a new role; counters and audit log are updated atomically
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateRoleRequest true "Target user and new role"
// @Success 200 {object} map[string]string "Role updated or already set"
// @Failure 403 {object} map[string]string "Change refused"
// @Failure 404 {object} map[string]string "User or role not found"
// @Router /users/update-role [put]
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())

	var req models.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changed, err := h.userService.UpdateRole(r.Context(), actorID, &req)
	if err != nil {
		h.Logger.Warn("failed to update role",
			zap.Int("actorId", actorID),
			zap.Int("userId", req.UserID),
			zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, roleChangeMessage(changed))
}

// UpdateRoleByEmail handles PUT /users/update-role-by-email
// @Summary Update user role by email
// @Description Move a user identified by email to a new role
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateRoleByEmailRequest true "Target email and new role"
// @Success 200 {object} map[string]string "Role updated or already set"
// @Failure 403 {object} map[string]string "Change refused"
// @Failure 404 {object} map[string]string "User or role not found"
// @Router /users/update-role-by-email [put]
func (h *UserHandler) UpdateRoleByEmail(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())

	var req models.UpdateRoleByEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changed, err := h.userService.UpdateRoleByEmail(r.Context(), actorID, &req)
	if err != nil {
		h.Logger.Warn("failed to update role by email", zap.Int("actorId", actorID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, roleChangeMessage(changed))
}

// DeleteUser handles DELETE /users/dell/{id}
// @Summary Delete user
// @Description Hard-delete a user; the role counter and audit log are updated atomically
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "User deleted"
// @Failure 403 {object} map[string]string "Deletion refused"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/dell/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.GetUserID(r.Context())

	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), actorID, userID); err != nil {
		h.Logger.Warn("failed to delete user",
			zap.Int("actorId", actorID),
			zap.Int("userId", userID),
			zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}

// GetLogs handles GET /users/logs
// @Summary Get audit logs
// @Description Get audit records newest-first with optional user and action filters
// @Tags users
// @Produce json
// @Param user_id query int false "Filter by user ID"
// @Param action query string false "Filter by action (role_change, user_create, user_delete)"
// @Param offset query int false "Rows to skip"
// @Param limit query int false "Rows to return (default: 50)"
// @Success 200 {array} models.UserLog "Audit records"
// @Router /users/logs [get]
func (h *UserHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(r.URL.Query().Get("user_id"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.userService.GetLogs(r.Context(), models.UserLogFilter{
		UserID: userID,
		Action: r.URL.Query().Get("action"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		h.Logger.Error("failed to get audit logs", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, logs)
}

// GetUserLogs handles GET /users/{id}/logs
// @Summary Get audit logs of one user
// @Description Get all audit records of one user, newest-first
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.UserLog "Audit records"
// @Router /users/{id}/logs [get]
func (h *UserHandler) GetUserLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	logs, err := h.userService.GetUserLogs(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get user audit logs", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, logs)
}

// GetRecentRoleChanges handles GET /users/logs/role-changes
// @Summary Get recent role changes
// @Description Get role change audit records from the trailing 24 hours, newest-first
// @Tags users
// @Produce json
// @Success 200 {array} models.UserLog "Role change records"
// @Router /users/logs/role-changes [get]
func (h *UserHandler) GetRecentRoleChanges(w http.ResponseWriter, r *http.Request) {
	logs, err := h.userService.GetRecentRoleChanges(r.Context())
	if err != nil {
		h.Logger.Error("failed to get recent role changes", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, logs)
}

// pathID parses the {id} path parameter, responding with 400 on garbage
func (h *BaseHandler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// roleChangeMessage picks the response body for a role change result
func roleChangeMessage(changed bool) map[string]string {
	if changed {
		return map[string]string{"message": "role updated successfully"}
	}
	return map[string]string{"message": "user already has this role"}
}
