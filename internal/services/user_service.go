package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dokuhost/admin-service/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminUserRepository is the interface that wraps User table data access needed by the admin flow
type AdminUserRepository interface {
	UserSharedRepository
	// Method Create inserts a new user into the database, increments the
	// counter of its role and writes an audit record, all in one transaction.
	//
	// "user" parameter is used to create a new user.
	// "createdBy" parameter is the ID of the actor, 0 for self-registration.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User, createdBy int) error
	// Method GetWithRole retrieves a user by ID together with its role name and tier.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetWithRole(ctx context.Context, userID int) (*models.UserWithRole, error)
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, the error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetAll retrieves a page of users with their role names.
	//
	// "page" and "count" parameters control pagination.
	// "roleID" parameter filters by role when non-zero.
	// "search" parameter filters by name, nick or email when non-empty.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, page, count int, roleID int, search string) ([]models.UserListItem, error)
	// Method ChangeRole moves a user to a new role in one transaction: the user
	// row and both role rows are locked, counters are adjusted and an audit
	// record is written. Returns false without touching anything when the user
	// already holds the requested role.
	//
	// "userID" parameter is the target user.
	// "newRoleID" parameter is the role to assign.
	// "changedBy" parameter is the ID of the acting user.
	//
	// If some error occurs during role change, the error will be returned together with "false" value.
	ChangeRole(ctx context.Context, userID, newRoleID, changedBy int) (bool, error)
	// Method Delete removes a user, decrements the counter of its role and
	// writes an audit record, all in one transaction.
	//
	// "userID" parameter is the target user.
	// "deletedBy" parameter is the ID of the acting user.
	//
	// If user with such ID does not exist, the error will be returned.
	Delete(ctx context.Context, userID, deletedBy int) error
}

// UserLogRepository is the interface that wraps read access to the append-only audit log
type UserLogRepository interface {
	// Method List retrieves audit records newest-first, honoring the filter.
	//
	// "filter" parameter narrows by user, action and pagination window.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	List(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, error)
	// Method ListByUser retrieves all audit records of one user, newest-first.
	//
	// "userID" parameter selects the user.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListByUser(ctx context.Context, userID int) ([]models.UserLog, error)
	// Method ListRoleChangesSince retrieves role_change records created after
	// the given moment, newest-first.
	//
	// "since" parameter is the lower bound of the window.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListRoleChangesSince(ctx context.Context, since time.Time) ([]models.UserLog, error)
}

// UserSessionRepository is the interface that wraps refresh token revocation
type UserSessionRepository interface {
	// Method DeleteByUserID removes all refresh tokens of a user.
	//
	// "userID" parameter selects the user.
	//
	// If some error occurs during deletion, the error will be returned.
	DeleteByUserID(ctx context.Context, userID int) error
}

// roleChangeWindow bounds the GET /users/logs/role-changes report
const roleChangeWindow = 24 * time.Hour

// userService implements user administration
type userService struct {
	userRepo    AdminUserRepository
	userLogRepo UserLogRepository
	sessionRepo UserSessionRepository
	logger      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo AdminUserRepository, userLogRepo UserLogRepository, sessionRepo UserSessionRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo:    userRepo,
		userLogRepo: userLogRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// GetUsersList retrieves a page of users with role names
func (s *userService) GetUsersList(ctx context.Context, page, count int, roleID int, search string) ([]models.UserListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 || count > 100 {
		count = 20
	}
	return s.userRepo.GetAll(ctx, page, count, roleID, strings.TrimSpace(search))
}

// GetUser retrieves one user with its role
func (s *userService) GetUser(ctx context.Context, userID int) (*models.UserWithRole, error) {
	return s.userRepo.GetWithRole(ctx, userID)
}

// CreateUser creates a user on behalf of an administrator.
//
// The SuperAdmin role can never be assigned this way, same as with role changes.
func (s *userService) CreateUser(ctx context.Context, actorID int, req *models.CreateUserRequest) (*models.UserWithRole, error) {
	normalizedEmail, normalizedPhone, err := checkRegisterCredentials(ctx, s.userRepo, req.UserEmail, req.UserPhone, req.Password)
	if err != nil {
		return nil, err
	}

	if err = validateName("first_name", req.FirstName); err != nil {
		return nil, err
	}
	if err = validateName("last_name", req.LastName); err != nil {
		return nil, err
	}

	roleID := req.RoleID
	if roleID == 0 {
		roleID = models.DefaultRoleID
	}
	if roleID == models.RoleIDSuperAdmin {
		return nil, fmt.Errorf("%w: SuperAdmin role cannot be assigned", models.ErrForbidden)
	}

	nick := strings.TrimSpace(req.UserNick)
	if nick == "" {
		nick = GenerateNick(req.FirstName, req.LastName)
	} else if err = validateNick(nick); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserPhone:    normalizedPhone,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		UserNick:     nick,
		PasswordHash: string(passwordHash),
		UserEmail:    normalizedEmail,
		SpecialNotes: req.SpecialNotes,
		RoleID:       roleID,
	}

	if err = s.userRepo.Create(ctx, user, actorID); err != nil {
		return nil, err
	}

	return s.userRepo.GetWithRole(ctx, user.ID)
}

// UpdateRole moves a user to a new role.
//
// Changing your own role is refused here; everything that depends on database
// state (missing rows, SuperAdmin protection, same-role no-op) is decided
// inside the repository transaction under row locks. Returns true when the
// role actually changed.
func (s *userService) UpdateRole(ctx context.Context, actorID int, req *models.UpdateRoleRequest) (bool, error) {
	if req.UserID == actorID {
		return false, fmt.Errorf("%w: cannot change your own role", models.ErrForbidden)
	}

	changed, err := s.userRepo.ChangeRole(ctx, req.UserID, req.RoleID, actorID)
	if err != nil {
		return false, err
	}
	if changed {
		s.logger.Info("user role changed",
			zap.Int("userId", req.UserID),
			zap.Int("roleId", req.RoleID),
			zap.Int("changedBy", actorID))
	}
	return changed, nil
}

// UpdateRoleByEmail resolves the target by email, then applies UpdateRole
func (s *userService) UpdateRoleByEmail(ctx context.Context, actorID int, req *models.UpdateRoleByEmailRequest) (bool, error) {
	email := strings.TrimSpace(strings.ToLower(req.UserEmail))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	return s.UpdateRole(ctx, actorID, &models.UpdateRoleRequest{
		UserID: user.ID,
		RoleID: req.RoleID,
	})
}

// DeleteUser removes a user account and revokes its refresh tokens.
// Deleting your own account is refused.
func (s *userService) DeleteUser(ctx context.Context, actorID, userID int) error {
	if userID == actorID {
		return fmt.Errorf("%w: cannot delete your own account", models.ErrForbidden)
	}

	if err := s.userRepo.Delete(ctx, userID, actorID); err != nil {
		return err
	}

	// The user row is gone; a failure here only delays session expiry
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		s.logger.Warn("failed to revoke sessions of deleted user",
			zap.Int("userId", userID), zap.Error(err))
	}

	s.logger.Info("user deleted", zap.Int("userId", userID), zap.Int("deletedBy", actorID))
	return nil
}

// GetLogs retrieves audit records, newest-first
func (s *userService) GetLogs(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, error) {
	return s.userLogRepo.List(ctx, filter)
}

// GetUserLogs retrieves all audit records of one user, newest-first
func (s *userService) GetUserLogs(ctx context.Context, userID int) ([]models.UserLog, error) {
	return s.userLogRepo.ListByUser(ctx, userID)
}

// GetRecentRoleChanges retrieves role_change records from the trailing 24 hours
func (s *userService) GetRecentRoleChanges(ctx context.Context) ([]models.UserLog, error) {
	return s.userLogRepo.ListRoleChangesSince(ctx, time.Now().Add(-roleChangeWindow))
}
