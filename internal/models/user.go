package models

import "time"

// User represents a panel user
type User struct {
	ID            int        `json:"id"`
	UserPhone     string     `json:"user_phone"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	UserNick      string     `json:"user_nick"`
	PasswordHash  string     `json:"-"` // Never serialize password hash
	UserEmail     string     `json:"user_email"`
	TwoFAAuth     int        `json:"two_fa_auth"`
	EmailVerified int        `json:"email_verified"`
	PhoneVerified int        `json:"phone_verified"`
	UserStatus    *int       `json:"user_status"`
	SpecialNotes  *string    `json:"special_notes"`
	RoleID        int        `json:"role_id"`
	TgChatID      *string    `json:"tg_chat_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UserWithRole is a user joined with its role name and tier
type UserWithRole struct {
	User
	RoleName string `json:"role"`
	Tier     Tier   `json:"tier"`
}

// UserListItem is a compact user row for admin listings
type UserListItem struct {
	ID        int    `json:"id"`
	UserNick  string `json:"user_nick"`
	UserEmail string `json:"user_email"`
	UserPhone string `json:"user_phone"`
	RoleID    int    `json:"role_id"`
	RoleName  string `json:"role"`
}

// RegisterRequest is the payload for POST /users/register
type RegisterRequest struct {
	UserPhone string `json:"user_phone"`
	UserEmail string `json:"user_email"`
	Password  string `json:"user_pass"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserNick  string `json:"user_nick"`
}

// LoginRequest is the payload for POST /users/login
type LoginRequest struct {
	UserEmail string `json:"user_email"`
	Password  string `json:"user_pass"`
}

// CreateUserRequest is the payload for POST /users/add (admin surface).
// Unlike RegisterRequest it may pick a role up front.
type CreateUserRequest struct {
	UserPhone    string  `json:"user_phone"`
	UserEmail    string  `json:"user_email"`
	Password     string  `json:"user_pass"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	UserNick     string  `json:"user_nick"`
	RoleID       int     `json:"role_id"`
	SpecialNotes *string `json:"special_notes"`
}

// UpdateRoleRequest is the payload for PUT /users/update-role
type UpdateRoleRequest struct {
	UserID int `json:"user_id"`
	RoleID int `json:"role_id"`
}

// UpdateRoleByEmailRequest is the payload for PUT /users/update-role-by-email
type UpdateRoleByEmailRequest struct {
	UserEmail string `json:"user_email"`
	RoleID    int    `json:"role_id"`
}
