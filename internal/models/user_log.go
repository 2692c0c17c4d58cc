package models

import "time"

// Audit log action tags
const (
	LogActionRoleChange = "role_change"
	LogActionUserCreate = "user_create"
	LogActionUserDelete = "user_delete"
)

// UserLog is one append-only audit row. Logs are never updated or deleted by
// the system.
type UserLog struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`    // affected user
	ChangedBy int       `json:"changed_by"` // acting user (may equal UserID)
	Action    string    `json:"action"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLogFilter narrows audit log listings. Zero values mean "no filter".
type UserLogFilter struct {
	UserID int
	Action string
	Offset int
	Limit  int
}
