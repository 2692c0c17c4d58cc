package models

// Tier is the capability level of a role. Authorization gates compare tiers,
// never role IDs.
type Tier int

const (
	TierGuest      Tier = 1
	TierUser       Tier = 2
	TierModerator  Tier = 3
	TierAdmin      Tier = 4
	TierSuperAdmin Tier = 5
)

// Reserved role IDs seeded by migration. Kept for the default registration role
// and for seed data; runtime checks go through Tier.
const (
	RoleIDSuperAdmin = 1
	RoleIDAdmin      = 2
	RoleIDModerator  = 3
	RoleIDUser       = 4
	RoleIDGuest      = 5

	// DefaultRoleID is assigned to self-registered users.
	DefaultRoleID = RoleIDUser
)

// Role represents a user group. CountUsers is denormalized and must always
// equal the number of users referencing the role; it is maintained inside the
// same transaction as every user insert, delete and role change.
type Role struct {
	ID          int    `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"role_description"`
	Tier        Tier   `json:"tier"`
	CountUsers  int    `json:"count_users"`
}

// IsReserved reports whether the role is one of the five seeded roles that can
// never be deleted.
func (r *Role) IsReserved() bool {
	return r.ID >= RoleIDSuperAdmin && r.ID <= RoleIDGuest
}

// CreateRoleRequest is the payload for POST /roles/add
type CreateRoleRequest struct {
	RoleName    string `json:"role_name"`
	Description string `json:"role_description"`
	Tier        Tier   `json:"tier"`
}

// UpdateRoleDescriptionRequest is the payload for PUT /roles/update_description
type UpdateRoleDescriptionRequest struct {
	RoleName    string `json:"role_name"`
	Description string `json:"role_description"`
}

// RoleStats aggregates per-role counters for GET /roles/stats
type RoleStats struct {
	TotalRoles int             `json:"total_roles"`
	TotalUsers int             `json:"total_users"`
	Roles      []RoleStatsItem `json:"roles"`
}

// RoleStatsItem is one row of RoleStats
type RoleStatsItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UserCount int    `json:"user_count"`
	Tier      Tier   `json:"tier"`
}
