// internal/domain/models/role.go
package models

import "strings"

// Role is the coarse permission class stored on a Profile. It partitions
// users into exactly two dashboard destinations: staff roles (admin, team)
// land on the admin dashboard, everything else on the client dashboard.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTeam   Role = "team"
	RoleClient Role = "client"

	// RoleUnknown means the role could not be resolved. It is never treated
	// as a staff role; callers fail open to the client dashboard.
	RoleUnknown Role = ""
)

// ParseRole normalizes a stored role string. Unrecognized values map to
// RoleUnknown rather than erroring, so a corrupted row can never grant
// staff access.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleTeam:
		return RoleTeam
	case RoleClient:
		return RoleClient
	default:
		return RoleUnknown
	}
}

// IsStaff reports whether the role grants access to the admin dashboard.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTeam
}

func (r Role) String() string { return string(r) }
