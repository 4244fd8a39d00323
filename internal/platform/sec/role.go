// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole is the authorization level carried in an access token.
type UserRole string

const (
	// Catalog edits and calculation triggers
	RoleAdmin UserRole = "admin"

	// Community moderation; no achievement administration
	RoleModerator UserRole = "moderator"

	// Default role for registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
