// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package sec

// # Staff Roles

// UserRole represents the authorization level granted to a staff account.
type UserRole string

const (
	// Site owner; unrestricted access including destructive settings
	RoleOwner UserRole = "owner"

	// Full administration of content, collections, and staff
	RoleAdmin UserRole = "admin"

	// Can publish and manage all content and collection membership
	RoleEditor UserRole = "editor"

	// Can create and edit their own drafts only
	RoleAuthor UserRole = "author"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleOwner:
		return 40
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleAuthor:
		return 10
	default:
		return 0
	}
}
