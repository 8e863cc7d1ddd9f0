package auth

import "slices"

// Role is a coarse-grained identity classification.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Permission is a named capability checked before a protected handler runs.
type Permission string

const (
	PermissionReadUsers   Permission = "read:users"
	PermissionWriteUsers  Permission = "write:users"
	PermissionDeleteUsers Permission = "delete:users"
	PermissionReadSystem  Permission = "read:system"
	PermissionWriteSystem Permission = "write:system"
)

// rolePermissions is built once and never written after package init.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionReadUsers,
		PermissionWriteUsers,
		PermissionDeleteUsers,
		PermissionReadSystem,
		PermissionWriteSystem,
	},
	RoleUser:  {PermissionReadUsers, PermissionReadSystem},
	RoleGuest: {PermissionReadSystem},
}

var allRoles = []Role{RoleAdmin, RoleUser, RoleGuest}

// Roles returns every known role in a stable order.
func Roles() []Role {
	return slices.Clone(allRoles)
}

// IsValid reports whether r is one of the enumerated roles.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// PermissionsFor returns the permissions granted to role.
// The result is a copy; unknown roles get an empty slice.
func PermissionsFor(role Role) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return []Permission{}
	}
	return slices.Clone(perms)
}

// RoleHasPermission reports whether role is granted permission.
func RoleHasPermission(role Role, permission Permission) bool {
	return slices.Contains(rolePermissions[role], permission)
}
