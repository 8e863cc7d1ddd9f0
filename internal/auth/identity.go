package auth

import "slices"

// Identity is the principal attached to a single request.
type Identity struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// NewIdentity builds an identity whose permissions are exactly the table
// entry for role.
func NewIdentity(id string, role Role) *Identity {
	return &Identity{
		ID:          id,
		Role:        role,
		Permissions: PermissionsFor(role),
	}
}

// HasPermission reports whether the identity carries permission and its role
// grants it.
func (i *Identity) HasPermission(permission Permission) bool {
	if i == nil {
		return false
	}
	return slices.Contains(i.Permissions, permission) && RoleHasPermission(i.Role, permission)
}

// HasAnyRole reports whether the identity's role is one of roles.
func (i *Identity) HasAnyRole(roles ...Role) bool {
	if i == nil {
		return false
	}
	return slices.Contains(roles, i.Role)
}
