// Package authorization holds the desk roles and the visibility rule that
// scopes ticket reads and writes to their owner.
package authorization

import "fmt"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseUserRole accepts exactly "user" or "admin".
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return role, nil
}

// CanAccessOwnedBy reports whether a viewer may see a record owned by ownerID.
// Admins see everything.
func CanAccessOwnedBy(viewerID string, viewerRole UserRole, ownerID string) bool {
	if viewerRole.IsAdmin() {
		return true
	}
	return viewerID != "" && viewerID == ownerID
}
