package kernel

import "strings"

// Role is the tag attached to every user. Nothing in this module grants or
// denies permissions based on it.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEmployee   Role = "EMPLOYEE"
	RoleDriver     Role = "DRIVER"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee, RoleDriver:
		return true
	}
	return false
}

// IsInvitable reports whether an invitation may carry this role.
// SUPERADMIN is provisioned out of band only.
func (r Role) IsInvitable() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleDriver:
		return true
	}
	return false
}

// ParseRole normalizes s and returns the matching role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}
