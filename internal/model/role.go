package model

// Role is one of a closed set of privilege levels, total-ordered as
// superuser > admin > user.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// DefaultRole is assigned when no role is specified at creation time.
const DefaultRole = RoleUser

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}

// ParseRole normalizes a raw string into a Role, falling back to the
// default when the value is empty. An unknown non-empty value is returned
// as-is and will fail Valid().
func ParseRole(raw string) Role {
	if raw == "" {
		return DefaultRole
	}
	return Role(raw)
}

// RoleInfo describes a role for the admin UI.
type RoleInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	Color       string   `json:"color"`
}

// RoleCatalog returns display metadata for every valid role.
func RoleCatalog() map[Role]RoleInfo {
	return map[Role]RoleInfo{
		RoleSuperuser: {
			Name:        "Super User",
			Description: "Full system access - can manage all users including admins",
			Permissions: []string{"Create/edit/delete any user", "Full admin panel access", "System configuration"},
			Color:       "red",
		},
		RoleAdmin: {
			Name:        "Administrator",
			Description: "Can manage regular users and create other admins",
			Permissions: []string{"Create users and admins", "Manage regular users only", "Full admin panel access"},
			Color:       "blue",
		},
		RoleUser: {
			Name:        "Community User",
			Description: "Community access - no admin privileges",
			Permissions: []string{"Community features", "Public content access"},
			Color:       "green",
		},
	}
}
