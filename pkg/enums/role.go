package enums

import "fmt"

// Role determines which profile extension applies to an account and which
// endpoints it may call.
type Role string

const (
	RoleWorker Role = "worker"
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

var validRoles = []Role{
	RoleWorker,
	RoleClient,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
