package domain

import "errors"

// Role is a closed set. Anything else is rejected at the registration
// boundary rather than leaking downstream as a loose string.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// ErrUnknownRole reports a role value outside the closed set.
var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a role string. An empty string defaults to RoleUser,
// matching self-service registration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleUser, nil
	case RoleUser, RoleStaff, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }
