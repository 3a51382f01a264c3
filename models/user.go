package models

import "strings"

// Role is the kind of account stored in Users.type.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a stored role value. The column may be padded or
// capitalized ("Customer"); anything unrecognized is treated as a customer.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	default:
		return RoleCustomer
	}
}

// IsPrivileged reports whether the role may use the manager menu.
func (r Role) IsPrivileged() bool {
	return r == RoleManager || r == RoleAdmin
}

// User represents an account in the Users table.
type User struct {
	ID        int64   `db:"userID" json:"id"`
	Name      string  `db:"name" json:"name"`
	Password  string  `db:"password" json:"-"`
	Latitude  float64 `db:"latitude" json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
	Role      Role    `db:"type" json:"role"`
}
