package auth

import (
	"strings"
	"time"

	"retailWarehouse/internal/apperr"
	"retailWarehouse/models"
)

// Session is the authenticated caller. It is created at login, passed to every
// handler explicitly, and discarded at logout.
type Session struct {
	ID       string // random id for log correlation
	UserID   int64
	Name     string
	Role     models.Role
	Token    string // signed token carrying the fields above
	IssuedAt time.Time
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool { return s != nil && s.Role == models.RoleAdmin }

// IsPrivileged reports whether the session may use manager actions.
func (s *Session) IsPrivileged() bool { return s != nil && s.Role.IsPrivileged() }

// RequireSession ensures a session is present.
func RequireSession(op string, s *Session) error {
	if s == nil || s.UserID == 0 {
		return apperr.Authorization(op, "You must log in first")
	}
	return nil
}

// RequireManager ensures the caller is a manager or an admin.
func RequireManager(op string, s *Session) error {
	if err := RequireSession(op, s); err != nil {
		return err
	}
	if !s.IsPrivileged() {
		return apperr.Authorization(op, "You are not a manager or an admin")
	}
	return nil
}

// RequireStoreAccess ensures the caller manages the store owned by managerID.
// Admins pass regardless of ownership.
func RequireStoreAccess(op string, s *Session, managerID int64) error {
	if err := RequireManager(op, s); err != nil {
		return err
	}
	if s.IsAdmin() || s.UserID == managerID {
		return nil
	}
	return apperr.Authorization(op, "You are not the Manager")
}

// roleFromClaim lowercases claim roles the same way stored roles are parsed.
func roleFromClaim(v string) models.Role {
	return models.ParseRole(strings.TrimSpace(v))
}
