package auth

import (
	"errors"
	"testing"
	"time"

	"retailWarehouse/internal/apperr"
	"retailWarehouse/models"
)

const testSecret = "test-secret"

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)
	s, err := m.Issue(&models.User{ID: 7, Name: "alice", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if s.ID == "" || s.Token == "" || s.UserID != 7 || s.Role != models.RoleCustomer {
		t.Fatalf("unexpected session: %+v", s)
	}
	if err := m.Verify(s); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)
	base := time.Now()
	m.now = func() time.Time { return base }
	s, err := m.Issue(&models.User{ID: 1, Name: "bob", Role: models.RoleManager})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	if err := m.Verify(s); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestVerify_TamperedRole(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)
	s, err := m.Issue(&models.User{ID: 3, Name: "carol", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	s.Role = models.RoleAdmin
	if err := m.Verify(s); err == nil {
		t.Fatalf("expected mismatch error for escalated role")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	s, err := NewTokenManager(testSecret, time.Minute).Issue(&models.User{ID: 3, Name: "carol"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := NewTokenManager("other", time.Minute).Verify(s); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestIssue_RequiresUser(t *testing.T) {
	if _, err := NewTokenManager(testSecret, time.Minute).Issue(nil); err == nil {
		t.Fatalf("expected error for nil user")
	}
	if _, err := NewTokenManager("", time.Minute).Issue(&models.User{ID: 1}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestRoleGates(t *testing.T) {
	customer := &Session{UserID: 1, Role: models.RoleCustomer}
	manager := &Session{UserID: 2, Role: models.RoleManager}
	admin := &Session{UserID: 3, Role: models.RoleAdmin}

	if err := RequireSession("x", nil); !apperr.Is(err, apperr.KindAuthorization) {
		t.Fatalf("nil session should be unauthorized: %v", err)
	}
	if err := RequireManager("x", customer); !apperr.Is(err, apperr.KindAuthorization) {
		t.Fatalf("customer should be rejected: %v", err)
	}
	if err := RequireManager("x", manager); err != nil {
		t.Fatalf("manager rejected: %v", err)
	}

	tests := []struct {
		name      string
		sess      *Session
		managerID int64
		ok        bool
	}{
		{"owner", manager, 2, true},
		{"other manager", manager, 9, false},
		{"admin any store", admin, 9, true},
		{"customer", customer, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireStoreAccess("update product", tt.sess, tt.managerID)
			if (err == nil) != tt.ok {
				t.Fatalf("RequireStoreAccess = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
