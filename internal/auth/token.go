package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"retailWarehouse/models"
)

// ErrSessionExpired is returned by Verify once the session lifetime has passed.
var ErrSessionExpired = errors.New("session expired")

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a manager with the provided secret and lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a session for u with a signed token.
func (m *TokenManager) Issue(u *models.User) (*Session, error) {
	if u == nil || u.ID == 0 {
		return nil, errors.New("issue session: user is required")
	}
	if len(m.secret) == 0 {
		return nil, errors.New("issue session: secret is empty")
	}
	now := m.now()
	id := uuid.NewString()
	claims := sessionClaims{
		Name: u.Name,
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       id,
		UserID:   u.ID,
		Name:     u.Name,
		Role:     u.Role,
		Token:    signed,
		IssuedAt: now,
	}, nil
}

// Verify checks the session token's signature and expiry, and that the
// session fields still match what was signed.
func (m *TokenManager) Verify(s *Session) error {
	if s == nil || s.Token == "" {
		return errors.New("missing session token")
	}
	var c sessionClaims
	tok, err := jwt.ParseWithClaims(s.Token, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrSessionExpired
		}
		return err
	}
	if !tok.Valid {
		return errors.New("invalid session token")
	}
	uid, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return errors.New("invalid session subject")
	}
	if uid != s.UserID || c.Name != s.Name || roleFromClaim(c.Role) != s.Role || c.ID != s.ID {
		return errors.New("session does not match token")
	}
	return nil
}
