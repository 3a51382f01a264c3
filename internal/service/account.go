package service

import (
	"context"
	"errors"
	"strings"

	"retailWarehouse/internal/apperr"
	"retailWarehouse/internal/auth"
	"retailWarehouse/internal/db"
	"retailWarehouse/internal/logging"
	"retailWarehouse/models"
)

// NewUser is the input of CreateUser.
type NewUser struct {
	Name      string
	Password  string
	Latitude  float64
	Longitude float64
}

// CreateUser registers a customer. Coordinates are stored as given.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	const op = "create user"
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation(op, "Name must not be empty")
	}
	if in.Password == "" {
		return nil, apperr.Validation(op, "Password must not be empty")
	}
	u, err := s.users.Create(ctx, &models.User{
		Name:      in.Name,
		Password:  in.Password,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Role:      models.RoleCustomer,
	})
	if err != nil {
		if db.IsConstraintViolation(err) {
			return nil, &apperr.Error{Kind: apperr.KindValidation, Op: op, Msg: "User could not be created", Err: err}
		}
		return nil, apperr.Persistence(op, err)
	}
	logging.FromContext(ctx).Info("user created", "user_id", u.ID)
	return u, nil
}

// LogIn returns a session only when a user's name and password both match
// exactly. Any other outcome yields a nil session and an error.
func (s *Service) LogIn(ctx context.Context, name, password string) (*auth.Session, error) {
	const op = "log in"
	u, err := s.users.MatchCredentials(ctx, name, password)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	sess, err := s.tokens.Issue(u)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindAuthorization, Op: op, Msg: "Unable to start a session", Err: err}
	}
	return sess, nil
}

// CheckSession verifies that sess is still valid.
func (s *Service) CheckSession(sess *auth.Session) error {
	if err := auth.RequireSession("verify session", sess); err != nil {
		return err
	}
	if err := s.tokens.Verify(sess); err != nil {
		if errors.Is(err, auth.ErrSessionExpired) {
			return ErrSessionExpired
		}
		return &apperr.Error{Kind: apperr.KindAuthorization, Op: "verify session", Msg: "Invalid session", Err: err}
	}
	return nil
}
