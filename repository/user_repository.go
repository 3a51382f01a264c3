package repository

import (
	"context"
	"database/sql"
	"errors"

	"retailWarehouse/internal/db"
	"retailWarehouse/models"
)

type UserRepository struct {
	db *db.Conn
}

func NewUserRepository(c *db.Conn) *UserRepository {
	return &UserRepository{db: c}
}

const userColumns = `userID, name, password, latitude, longitude, type`

// Create inserts a new user and returns it with its generated ID.
// An empty role is stored as customer.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	role := u.Role
	if role == "" {
		role = models.RoleCustomer
	}
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO Users (name, password, latitude, longitude, type) VALUES (?, ?, ?, ?, ?) RETURNING userID`,
		u.Name, u.Password, u.Latitude, u.Longitude, string(role)).Scan(&id)
	if err != nil {
		return nil, err
	}
	out := *u
	out.ID = id
	out.Role = role
	return &out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM Users WHERE userID = ?`, id)
}

// MatchCredentials returns the user whose name and password both match
// exactly, or nil when none does.
func (r *UserRepository) MatchCredentials(ctx context.Context, name, password string) (*models.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM Users WHERE name = ? AND password = ? ORDER BY userID LIMIT 1`,
		name, password)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var (
		u    models.User
		role string
	)
	err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Password, &u.Latitude, &u.Longitude, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = models.ParseRole(role)
	return &u, nil
}
