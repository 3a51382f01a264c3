package repository

import (
	"context"
	"database/sql"
	"errors"

	"retailWarehouse/internal/db"
	"retailWarehouse/models"
)

type StoreRepository struct {
	db *db.Conn
}

func NewStoreRepository(c *db.Conn) *StoreRepository {
	return &StoreRepository{db: c}
}

const storeColumns = `storeID, name, latitude, longitude, managerID, dateEstablished`

func (r *StoreRepository) GetByID(ctx context.Context, id int64) (*models.Store, error) {
	var (
		s  models.Store
		de any
	)
	err := r.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM Store WHERE storeID = ?`, id).
		Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.ManagerID, &de)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.DateEstablished = db.FormatDate(de)
	return &s, nil
}

// List returns every store ordered by id.
func (r *StoreRepository) List(ctx context.Context) ([]models.Store, error) {
	return r.list(ctx, `SELECT `+storeColumns+` FROM Store ORDER BY storeID`)
}

// ListByManager returns the stores managed by managerID ordered by id.
func (r *StoreRepository) ListByManager(ctx context.Context, managerID int64) ([]models.Store, error) {
	return r.list(ctx, `SELECT `+storeColumns+` FROM Store WHERE managerID = ? ORDER BY storeID`, managerID)
}

func (r *StoreRepository) list(ctx context.Context, query string, args ...any) ([]models.Store, error) {
	var out []models.Store
	err := r.db.QueryEach(ctx, query, args, func(rows *sql.Rows) error {
		var (
			s  models.Store
			de any
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.ManagerID, &de); err != nil {
			return err
		}
		s.DateEstablished = db.FormatDate(de)
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
