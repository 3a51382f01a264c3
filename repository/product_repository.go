package repository

import (
	"context"
	"database/sql"
	"errors"

	"retailWarehouse/internal/db"
	"retailWarehouse/models"
)

type ProductRepository struct {
	db *db.Conn
}

func NewProductRepository(c *db.Conn) *ProductRepository {
	return &ProductRepository{db: c}
}

// ListByStore returns a store's products ordered by name. A missing store
// yields an empty list.
func (r *ProductRepository) ListByStore(ctx context.Context, storeID int64) ([]models.Product, error) {
	var out []models.Product
	err := r.db.QueryEach(ctx,
		`SELECT storeID, productName, numberOfUnits, pricePerUnit FROM Product WHERE storeID = ? ORDER BY productName`,
		[]any{storeID}, func(rows *sql.Rows) error {
			var p models.Product
			if err := rows.Scan(&p.StoreID, &p.Name, &p.Units, &p.PricePerUnit); err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepository) Get(ctx context.Context, storeID int64, name string) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRow(ctx,
		`SELECT storeID, productName, numberOfUnits, pricePerUnit FROM Product WHERE storeID = ? AND productName = ?`,
		storeID, name).Scan(&p.StoreID, &p.Name, &p.Units, &p.PricePerUnit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites the stock count and price of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	n, err := r.db.ExecuteUpdate(ctx,
		`UPDATE Product SET numberOfUnits = ?, pricePerUnit = ? WHERE storeID = ? AND productName = ?`,
		p.Units, p.PricePerUnit, p.StoreID, p.Name)
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AdjustUnits adds delta to the product's stock. A negative delta is applied
// only when enough units remain; the boolean reports whether a row changed.
func (r *ProductRepository) AdjustUnits(ctx context.Context, storeID int64, name string, delta int) (bool, error) {
	n, err := r.db.ExecuteUpdate(ctx,
		`UPDATE Product SET numberOfUnits = numberOfUnits + ? WHERE storeID = ? AND productName = ? AND numberOfUnits + ? >= 0`,
		delta, storeID, name, delta)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
