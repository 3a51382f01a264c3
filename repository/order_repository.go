package repository

import (
	"context"

	"retailWarehouse/internal/db"
	"retailWarehouse/models"
)

type OrderRepository struct {
	db *db.Conn
}

func NewOrderRepository(c *db.Conn) *OrderRepository {
	return &OrderRepository{db: c}
}

// Create inserts an order. The order number comes from the table's identity
// column, never from counting rows.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	t := o.OrderTime.UTC()
	var number int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO Orders (customerID, storeID, productName, unitsOrdered, orderTime) VALUES (?, ?, ?, ?, ?) RETURNING orderNumber`,
		o.CustomerID, o.StoreID, o.ProductName, o.UnitsOrdered, t).Scan(&number)
	if err != nil {
		return nil, err
	}
	out := *o
	out.Number = number
	out.OrderTime = t
	return &out, nil
}
