package repository

import (
	"context"

	"retailWarehouse/internal/db"
	"retailWarehouse/models"
)

type ProductUpdateRepository struct {
	db *db.Conn
}

func NewProductUpdateRepository(c *db.Conn) *ProductUpdateRepository {
	return &ProductUpdateRepository{db: c}
}

// Create appends an entry to the product update log.
func (r *ProductUpdateRepository) Create(ctx context.Context, u *models.ProductUpdate) (*models.ProductUpdate, error) {
	at := u.UpdatedOn.UTC()
	var n int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO ProductUpdates (managerID, storeID, productName, updatedOn) VALUES (?, ?, ?, ?) RETURNING updateNumber`,
		u.ManagerID, u.StoreID, u.ProductName, at).Scan(&n)
	if err != nil {
		return nil, err
	}
	out := *u
	out.Number = n
	out.UpdatedOn = at
	return &out, nil
}

type SupplyRequestRepository struct {
	db *db.Conn
}

func NewSupplyRequestRepository(c *db.Conn) *SupplyRequestRepository {
	return &SupplyRequestRepository{db: c}
}

// Create inserts a supply request; the request number is generated by the database.
func (r *SupplyRequestRepository) Create(ctx context.Context, req *models.SupplyRequest) (*models.SupplyRequest, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO ProductSupplyRequests (managerID, warehouseID, storeID, productName, unitsRequested) VALUES (?, ?, ?, ?, ?) RETURNING requestNumber`,
		req.ManagerID, req.WarehouseID, req.StoreID, req.ProductName, req.UnitsRequested).Scan(&n)
	if err != nil {
		return nil, err
	}
	out := *req
	out.Number = n
	return &out, nil
}
