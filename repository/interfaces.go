package repository

import (
	"context"

	"retailWarehouse/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	MatchCredentials(ctx context.Context, name, password string) (*models.User, error)
}

// StoreRepositoryI defines operations on Store entities.
type StoreRepositoryI interface {
	GetByID(ctx context.Context, id int64) (*models.Store, error)
	List(ctx context.Context) ([]models.Store, error)
	ListByManager(ctx context.Context, managerID int64) ([]models.Store, error)
}

// ProductRepositoryI defines operations on Product entities.
type ProductRepositoryI interface {
	ListByStore(ctx context.Context, storeID int64) ([]models.Product, error)
	Get(ctx context.Context, storeID int64, name string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	AdjustUnits(ctx context.Context, storeID int64, name string, delta int) (bool, error)
}

// OrderRepositoryI defines operations on Order entities.
type OrderRepositoryI interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
}

// ProductUpdateRepositoryI records changes made to products.
type ProductUpdateRepositoryI interface {
	Create(ctx context.Context, u *models.ProductUpdate) (*models.ProductUpdate, error)
}

// SupplyRequestRepositoryI defines operations on supply requests.
type SupplyRequestRepositoryI interface {
	Create(ctx context.Context, r *models.SupplyRequest) (*models.SupplyRequest, error)
}
