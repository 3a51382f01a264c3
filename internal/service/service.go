// Package service implements the storefront actions independently of the
// console. Every action returns typed values and apperr errors; printing is
// left to the caller.
package service

import (
	"time"

	"retailWarehouse/internal/apperr"
	"retailWarehouse/internal/auth"
	"retailWarehouse/internal/config"
	"retailWarehouse/internal/db"
	"retailWarehouse/repository"
)

var (
	ErrStoreNotFound      = apperr.Validation("lookup store", "Store does not exist!")
	ErrStoreTooFar        = apperr.Validation("place order", "Store is too far to order from!")
	ErrProductNotFound    = apperr.Validation("lookup product", "Product does not exist")
	ErrQuantityOutOfRange = apperr.Validation("place order", "Error! Enter a reasonable number of items")
	ErrOutOfStock         = apperr.Validation("place order", "Product is out of stock!")
	ErrInvalidCredentials = apperr.Authorization("log in", "Invalid name or password")
	ErrSessionExpired     = apperr.Authorization("verify session", "Your session has expired, please log in again")
)

// Service holds the repositories and policies used by the actions.
type Service struct {
	conn     *db.Conn
	users    repository.UserRepositoryI
	stores   repository.StoreRepositoryI
	products repository.ProductRepositoryI
	orders   repository.OrderRepositoryI
	updates  repository.ProductUpdateRepositoryI
	supply   repository.SupplyRequestRepositoryI
	tokens   *auth.TokenManager
	cfg      config.StoreConfig
	now      func() time.Time
}

// New wires a Service over an open connection.
func New(conn *db.Conn, tokens *auth.TokenManager, cfg config.StoreConfig) *Service {
	return &Service{
		conn:     conn,
		users:    repository.NewUserRepository(conn),
		stores:   repository.NewStoreRepository(conn),
		products: repository.NewProductRepository(conn),
		orders:   repository.NewOrderRepository(conn),
		updates:  repository.NewProductUpdateRepository(conn),
		supply:   repository.NewSupplyRequestRepository(conn),
		tokens:   tokens,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Config returns the store policy in effect.
func (s *Service) Config() config.StoreConfig { return s.cfg }
