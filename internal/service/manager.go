package service

import (
	"context"
	"strings"

	"retailWarehouse/internal/apperr"
	"retailWarehouse/internal/auth"
	"retailWarehouse/internal/db"
	"retailWarehouse/internal/logging"
	"retailWarehouse/models"
)

// ProductChange is the input of UpdateProduct. Units and Price are written as
// given, without bounds.
type ProductChange struct {
	StoreID     int64
	ProductName string
	Units       int
	Price       float64
}

// SupplyRequestInput is the input of PlaceSupplyRequest.
type SupplyRequestInput struct {
	StoreID     int64
	WarehouseID int64
	ProductName string
	Units       int
}

// StoreReport is one store's section of a popularity report.
type StoreReport struct {
	StoreID int64
	Result  *db.Result
}

// managedStore loads a store and checks that the caller may manage it.
func (s *Service) managedStore(ctx context.Context, op string, sess *auth.Session, storeID int64) (*models.Store, error) {
	if err := auth.RequireManager(op, sess); err != nil {
		return nil, err
	}
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	if st == nil {
		return nil, ErrStoreNotFound
	}
	if err := auth.RequireStoreAccess(op, sess, st.ManagerID); err != nil {
		return nil, err
	}
	return st, nil
}

// CheckStoreAccess verifies that storeID exists and the caller may manage it.
func (s *Service) CheckStoreAccess(ctx context.Context, sess *auth.Session, storeID int64) error {
	_, err := s.managedStore(ctx, "check store access", sess, storeID)
	return err
}

// CheckProductAccess verifies the caller may update productName in storeID
// and that the product exists.
func (s *Service) CheckProductAccess(ctx context.Context, sess *auth.Session, storeID int64, productName string) (*models.Product, error) {
	const op = "update product"
	if _, err := s.managedStore(ctx, op, sess, storeID); err != nil {
		return nil, err
	}
	p, err := s.products.Get(ctx, storeID, productName)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// UpdateProduct overwrites a product's stock and price and records the change
// in the product update log.
func (s *Service) UpdateProduct(ctx context.Context, sess *auth.Session, ch ProductChange) error {
	const op = "update product"
	if _, err := s.CheckProductAccess(ctx, sess, ch.StoreID, ch.ProductName); err != nil {
		return err
	}
	err := s.products.Update(ctx, &models.Product{
		StoreID:      ch.StoreID,
		Name:         ch.ProductName,
		Units:        ch.Units,
		PricePerUnit: ch.Price,
	})
	if err != nil {
		return apperr.Persistence(op, err)
	}
	_, err = s.updates.Create(ctx, &models.ProductUpdate{
		ManagerID:   sess.UserID,
		StoreID:     ch.StoreID,
		ProductName: ch.ProductName,
		UpdatedOn:   s.now(),
	})
	if err != nil {
		return apperr.Persistence(op, err)
	}
	logging.FromContext(ctx).Info("product updated", "store_id", ch.StoreID, "product", ch.ProductName)
	return nil
}

// ViewRecentUpdates returns the latest product updates of a managed store.
func (s *Service) ViewRecentUpdates(ctx context.Context, sess *auth.Session, storeID int64) (*db.Result, error) {
	const op = "view recent updates"
	if _, err := s.managedStore(ctx, op, sess, storeID); err != nil {
		return nil, err
	}
	res, err := s.conn.ExecuteQueryRows(ctx, `SELECT updateNumber, managerID, storeID, productName, updatedOn
FROM ProductUpdates
WHERE storeID = ?
ORDER BY updateNumber DESC
LIMIT ?`, storeID, s.cfg.ReportLimit)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return res, nil
}

// StoresManagedBy returns every store for an admin and the caller's own
// stores for a manager.
func (s *Service) StoresManagedBy(ctx context.Context, sess *auth.Session) ([]models.Store, error) {
	const op = "list managed stores"
	if err := auth.RequireManager(op, sess); err != nil {
		return nil, err
	}
	var (
		stores []models.Store
		err    error
	)
	if sess.IsAdmin() {
		stores, err = s.stores.List(ctx)
	} else {
		stores, err = s.stores.ListByManager(ctx, sess.UserID)
	}
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return stores, nil
}

// ViewPopularProducts reports, per managed store, the products with the most
// units ordered.
func (s *Service) ViewPopularProducts(ctx context.Context, sess *auth.Session) ([]StoreReport, error) {
	return s.perStoreReport(ctx, "view popular products", sess, `SELECT productName AS product_name, SUM(unitsOrdered) AS total_units
FROM Orders
WHERE storeID = ?
GROUP BY productName
ORDER BY total_units DESC, product_name
LIMIT ?`)
}

// ViewPopularCustomers reports, per managed store, the customers who ordered
// the most units.
func (s *Service) ViewPopularCustomers(ctx context.Context, sess *auth.Session) ([]StoreReport, error) {
	return s.perStoreReport(ctx, "view popular customers", sess, `SELECT u.userID AS customer_id, u.name AS name, SUM(o.unitsOrdered) AS total_units
FROM Orders o
JOIN Users u ON u.userID = o.customerID
WHERE o.storeID = ?
GROUP BY u.userID, u.name
ORDER BY total_units DESC, customer_id
LIMIT ?`)
}

func (s *Service) perStoreReport(ctx context.Context, op string, sess *auth.Session, query string) ([]StoreReport, error) {
	stores, err := s.StoresManagedBy(ctx, sess)
	if err != nil {
		return nil, err
	}
	out := make([]StoreReport, 0, len(stores))
	for _, st := range stores {
		res, err := s.conn.ExecuteQueryRows(ctx, query, st.ID, s.cfg.ReportLimit)
		if err != nil {
			return nil, apperr.Persistence(op, err)
		}
		out = append(out, StoreReport{StoreID: st.ID, Result: res})
	}
	return out, nil
}

// PlaceSupplyRequest records a request for a warehouse to replenish a store.
// Stock is only incremented when the supply policy is enabled.
func (s *Service) PlaceSupplyRequest(ctx context.Context, sess *auth.Session, in SupplyRequestInput) (*models.SupplyRequest, error) {
	const op = "place supply request"
	if _, err := s.managedStore(ctx, op, sess, in.StoreID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, apperr.Validation(op, "Product name must not be empty")
	}
	if in.Units < 1 {
		return nil, apperr.Validation(op, "Number of units must be at least 1")
	}
	req, err := s.supply.Create(ctx, &models.SupplyRequest{
		ManagerID:      sess.UserID,
		WarehouseID:    in.WarehouseID,
		StoreID:        in.StoreID,
		ProductName:    in.ProductName,
		UnitsRequested: in.Units,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, &apperr.Error{Kind: apperr.KindValidation, Op: op, Msg: "Warehouse does not exist!", Err: err}
		}
		return nil, apperr.Persistence(op, err)
	}
	log := logging.FromContext(ctx)
	if s.cfg.IncrementStockOnSupply {
		ok, err := s.products.AdjustUnits(ctx, in.StoreID, in.ProductName, in.Units)
		if err != nil {
			return nil, apperr.Persistence(op, err)
		}
		if !ok {
			log.Warn("supply request for product not stocked by store", "store_id", in.StoreID, "product", in.ProductName)
		}
	}
	log.Info("supply request placed", "request", req.Number, "store_id", in.StoreID)
	return req, nil
}
