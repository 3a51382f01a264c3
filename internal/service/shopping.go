package service

import (
	"context"
	"sort"
	"strings"

	"retailWarehouse/internal/apperr"
	"retailWarehouse/internal/auth"
	"retailWarehouse/internal/db"
	"retailWarehouse/internal/geo"
	"retailWarehouse/internal/logging"
	"retailWarehouse/models"
)

// OrderRequest is the input of PlaceOrder.
type OrderRequest struct {
	StoreID     int64
	ProductName string
	Units       int
}

func (s *Service) caller(ctx context.Context, op string, sess *auth.Session) (*models.User, error) {
	if err := auth.RequireSession(op, sess); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	if u == nil {
		return nil, apperr.Authorization(op, "User no longer exists")
	}
	return u, nil
}

// ViewStores lists the stores strictly closer than the configured radius to
// the caller's coordinates, nearest first.
func (s *Service) ViewStores(ctx context.Context, sess *auth.Session) ([]models.StoreDistance, error) {
	const op = "view stores"
	u, err := s.caller(ctx, op, sess)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	from := geo.Point{Lat: u.Latitude, Long: u.Longitude}
	var out []models.StoreDistance
	for _, st := range stores {
		d := geo.Between(from, geo.Point{Lat: st.Latitude, Long: st.Longitude})
		if geo.IsWithinRadius(d, s.cfg.Radius) {
			out = append(out, models.StoreDistance{Store: st, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ViewProducts lists a store's products. An unknown store yields an empty list.
func (s *Service) ViewProducts(ctx context.Context, storeID int64) ([]models.Product, error) {
	ps, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Persistence("view products", err)
	}
	return ps, nil
}

// CheckOrderStore verifies that storeID exists and is close enough to the
// caller to order from.
func (s *Service) CheckOrderStore(ctx context.Context, sess *auth.Session, storeID int64) error {
	const op = "place order"
	u, err := s.caller(ctx, op, sess)
	if err != nil {
		return err
	}
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return apperr.Persistence(op, err)
	}
	if st == nil {
		return ErrStoreNotFound
	}
	d := geo.Distance(u.Latitude, u.Longitude, st.Latitude, st.Longitude)
	if geo.ExceedsRadius(d, s.cfg.Radius) {
		return ErrStoreTooFar
	}
	return nil
}

// OrderQuote runs the checks of PlaceOrder that precede the quantity and
// returns the units in stock. A product with no stock left cannot be quoted.
func (s *Service) OrderQuote(ctx context.Context, sess *auth.Session, storeID int64, productName string) (int, error) {
	const op = "place order"
	if err := s.CheckOrderStore(ctx, sess, storeID); err != nil {
		return 0, err
	}
	if strings.TrimSpace(productName) == "" {
		return 0, ErrProductNotFound
	}
	p, err := s.products.Get(ctx, storeID, productName)
	if err != nil {
		return 0, apperr.Persistence(op, err)
	}
	if p == nil {
		return 0, ErrProductNotFound
	}
	if p.Units < 1 {
		return 0, ErrOutOfStock
	}
	return p.Units, nil
}

// PlaceOrder validates and records an order. Stock is only decremented when
// the decrement policy is enabled.
func (s *Service) PlaceOrder(ctx context.Context, sess *auth.Session, req OrderRequest) (*models.Order, error) {
	const op = "place order"
	stock, err := s.OrderQuote(ctx, sess, req.StoreID, req.ProductName)
	if err != nil {
		return nil, err
	}
	if req.Units < 1 || req.Units > stock {
		return nil, ErrQuantityOutOfRange
	}
	if s.cfg.DecrementStockOnOrder {
		ok, err := s.products.AdjustUnits(ctx, req.StoreID, req.ProductName, -req.Units)
		if err != nil {
			return nil, apperr.Persistence(op, err)
		}
		if !ok {
			return nil, ErrQuantityOutOfRange
		}
	}
	o, err := s.orders.Create(ctx, &models.Order{
		CustomerID:   sess.UserID,
		StoreID:      req.StoreID,
		ProductName:  req.ProductName,
		UnitsOrdered: req.Units,
		OrderTime:    s.now(),
	})
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	logging.FromContext(ctx).Info("order placed", "order", o.Number, "store_id", o.StoreID)
	return o, nil
}

// ViewRecentOrders returns every order for an admin, the orders of managed
// stores for a manager, and the caller's latest orders for a customer.
func (s *Service) ViewRecentOrders(ctx context.Context, sess *auth.Session) (*db.Result, error) {
	const op = "view recent orders"
	if err := auth.RequireSession(op, sess); err != nil {
		return nil, err
	}
	const storeOrders = `SELECT o.orderNumber, u.name, s.storeID, o.productName, o.unitsOrdered, o.orderTime
FROM Orders o
JOIN Store s ON s.storeID = o.storeID
JOIN Users u ON u.userID = o.customerID`

	var (
		res *db.Result
		err error
	)
	switch sess.Role {
	case models.RoleAdmin:
		res, err = s.conn.ExecuteQueryRows(ctx, storeOrders+`
ORDER BY o.orderTime DESC, o.orderNumber DESC`)
	case models.RoleManager:
		res, err = s.conn.ExecuteQueryRows(ctx, storeOrders+`
WHERE s.managerID = ?
ORDER BY o.orderTime DESC, o.orderNumber DESC`, sess.UserID)
	default:
		res, err = s.conn.ExecuteQueryRows(ctx, `SELECT orderNumber, storeID, productName, unitsOrdered, orderTime
FROM Orders
WHERE customerID = ?
ORDER BY orderTime DESC, orderNumber DESC
LIMIT ?`, sess.UserID, s.cfg.RecentOrdersLimit)
	}
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return res, nil
}
