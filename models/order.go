package models

import "time"

// Order is a customer purchase. Number is assigned by the database.
type Order struct {
	Number       int64     `db:"orderNumber" json:"number"`
	CustomerID   int64     `db:"customerID" json:"customer_id"`
	StoreID      int64     `db:"storeID" json:"store_id"`
	ProductName  string    `db:"productName" json:"product_name"`
	UnitsOrdered int       `db:"unitsOrdered" json:"units_ordered"`
	OrderTime    time.Time `db:"orderTime" json:"order_time"`
}

// SupplyRequest asks a warehouse to replenish a store's stock of a product.
type SupplyRequest struct {
	Number         int64  `db:"requestNumber" json:"number"`
	ManagerID      int64  `db:"managerID" json:"manager_id"`
	WarehouseID    int64  `db:"warehouseID" json:"warehouse_id"`
	StoreID        int64  `db:"storeID" json:"store_id"`
	ProductName    string `db:"productName" json:"product_name"`
	UnitsRequested int    `db:"unitsRequested" json:"units_requested"`
}
