package models

import "time"

// Product is one line of a store's inventory, keyed by (StoreID, Name).
type Product struct {
	StoreID      int64   `db:"storeID" json:"store_id"`
	Name         string  `db:"productName" json:"name"`
	Units        int     `db:"numberOfUnits" json:"units"`
	PricePerUnit float64 `db:"pricePerUnit" json:"price_per_unit"`
}

// ProductUpdate is an entry of the ProductUpdates log.
type ProductUpdate struct {
	Number      int64     `db:"updateNumber" json:"number"`
	ManagerID   int64     `db:"managerID" json:"manager_id"`
	StoreID     int64     `db:"storeID" json:"store_id"`
	ProductName string    `db:"productName" json:"product_name"`
	UpdatedOn   time.Time `db:"updatedOn" json:"updated_on"`
}
