package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"retailWarehouse/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The connection is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *db.Conn {
	t.Helper()
	// Shared cache keeps the database alive for as long as the connection is open.
	c, err := db.Open(context.Background(), db.Options{
		Dialect: db.SQLite,
		Path:    "file:" + name + "?mode=memory&cache=shared",
		Timeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, c *db.Conn, name, password string, lat, long float64, role string) int64 {
	t.Helper()
	var id int64
	err := c.QueryRow(context.Background(),
		`INSERT INTO Users (name, password, latitude, longitude, type) VALUES (?, ?, ?, ?, ?) RETURNING userID`,
		name, password, lat, long, role).Scan(&id)
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return id
}

// SeedStore inserts a store managed by managerID and returns its id.
func SeedStore(t *testing.T, c *db.Conn, name string, lat, long float64, managerID int64) int64 {
	t.Helper()
	var id int64
	err := c.QueryRow(context.Background(),
		`INSERT INTO Store (name, latitude, longitude, managerID) VALUES (?, ?, ?, ?) RETURNING storeID`,
		name, lat, long, managerID).Scan(&id)
	if err != nil {
		t.Fatalf("seed store %s: %v", name, err)
	}
	return id
}

// SeedProduct inserts a product into a store.
func SeedProduct(t *testing.T, c *db.Conn, storeID int64, name string, units int, price float64) {
	t.Helper()
	_, err := c.ExecuteUpdate(context.Background(),
		`INSERT INTO Product (storeID, productName, numberOfUnits, pricePerUnit) VALUES (?, ?, ?, ?)`,
		storeID, name, units, price)
	if err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
}

// SeedWarehouse inserts a warehouse and returns its id.
func SeedWarehouse(t *testing.T, c *db.Conn, lat, long float64) int64 {
	t.Helper()
	var id int64
	err := c.QueryRow(context.Background(),
		`INSERT INTO Warehouse (area, latitude, longitude) VALUES (?, ?, ?) RETURNING WarehouseID`,
		100.0, lat, long).Scan(&id)
	if err != nil {
		t.Fatalf("seed warehouse: %v", err)
	}
	return id
}

// Units returns the current stock of a product, failing the test if it is missing.
func Units(t *testing.T, c *db.Conn, storeID int64, name string) int {
	t.Helper()
	var n int
	err := c.QueryRow(context.Background(),
		`SELECT numberOfUnits FROM Product WHERE storeID = ? AND productName = ?`, storeID, name).Scan(&n)
	if err != nil {
		t.Fatalf("read units of %s: %v", name, err)
	}
	return n
}

// Cell returns the value at row i of the named column, or "" when absent.
func Cell(res *db.Result, i int, col string) string {
	if res == nil || i < 0 || i >= len(res.Rows) {
		return ""
	}
	for j, c := range res.Columns {
		if strings.EqualFold(c, col) && j < len(res.Rows[i]) {
			return res.Rows[i][j]
		}
	}
	return ""
}
