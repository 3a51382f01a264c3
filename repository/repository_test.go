package repository

import (
	"context"
	"testing"
	"time"

	"retailWarehouse/internal/testutil"
	"retailWarehouse/models"
)

func TestUserRepository_CreateAndQueries(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "userrepo")
	repo := NewUserRepository(d)
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Name: "alice", Password: "pw1", Latitude: 10, Longitude: 10})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Role != models.RoleCustomer {
		t.Fatalf("unexpected created user: %+v", u)
	}

	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g == nil || g.Name != "alice" || g.Latitude != 10 {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	m, err := repo.MatchCredentials(ctx, "alice", "pw1")
	if err != nil || m == nil || m.ID != u.ID {
		t.Fatalf("match: %v %+v", err, m)
	}
	for _, tc := range [][2]string{{"alice", "PW1"}, {"Alice", "pw1"}, {"alice", ""}, {"bob", "pw1"}} {
		m, err := repo.MatchCredentials(ctx, tc[0], tc[1])
		if err != nil || m != nil {
			t.Fatalf("match %v should be nil, got %+v %v", tc, m, err)
		}
	}

	missing, err := repo.GetByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing user, got %+v %v", missing, err)
	}
}

func TestUserRepository_RoleParsed(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "userrole")
	id := testutil.SeedUser(t, d, "boss", "x", 0, 0, " Manager ")
	u, err := NewUserRepository(d).GetByID(context.Background(), id)
	if err != nil || u == nil {
		t.Fatalf("get: %v %+v", err, u)
	}
	if u.Role != models.RoleManager {
		t.Fatalf("role = %q", u.Role)
	}
}

func TestStoreRepository(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "storerepo")
	m1 := testutil.SeedUser(t, d, "m1", "x", 0, 0, "manager")
	m2 := testutil.SeedUser(t, d, "m2", "x", 0, 0, "manager")
	s1 := testutil.SeedStore(t, d, "north", 1, 1, m1)
	testutil.SeedStore(t, d, "south", 2, 2, m2)
	s3 := testutil.SeedStore(t, d, "east", 3, 3, m1)

	repo := NewStoreRepository(d)
	ctx := context.Background()

	s, err := repo.GetByID(ctx, s1)
	if err != nil || s == nil || s.ManagerID != m1 || s.DateEstablished == "" {
		t.Fatalf("get: %v %+v", err, s)
	}
	all, err := repo.List(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("list: %v len=%d", err, len(all))
	}
	mine, err := repo.ListByManager(ctx, m1)
	if err != nil || len(mine) != 2 || mine[0].ID != s1 || mine[1].ID != s3 {
		t.Fatalf("list by manager: %v %+v", err, mine)
	}
	none, err := repo.GetByID(ctx, 404)
	if err != nil || none != nil {
		t.Fatalf("expected nil store, got %+v %v", none, err)
	}
}

func TestProductRepository(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "productrepo")
	m := testutil.SeedUser(t, d, "m", "x", 0, 0, "manager")
	s := testutil.SeedStore(t, d, "north", 1, 1, m)
	testutil.SeedProduct(t, d, s, "Milk", 4, 2.5)
	testutil.SeedProduct(t, d, s, "Bread", 10, 1)

	repo := NewProductRepository(d)
	ctx := context.Background()

	list, err := repo.ListByStore(ctx, s)
	if err != nil || len(list) != 2 || list[0].Name != "Bread" {
		t.Fatalf("list: %v %+v", err, list)
	}
	empty, err := repo.ListByStore(ctx, 999)
	if err != nil || len(empty) != 0 {
		t.Fatalf("list missing store: %v %+v", err, empty)
	}

	if err := repo.Update(ctx, &models.Product{StoreID: s, Name: "Milk", Units: 7, PricePerUnit: 3}); err != nil {
		t.Fatalf("update: %v", err)
	}
	p, err := repo.Get(ctx, s, "Milk")
	if err != nil || p == nil || p.Units != 7 || p.PricePerUnit != 3 {
		t.Fatalf("get after update: %v %+v", err, p)
	}
	if err := repo.Update(ctx, &models.Product{StoreID: s, Name: "Eggs"}); err == nil {
		t.Fatalf("expected error updating missing product")
	}

	ok, err := repo.AdjustUnits(ctx, s, "Milk", -7)
	if err != nil || !ok {
		t.Fatalf("decrement to zero: %v %v", ok, err)
	}
	ok, err = repo.AdjustUnits(ctx, s, "Milk", -1)
	if err != nil || ok {
		t.Fatalf("decrement below zero should not apply: %v %v", ok, err)
	}
	if got := testutil.Units(t, d, s, "Milk"); got != 0 {
		t.Fatalf("units = %d", got)
	}
}

func TestOrderRepository_NumbersIncrease(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orderrepo")
	c := testutil.SeedUser(t, d, "alice", "pw1", 10, 10, "customer")
	m := testutil.SeedUser(t, d, "m", "x", 0, 0, "manager")
	s := testutil.SeedStore(t, d, "north", 1, 1, m)

	repo := NewOrderRepository(d)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var last int64
	for i := 0; i < 3; i++ {
		o, err := repo.Create(ctx, &models.Order{CustomerID: c, StoreID: s, ProductName: "Milk", UnitsOrdered: 1, OrderTime: at})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if o.Number <= last {
			t.Fatalf("order number %d not greater than %d", o.Number, last)
		}
		last = o.Number
	}

	n, err := d.ExecuteQueryCount(ctx, `SELECT * FROM Orders WHERE orderNumber = ? AND customerID = ?`, last, c)
	if err != nil || n != 1 {
		t.Fatalf("stored order: %v count=%d", err, n)
	}
}

func TestSupplyAndUpdateLogs(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "supplyrepo")
	m := testutil.SeedUser(t, d, "m", "x", 0, 0, "manager")
	s := testutil.SeedStore(t, d, "north", 1, 1, m)
	w := testutil.SeedWarehouse(t, d, 5, 5)
	ctx := context.Background()

	r1, err := NewSupplyRequestRepository(d).Create(ctx, &models.SupplyRequest{ManagerID: m, WarehouseID: w, StoreID: s, ProductName: "Milk", UnitsRequested: 20})
	if err != nil || r1.Number == 0 {
		t.Fatalf("create supply request: %v %+v", err, r1)
	}
	if _, err := NewSupplyRequestRepository(d).Create(ctx, &models.SupplyRequest{ManagerID: m, WarehouseID: 999, StoreID: s, ProductName: "Milk", UnitsRequested: 1}); err == nil {
		t.Fatalf("expected foreign key failure for unknown warehouse")
	}

	updates := NewProductUpdateRepository(d)
	u1, err := updates.Create(ctx, &models.ProductUpdate{ManagerID: m, StoreID: s, ProductName: "Milk", UpdatedOn: time.Now()})
	if err != nil {
		t.Fatalf("log update: %v", err)
	}
	u2, err := updates.Create(ctx, &models.ProductUpdate{ManagerID: m, StoreID: s, ProductName: "Milk", UpdatedOn: time.Now()})
	if err != nil || u2.Number <= u1.Number {
		t.Fatalf("update numbers not increasing: %v %+v %+v", err, u1, u2)
	}
}
