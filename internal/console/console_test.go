package console

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"retailWarehouse/internal/auth"
	"retailWarehouse/internal/config"
	"retailWarehouse/internal/db"
	"retailWarehouse/internal/service"
	"retailWarehouse/internal/testutil"
)

type env struct {
	conn  *db.Conn
	svc   *service.Service
	store int64
}

func newEnv(t *testing.T, name string) *env {
	t.Helper()
	c := testutil.OpenInMemoryDB(t, name)
	mgr := testutil.SeedUser(t, c, "mgr", "mpw", 0, 0, "manager")
	store := testutil.SeedStore(t, c, "corner", 12, 12, mgr)
	testutil.SeedProduct(t, c, store, "Milk", 3, 2.5)
	svc := service.New(c, auth.NewTokenManager("test-secret", time.Hour),
		config.StoreConfig{Radius: 30, RecentOrdersLimit: 5, ReportLimit: 5})
	return &env{conn: c, svc: svc, store: store}
}

func (e *env) run(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := NewRouter(e.svc, strings.NewReader(input), &out).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func lines(parts ...string) string { return strings.Join(parts, "\n") + "\n" }

func TestRouter_AliceOrders(t *testing.T) {
	e := newEnv(t, "console_alice")
	store := fmt.Sprint(e.store)
	out := e.run(t, lines(
		"1", "alice", "pw1", "10", "10",
		"2", "alice", "pw1",
		"3", store, "Milk", "0", "4", "2",
		"3", store, "Milk", "1",
		"20",
		"9",
	))
	for _, want := range []string{
		"User successfully created!",
		"Error! Enter a reasonable number of items",
		"Your order number is 1\n",
		"Your order number is 2\n",
		"Order successfully created!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if n, _ := e.conn.ExecuteQueryCount(context.Background(), `SELECT * FROM Orders`); n != 2 {
		t.Fatalf("orders inserted = %d", n)
	}
}

func TestRouter_InvalidAndUnknownChoices(t *testing.T) {
	e := newEnv(t, "console_choices")
	out := e.run(t, lines("abc", "7", "9"))
	if !strings.Contains(out, "Your input is invalid!") {
		t.Fatalf("missing invalid input message:\n%s", out)
	}
	if !strings.Contains(out, "Unrecognized choice!") {
		t.Fatalf("missing unrecognized message:\n%s", out)
	}
}

func TestRouter_FailedLoginStaysLoggedOut(t *testing.T) {
	e := newEnv(t, "console_badlogin")
	out := e.run(t, lines("2", "mgr", "wrong", "9"))
	if !strings.Contains(out, "Invalid name or password") {
		t.Fatalf("missing login failure:\n%s", out)
	}
	if strings.Contains(out, "20. Log out") {
		t.Fatalf("authenticated menu shown after failed login:\n%s", out)
	}
}

func TestRouter_CustomerCannotUseManagerItems(t *testing.T) {
	e := newEnv(t, "console_customer")
	testutil.SeedUser(t, e.conn, "bob", "pw", 10, 10, "customer")
	out := e.run(t, lines("2", "bob", "pw", "5", "20", "9"))
	if strings.Contains(out, "5. Update Product") {
		t.Fatalf("manager items shown to customer:\n%s", out)
	}
	if !strings.Contains(out, "Unrecognized choice!") {
		t.Fatalf("manager choice not rejected:\n%s", out)
	}
}

func TestRouter_ManagerUpdatesProduct(t *testing.T) {
	e := newEnv(t, "console_manager")
	store := fmt.Sprint(e.store)
	out := e.run(t, lines(
		"2", "mgr", "mpw",
		"5", store, "Milk", "40", "1.75",
		"6", store,
		"5", store, "Eggs",
		"20", "9",
	))
	if !strings.Contains(out, "Product successfully updated!") {
		t.Fatalf("update not confirmed:\n%s", out)
	}
	if !strings.Contains(out, "updateNumber\tmanagerID\tstoreID\tproductName\tupdatedOn") {
		t.Fatalf("recent updates header missing:\n%s", out)
	}
	if !strings.Contains(out, "Product does not exist") {
		t.Fatalf("missing product not reported:\n%s", out)
	}
	if got := testutil.Units(t, e.conn, e.store, "Milk"); got != 40 {
		t.Fatalf("units = %d", got)
	}
}

func TestRouter_StoresListing(t *testing.T) {
	e := newEnv(t, "console_stores")
	testutil.SeedUser(t, e.conn, "bob", "pw", 10, 10, "customer")
	out := e.run(t, lines("2", "bob", "pw", "1", "2", fmt.Sprint(e.store), "20", "9"))
	if !strings.Contains(out, "Store Id\tname\tlatitude") {
		t.Fatalf("store header missing:\n%s", out)
	}
	if !strings.Contains(out, "\tcorner\t12\t12\t") {
		t.Fatalf("store row missing:\n%s", out)
	}
	if !strings.Contains(out, "Milk\t3\t2.5") {
		t.Fatalf("product row missing:\n%s", out)
	}
}

func TestRouter_EOFExitsCleanly(t *testing.T) {
	e := newEnv(t, "console_eof")
	out := e.run(t, lines("2", "mgr", "mpw", "5", fmt.Sprint(e.store)))
	if !strings.Contains(out, "20. Log out") {
		t.Fatalf("expected to reach the authenticated menu:\n%s", out)
	}
}

func TestRouter_LineEndingsAndUnterminatedLastLine(t *testing.T) {
	e := newEnv(t, "console_lines")
	out := e.run(t, "x\r\n 2 \r\nmgr\r\nmpw")
	if !strings.Contains(out, invalidInput) {
		t.Fatalf("invalid input not reported:\n%s", out)
	}
	if !strings.Contains(out, "20. Log out") {
		t.Fatalf("final line without a newline was not read:\n%s", out)
	}
}

func TestRouter_OutOfStockReturnsToMenu(t *testing.T) {
	e := newEnv(t, "console_out_of_stock")
	testutil.SeedUser(t, e.conn, "bob", "pw", 10, 10, "customer")
	if _, err := e.conn.ExecuteUpdate(context.Background(),
		`UPDATE Product SET numberOfUnits = 0 WHERE storeID = ? AND productName = ?`, e.store, "Milk"); err != nil {
		t.Fatalf("empty stock: %v", err)
	}
	out := e.run(t, lines("2", "bob", "pw", "3", fmt.Sprint(e.store), "Milk", "20", "9"))
	i := strings.Index(out, "Product is out of stock!")
	if i < 0 {
		t.Fatalf("out of stock not reported:\n%s", out)
	}
	if strings.Contains(out, "Enter number of items") {
		t.Fatalf("quantity asked for an empty product:\n%s", out)
	}
	if !strings.Contains(out[i:], "20. Log out") {
		t.Fatalf("menu not shown after the rejection:\n%s", out)
	}
	if n, _ := e.conn.ExecuteQueryCount(context.Background(), `SELECT * FROM Orders`); n != 0 {
		t.Fatalf("orders inserted = %d", n)
	}
}

func TestRouter_OrderChecksStoreBeforeProduct(t *testing.T) {
	e := newEnv(t, "console_store_first")
	testutil.SeedUser(t, e.conn, "bob", "pw", 10, 10, "customer")
	far := testutil.SeedStore(t, e.conn, "far", 90, 90, 1)
	out := e.run(t, lines(
		"2", "bob", "pw",
		"3", "999",
		"3", fmt.Sprint(far),
		"20", "9",
	))
	for _, want := range []string{"Store does not exist!", "Store is too far to order from!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "name of the product") {
		t.Fatalf("product asked before the store was accepted:\n%s", out)
	}
}

func TestRouter_SupplyRequestChecksStoreFirst(t *testing.T) {
	e := newEnv(t, "console_supply")
	other := testutil.SeedUser(t, e.conn, "mgr2", "mpw", 0, 0, "manager")
	theirs := testutil.SeedStore(t, e.conn, "theirs", 1, 1, other)
	w := testutil.SeedWarehouse(t, e.conn, 5, 5)
	out := e.run(t, lines(
		"2", "mgr", "mpw",
		"9", fmt.Sprint(theirs),
		"9", fmt.Sprint(e.store), "Milk", "20", fmt.Sprint(w),
		"20", "9",
	))
	if !strings.Contains(out, "You are not the Manager") {
		t.Fatalf("foreign store accepted:\n%s", out)
	}
	if strings.Count(out, "Enter product name") != 1 {
		t.Fatalf("product asked for a foreign store:\n%s", out)
	}
	if !strings.Contains(out, "Your request number is 1\n") || !strings.Contains(out, "Supply request placed!") {
		t.Fatalf("supply request not confirmed:\n%s", out)
	}
}

func TestPrintReports(t *testing.T) {
	var out bytes.Buffer
	printReports(&out, "Top 5 Customers", []service.StoreReport{
		{StoreID: 3, Result: &db.Result{Columns: []string{"customer_id", "name"}, Rows: [][]string{{"7", "bob"}}}},
	})
	want := separator + "\n	Top 5 Customers\n" + separator + "\n	For store 3:\ncustomer_id	name\n7	bob\n" + separator + "\n"
	if out.String() != want {
		t.Fatalf("output = %q", out.String())
	}
}

func TestPrintResult_EmptyKeepsHeader(t *testing.T) {
	var out bytes.Buffer
	PrintResult(&out, &db.Result{Columns: []string{"a", "b"}})
	if out.String() != "a\tb\nNo records found.\n" {
		t.Fatalf("output = %q", out.String())
	}
}
