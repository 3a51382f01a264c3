package console

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"retailWarehouse/internal/service"
)

// run wraps a service call with no questions into a command.
func (m *Model) run(call func(ctx context.Context) (func(*Model), error)) tea.Cmd {
	return m.startForm(newForm(func(ctx context.Context, _ *form) (func(*Model), error) {
		return call(ctx)
	}))
}

func printLine(format string, args ...any) func(*Model) {
	return func(m *Model) { fmt.Fprintf(m.out, format+"\n", args...) }
}

func (m *Model) exit() tea.Cmd {
	m.quit = true
	return tea.Quit
}

func (m *Model) createUser() tea.Cmd {
	return m.startForm(newForm(func(ctx context.Context, f *form) (func(*Model), error) {
		_, err := m.svc.CreateUser(ctx, service.NewUser{
			Name:      f.text("name"),
			Password:  f.text("password"),
			Latitude:  f.decimal("latitude"),
			Longitude: f.decimal("longitude"),
		})
		if err != nil {
			return nil, err
		}
		return printLine("User successfully created!"), nil
	},
		field{name: "name", prompt: "\tEnter name: "},
		field{name: "password", prompt: "\tEnter password: "},
		field{name: "latitude", prompt: "\tEnter latitude: ", kind: floatField},
		field{name: "longitude", prompt: "\tEnter longitude: ", kind: floatField},
	))
}

func (m *Model) logIn() tea.Cmd {
	return m.startForm(newForm(func(ctx context.Context, f *form) (func(*Model), error) {
		sess, err := m.svc.LogIn(ctx, f.text("name"), f.text("password"))
		if err != nil {
			return nil, err
		}
		return func(m *Model) { m.enterSession(sess) }, nil
	},
		field{name: "name", prompt: "\tEnter name: "},
		field{name: "password", prompt: "\tEnter password: "},
	))
}

func (m *Model) viewStores() tea.Cmd {
	sess := m.sess
	return m.run(func(ctx context.Context) (func(*Model), error) {
		stores, err := m.svc.ViewStores(ctx, sess)
		if err != nil {
			return nil, err
		}
		return func(m *Model) { printStores(m.out, stores) }, nil
	})
}

func (m *Model) viewProducts() tea.Cmd {
	return m.startForm(newForm(func(ctx context.Context, f *form) (func(*Model), error) {
		products, err := m.svc.ViewProducts(ctx, f.id("store"))
		if err != nil {
			return nil, err
		}
		return func(m *Model) { printProducts(m.out, products) }, nil
	},
		field{name: "store", prompt: "Enter StoreID: ", kind: idField},
	))
}

// placeOrder checks the store before asking for the product, and the stock
// before asking for the quantity.
func (m *Model) placeOrder() tea.Cmd {
	sess := m.sess
	return m.startForm(newForm(func(ctx context.Context, f *form) (func(*Model), error) {
		o, err := m.svc.PlaceOrder(ctx, sess, service.OrderRequest{
			StoreID:     f.id("store"),
			ProductName: f.text("product"),
			Units:       f.integer("units"),
		})
		if err != nil {
			return nil, err
		}
		return func(m *Model) {
			fmt.Fprintf(m.out, "Your order number is %d\n", o.Number)
			fmt.Fprintln(m.out, "Order successfully created!")
		}, nil
	},
		field{name: "store", prompt: "\tEnter storeId: ", kind: idField,
			check: func(ctx context.Context, f *form) error {
				return m.svc.CheckOrderStore(ctx, sess, f.id("store"))
			}},
		field{name: "product", prompt: "\tEnter the name of the product you wish to purchase: ",
			check: func(ctx context.Context, f *form) error {
				stock, err := m.svc.OrderQuote(ctx, sess, f.id("store"), f.text("product"))
				f.values["stock"] = stock
				return err
			}},
		field{name: "units", prompt: "\tEnter number of items: ", kind: intField,
			retry: func(f *form, v any) (string, bool) {
				n := v.(int)
				return "\tError! Enter a reasonable number of items: ", n < 1 || n > f.integer("stock")
			}},
	))
}

func (m *Model) viewRecentOrders() tea.Cmd {
	sess := m.sess
	return m.run(func(ctx context.Context) (func(*Model), error) {
		res, err := m.svc.ViewRecentOrders(ctx, sess)
		if err != nil {
			return nil, err
		}
		return func(m *Model) { PrintResult(m.out, res) }, nil
	})
}

func (m *Model) updateProduct() tea.Cmd {
	sess := m.sess
	return m.startForm(newForm(func(ctx context.Context, f *form) (func(*Model), error) {
		err := m.svc.UpdateProduct(ctx, sess, service.ProductChange{
			StoreID:     f.id("store"),
			ProductName: f.text("product"),
			Units:       f.integer("units"),
			Price:       f.decimal("price"),
		})
		if err != nil {
			return nil, err
		}
		return printLine("Product successfully updated!"), nil
	},
		field{name: "store", prompt: "What is the store Id you are trying to update for:\n", kind: idField,
			check: func(ctx context.Context, f *form) error {
				return m.svc.CheckStoreAccess(ctx, sess, f.id("store"))
			}},
		field{name: "product", prompt: "What is the Product Name you are trying to update for:\n",
			check: func(ctx context.Context, f *form) error {
				_, err := m.svc.CheckProductAccess(ctx, sess, f.id("store"), f.text("product"))
				return err
			}},
		field{name: "units", prompt: "new number of units:\n", kind: intField},
		field{name: "price", prompt: "new Price:\n", kind: floatField},
	))
}

func (m *Model) viewRecentUpdates() tea.Cmd {
	sess := m.sess
	return m.startForm(newForm(func(ctx context.Context, f *form) (func(*Model), error) {
		res, err := m.svc.ViewRecentUpdates(ctx, sess, f.id("store"))
		if err != nil {
			return nil, err
		}
		return func(m *Model) { PrintResult(m.out, res) }, nil
	},
		field{name: "store", prompt: "Enter storeID:\n", kind: idField},
	))
}

func (m *Model) viewPopularProducts() tea.Cmd {
	sess := m.sess
	return m.run(func(ctx context.Context) (func(*Model), error) {
		reports, err := m.svc.ViewPopularProducts(ctx, sess)
		if err != nil {
			return nil, err
		}
		return func(m *Model) { printReports(m.out, "Most Popular Items", reports) }, nil
	})
}

func (m *Model) viewPopularCustomers() tea.Cmd {
	sess := m.sess
	title := fmt.Sprintf("Top %d Customers", m.svc.Config().ReportLimit)
	return m.run(func(ctx context.Context) (func(*Model), error) {
		reports, err := m.svc.ViewPopularCustomers(ctx, sess)
		if err != nil {
			return nil, err
		}
		return func(m *Model) { printReports(m.out, title, reports) }, nil
	})
}

func (m *Model) placeSupplyRequest() tea.Cmd {
	sess := m.sess
	return m.startForm(newForm(func(ctx context.Context, f *form) (func(*Model), error) {
		req, err := m.svc.PlaceSupplyRequest(ctx, sess, service.SupplyRequestInput{
			StoreID:     f.id("store"),
			WarehouseID: f.id("warehouse"),
			ProductName: f.text("product"),
			Units:       f.integer("units"),
		})
		if err != nil {
			return nil, err
		}
		return func(m *Model) {
			fmt.Fprintf(m.out, "Your request number is %d\n", req.Number)
			fmt.Fprintln(m.out, "Supply request placed!")
		}, nil
	},
		field{name: "store", prompt: "Enter storeID:\n", kind: idField,
			check: func(ctx context.Context, f *form) error {
				return m.svc.CheckStoreAccess(ctx, sess, f.id("store"))
			}},
		field{name: "product", prompt: "\tEnter product name: "},
		field{name: "units", prompt: "\tEnter number of units needed: ", kind: intField},
		field{name: "warehouse", prompt: "\tEnter warehouse ID: ", kind: idField},
	))
}
