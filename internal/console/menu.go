package console

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

// MenuItem is one numbered line of a menu. An item with Choice 0 is a
// divider and cannot be selected.
type MenuItem struct {
	Choice     int
	Label      string
	Privileged bool // shown only to managers and admins
	Submenu    *Menu
	Action     func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

// linkParents sets Parent links and points "Log out" items back at the parent.
func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Log out" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(m *Model) *Menu {
	cfg := m.svc.Config()

	/* Authenticated menu */
	user := &Menu{
		Title: "MAIN MENU",
		Items: []MenuItem{
			{Choice: 1, Label: fmt.Sprintf("View Stores within %v miles", cfg.Radius), Action: m.viewStores},
			{Choice: 2, Label: "View Product List", Action: m.viewProducts},
			{Choice: 3, Label: "Place a Order", Action: m.placeOrder},
			{Choice: 4, Label: fmt.Sprintf("View %d recent orders", cfg.RecentOrdersLimit), Action: m.viewRecentOrders},
			{Choice: 5, Label: "Update Product", Privileged: true, Action: m.updateProduct},
			{Choice: 6, Label: fmt.Sprintf("View %d recent Product Updates Info", cfg.ReportLimit), Privileged: true, Action: m.viewRecentUpdates},
			{Choice: 7, Label: fmt.Sprintf("View %d Popular Items", cfg.ReportLimit), Privileged: true, Action: m.viewPopularProducts},
			{Choice: 8, Label: fmt.Sprintf("View %d Popular Customers", cfg.ReportLimit), Privileged: true, Action: m.viewPopularCustomers},
			{Choice: 9, Label: "Place Product Supply Request to Warehouse", Privileged: true, Action: m.placeSupplyRequest},
			{Label: "........................."},
			{Choice: 20, Label: "Log out"},
		},
	}

	/* Root Menu */
	root := &Menu{
		Title: "MAIN MENU",
		Items: []MenuItem{
			{Choice: 1, Label: "Create user", Action: m.createUser},
			{Choice: 2, Label: "Log in", Action: m.logIn},
			{Choice: 9, Label: "< EXIT", Action: m.exit},
		},
	}

	linkParents(root, nil)
	linkParents(user, root)
	m.userMenu = user

	return root
}

// visible reports whether item is listed for the current caller.
func (m *Model) visible(item MenuItem) bool {
	return !item.Privileged || m.sess.IsPrivileged()
}

// lookup returns the selectable item numbered choice in the current menu.
func (m *Model) lookup(choice int) (MenuItem, bool) {
	for _, item := range m.menu.Items {
		if item.Choice != 0 && item.Choice == choice && m.visible(item) {
			return item, true
		}
	}
	return MenuItem{}, false
}

func (m *Model) showMenu() {
	fmt.Fprintln(m.out, m.menu.Title)
	fmt.Fprintln(m.out, "---------")
	for _, item := range m.menu.Items {
		if !m.visible(item) {
			continue
		}
		if item.Choice == 0 {
			fmt.Fprintln(m.out, item.Label)
			continue
		}
		fmt.Fprintf(m.out, "%d. %s\n", item.Choice, item.Label)
	}
	fmt.Fprint(m.out, choicePrompt)
}
