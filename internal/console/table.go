package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"retailWarehouse/internal/db"
	"retailWarehouse/internal/service"
	"retailWarehouse/models"
)

// PrintResult writes a header of column names followed by one line per row,
// columns separated by tabs.
func PrintResult(w io.Writer, res *db.Result) {
	if res == nil {
		return
	}
	fmt.Fprintln(w, strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if res.Len() == 0 {
		fmt.Fprintln(w, "No records found.")
	}
}

func printRows(w io.Writer, columns []string, rows [][]string) {
	PrintResult(w, &db.Result{Columns: columns, Rows: rows})
}

// printReports writes one section per store under a shared title.
func printReports(w io.Writer, title string, reports []service.StoreReport) {
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "\t%s\n", title)
	for _, r := range reports {
		fmt.Fprintln(w, separator)
		fmt.Fprintf(w, "\tFor store %d:\n", r.StoreID)
		PrintResult(w, r.Result)
	}
	fmt.Fprintln(w, separator)
}

func printStores(w io.Writer, stores []models.StoreDistance) {
	rows := make([][]string, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			db.FormatValue(s.Latitude),
			db.FormatValue(s.Longitude),
			strconv.FormatInt(s.ManagerID, 10),
			s.DateEstablished,
			strconv.FormatFloat(s.Distance, 'f', 2, 64),
		})
	}
	printRows(w, []string{"Store Id", "name", "latitude", "longitude", "manager id", "date established", "distance"}, rows)
}

func printProducts(w io.Writer, products []models.Product) {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.StoreID, 10),
			p.Name,
			strconv.Itoa(p.Units),
			db.FormatValue(p.PricePerUnit),
		})
	}
	printRows(w, []string{"storeID", "productName", "numberOfUnits", "pricePerUnit"}, rows)
}
