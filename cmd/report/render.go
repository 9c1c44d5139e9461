package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	reportapp "github.com/shopdesk/backend/internal/application/report"
)

const dateLayout = "2006-01-02"

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func renderOverview(w io.Writer, o *reportapp.OverviewResponse) error {
	section(w, "Overview")
	if err := renderTable(w, []string{"Metric", "Value"}, [][]string{
		{"Products", strconv.FormatInt(o.TotalProducts, 10)},
		{"Categories", strconv.FormatInt(o.TotalCategories, 10)},
		{"Orders", strconv.FormatInt(o.TotalOrders, 10)},
		{"Orders (last 30 days)", strconv.FormatInt(o.RecentOrders, 10)},
		{"Revenue", o.TotalRevenue.String()},
		{"Revenue (last 30 days)", o.MonthlyRevenue.String()},
	}); err != nil {
		return err
	}

	section(w, "Orders by status")
	rows := make([][]string, 0, len(o.StatusBreakdown))
	for _, s := range o.StatusBreakdown {
		rows = append(rows, []string{reportapp.StatusLabel(s.Status), strconv.FormatInt(s.Count, 10)})
	}
	if err := renderTable(w, []string{"Status", "Orders"}, rows); err != nil {
		return err
	}

	section(w, "Top products")
	rows = nil
	for _, p := range o.TopProducts {
		rows = append(rows, []string{p.Name, strconv.FormatInt(p.LineCount, 10), strconv.FormatInt(p.UnitsSold, 10)})
	}
	if err := renderTable(w, []string{"Product", "Order lines", "Units"}, rows); err != nil {
		return err
	}

	section(w, "Latest orders")
	rows = nil
	for _, d := range o.LatestOrders {
		rows = append(rows, []string{
			d.OrderID.String()[:8],
			d.CustomerUsername,
			d.TotalAmount.String(),
			reportapp.StatusLabel(d.Status),
			d.CreatedAt.Format(dateLayout),
		})
	}
	return renderTable(w, []string{"Order", "Customer", "Total", "Status", "Created"}, rows)
}

func renderAnalytics(w io.Writer, a *reportapp.AnalyticsResponse) error {
	section(w, "Delivered revenue by day")
	rows := make([][]string, 0, len(a.Days))
	for _, d := range a.Days {
		rows = append(rows, []string{d.Date.Format(dateLayout), strconv.FormatInt(d.OrderCount, 10), d.Revenue.String()})
	}
	if err := renderTable(w, []string{"Day", "Orders", "Revenue"}, rows); err != nil {
		return err
	}

	section(w, "Categories")
	rows = nil
	for _, c := range a.Categories {
		rows = append(rows, []string{
			c.Name,
			strconv.FormatInt(c.ProductCount, 10),
			strconv.FormatInt(c.LinesSold, 10),
			strconv.FormatInt(c.UnitsSold, 10),
		})
	}
	if err := renderTable(w, []string{"Category", "Products", "Order lines", "Units"}, rows); err != nil {
		return err
	}

	section(w, "Month over month")
	m := a.Months
	return renderTable(w, []string{"Month", "Delivered orders", "Revenue"}, [][]string{
		{m.CurrentMonth.Format("2006-01"), strconv.FormatInt(m.Current.OrderCount, 10), m.Current.Revenue.String()},
		{m.PreviousMonth.Format("2006-01"), strconv.FormatInt(m.Previous.OrderCount, 10), m.Previous.Revenue.String()},
	})
}

func renderInventory(w io.Writer, inv *reportapp.InventoryResponse) error {
	section(w, fmt.Sprintf("Low stock (below %d)", inv.LowStockThreshold))
	rows := make([][]string, 0, len(inv.LowStock))
	for _, s := range inv.LowStock {
		rows = append(rows, []string{s.Name, s.CategoryName, strconv.Itoa(s.StockQuantity), s.Price.String()})
	}
	if err := renderTable(w, []string{"Product", "Category", "Stock", "Price"}, rows); err != nil {
		return err
	}

	section(w, "Stock by category")
	rows = nil
	for _, c := range inv.Categories {
		rows = append(rows, []string{
			c.Name,
			strconv.FormatInt(c.ProductCount, 10),
			strconv.FormatInt(c.TotalStock, 10),
			c.AveragePrice.String(),
		})
	}
	if err := renderTable(w, []string{"Category", "Products", "Stock", "Average price"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nOut of stock: %d product(s)\n", len(inv.OutOfStock))
	return nil
}
