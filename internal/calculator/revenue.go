// Package calculator aggregates order data into dashboard figures.
package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/storeadmin/internal/models"
)

// PaidLine is one ordered product on a paid order.
type PaidLine struct {
	OrderID   string
	CreatedAt int64 // order creation, Unix seconds
	Price     decimal.Decimal
}

// TotalRevenue sums the price of every paid line.
func TotalRevenue(lines []PaidLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price)
	}
	return total
}

// SalesCount returns the number of distinct orders among the lines.
func SalesCount(lines []PaidLine) int {
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		seen[l.OrderID] = struct{}{}
	}
	return len(seen)
}

// MonthlyRevenue buckets paid revenue by the calendar month (UTC) the order
// was created in. The result always has twelve entries, January first, so
// months without sales report a zero total.
func MonthlyRevenue(lines []PaidLine) []models.MonthRevenue {
	var totals [12]decimal.Decimal
	for i := range totals {
		totals[i] = decimal.Zero
	}
	for _, l := range lines {
		m := time.Unix(l.CreatedAt, 0).UTC().Month()
		totals[m-1] = totals[m-1].Add(l.Price)
	}

	graph := make([]models.MonthRevenue, 12)
	for i := range graph {
		graph[i] = models.MonthRevenue{
			Name:  time.Month(i + 1).String()[:3],
			Total: totals[i],
		}
	}
	return graph
}

// Dashboard builds the full overview from paid lines and the stock count.
func Dashboard(lines []PaidLine, stockCount int) *models.Dashboard {
	return &models.Dashboard{
		TotalRevenue: TotalRevenue(lines),
		SalesCount:   SalesCount(lines),
		StockCount:   stockCount,
		GraphRevenue: MonthlyRevenue(lines),
	}
}
