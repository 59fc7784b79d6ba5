package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func unix(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Unix()
}

func TestTotalRevenue(t *testing.T) {
	tests := []struct {
		name  string
		lines []PaidLine
		want  string
	}{
		{name: "no sales", lines: nil, want: "0"},
		{
			name: "exact decimal sum",
			lines: []PaidLine{
				{OrderID: "o1", Price: decimal.RequireFromString("0.10")},
				{OrderID: "o1", Price: decimal.RequireFromString("0.20")},
				{OrderID: "o2", Price: decimal.RequireFromString("19.99")},
			},
			want: "20.29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalRevenue(tt.lines)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("TotalRevenue() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSalesCount(t *testing.T) {
	lines := []PaidLine{
		{OrderID: "o1", Price: decimal.NewFromInt(10)},
		{OrderID: "o1", Price: decimal.NewFromInt(5)},
		{OrderID: "o2", Price: decimal.NewFromInt(7)},
	}
	if got := SalesCount(lines); got != 2 {
		t.Errorf("SalesCount() = %d, want 2", got)
	}
	if got := SalesCount(nil); got != 0 {
		t.Errorf("SalesCount(nil) = %d, want 0", got)
	}
}

func TestMonthlyRevenue(t *testing.T) {
	lines := []PaidLine{
		{OrderID: "o1", CreatedAt: unix(2024, time.January, 3), Price: decimal.NewFromInt(10)},
		{OrderID: "o2", CreatedAt: unix(2024, time.January, 28), Price: decimal.NewFromInt(15)},
		{OrderID: "o3", CreatedAt: unix(2023, time.December, 31), Price: decimal.RequireFromString("2.50")},
	}

	graph := MonthlyRevenue(lines)
	if len(graph) != 12 {
		t.Fatalf("expected 12 months, got %d", len(graph))
	}
	if graph[0].Name != "Jan" || graph[11].Name != "Dec" {
		t.Errorf("unexpected month names: %q .. %q", graph[0].Name, graph[11].Name)
	}
	if !graph[0].Total.Equal(decimal.NewFromInt(25)) {
		t.Errorf("January total = %s, want 25", graph[0].Total)
	}
	if !graph[11].Total.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("December total = %s, want 2.5", graph[11].Total)
	}
	for _, m := range graph[1:11] {
		if !m.Total.IsZero() {
			t.Errorf("%s total = %s, want 0", m.Name, m.Total)
		}
	}
}

func TestDashboard(t *testing.T) {
	lines := []PaidLine{
		{OrderID: "o1", CreatedAt: unix(2024, time.March, 1), Price: decimal.NewFromInt(40)},
		{OrderID: "o1", CreatedAt: unix(2024, time.March, 1), Price: decimal.NewFromInt(2)},
	}
	d := Dashboard(lines, 7)
	if !d.TotalRevenue.Equal(decimal.NewFromInt(42)) {
		t.Errorf("TotalRevenue = %s, want 42", d.TotalRevenue)
	}
	if d.SalesCount != 1 {
		t.Errorf("SalesCount = %d, want 1", d.SalesCount)
	}
	if d.StockCount != 7 {
		t.Errorf("StockCount = %d, want 7", d.StockCount)
	}
	if !d.GraphRevenue[2].Total.Equal(decimal.NewFromInt(42)) {
		t.Errorf("March total = %s, want 42", d.GraphRevenue[2].Total)
	}
}
