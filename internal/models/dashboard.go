package models

import "github.com/shopspring/decimal"

// Dashboard is the overview shown on a store's landing page.
type Dashboard struct {
	// TotalRevenue is the sum of product prices across paid orders.
	TotalRevenue decimal.Decimal `json:"totalRevenue"`

	// SalesCount is the number of paid orders.
	SalesCount int `json:"salesCount"`

	// StockCount is the number of products that are not archived.
	StockCount int `json:"stockCount"`

	// GraphRevenue holds one entry per calendar month, January first.
	GraphRevenue []MonthRevenue `json:"graphRevenue"`
}

// MonthRevenue is paid revenue for one calendar month.
type MonthRevenue struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}
