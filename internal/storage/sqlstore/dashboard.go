package sqlstore

import (
	"context"
	"fmt"

	"github.com/mmynk/storeadmin/internal/calculator"
)

// PaidLines returns one line per ordered product on the store's paid orders.
func (s *Store) PaidLines(ctx context.Context, storeID string) ([]calculator.PaidLine, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT o.id, o.created_at, p.price
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.store_id = ? AND o.is_paid = ?`,
		storeID, true,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get paid order lines: %w", err)
	}
	defer rows.Close()

	var lines []calculator.PaidLine
	for rows.Next() {
		var l calculator.PaidLine
		if err := rows.Scan(&l.OrderID, &l.CreatedAt, &l.Price); err != nil {
			return nil, fmt.Errorf("failed to scan paid order line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paid order lines: %w", err)
	}
	return lines, nil
}

// StockCount returns the number of non-archived products in the store.
func (s *Store) StockCount(ctx context.Context, storeID string) (int, error) {
	var n int
	err := s.queryRow(ctx, s.db,
		"SELECT COUNT(*) FROM products WHERE store_id = ? AND is_archived = ?",
		storeID, false,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count stock: %w", err)
	}
	return n, nil
}
