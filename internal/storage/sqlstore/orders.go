package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/storeadmin/internal/models"
)

const orderColumns = "id, store_id, is_paid, phone, address, created_at, updated_at"

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	o := &models.Order{Items: []models.OrderItem{}}
	if err := row.Scan(&o.ID, &o.StoreID, &o.IsPaid, &o.Phone, &o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return o, nil
}

// insertItems verifies every ordered product lives in the order's store and
// writes the items in order.
func (s *Store) insertItems(ctx context.Context, tx *sql.Tx, o *models.Order) error {
	for i := range o.Items {
		item := &o.Items[i]
		if err := s.requireInStore(ctx, tx, "products", item.ProductID, o.StoreID); err != nil {
			return err
		}
		item.ID = uuid.New().String()
		item.OrderID = o.ID

		_, err := s.exec(ctx, tx,
			"INSERT INTO order_items (id, order_id, product_id, position) VALUES (?, ?, ?, ?)",
			item.ID, item.OrderID, item.ProductID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

// CreateOrder persists an order with its items.
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	o.CreatedAt, o.UpdatedAt = now, now

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx,
			"INSERT INTO orders ("+orderColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			o.ID, o.StoreID, o.IsPaid, o.Phone, o.Address, o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		return s.insertItems(ctx, tx, o)
	})
}

// GetOrder retrieves an order and its items. Returns nil if absent.
func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := scanOrder(s.queryRow(ctx, s.db,
		"SELECT "+orderColumns+" FROM orders WHERE id = ?", orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := s.loadItems(ctx, []*models.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns the store's orders, newest first, with item products.
func (s *Store) ListOrders(ctx context.Context, storeID string) ([]*models.Order, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+orderColumns+" FROM orders WHERE store_id = ? ORDER BY created_at DESC, id ASC", storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	rows.Close()

	if err := s.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fills Items on each order, in position order, with the ordered
// product attached.
func (s *Store) loadItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*models.Order, len(orders))
	ids := make([]string, len(orders))
	for i, o := range orders {
		byID[o.ID] = o
		ids[i] = o.ID
	}

	rows, err := s.query(ctx, s.db, `
		SELECT oi.id, oi.order_id, oi.product_id,
		       p.id, p.store_id, p.category_id, p.color_id, p.size_id, p.name, p.price,
		       p.is_featured, p.is_archived, p.created_at, p.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (`+placeholders(len(ids))+`)
		ORDER BY oi.order_id, oi.position`,
		toArgs(ids)...,
	)
	if err != nil {
		return fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		p := &models.Product{Images: []models.Image{}}
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&p.ID, &p.StoreID, &p.CategoryID, &p.ColorID, &p.SizeID, &p.Name, &p.Price,
			&p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Product = p
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate order items: %w", err)
	}
	return nil
}

// UpdateOrder updates payment and contact details and replaces the items.
func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) (int64, error) {
	var n int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = s.updateScoped(ctx, tx,
			"UPDATE orders SET is_paid = ?, phone = ?, address = ?, updated_at = ? WHERE id = ? AND store_id = ?",
			o.IsPaid, o.Phone, o.Address, time.Now().Unix(), o.ID, o.StoreID,
		)
		if err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		if n == 0 {
			return nil
		}

		if _, err := s.exec(ctx, tx, "DELETE FROM order_items WHERE order_id = ?", o.ID); err != nil {
			return fmt.Errorf("failed to clear order items: %w", err)
		}
		return s.insertItems(ctx, tx, o)
	})
	return n, err
}

// DeleteOrder removes an order and its items.
func (s *Store) DeleteOrder(ctx context.Context, storeID, orderID string) (int64, error) {
	return s.deleteScoped(ctx, "orders", storeID, orderID)
}
