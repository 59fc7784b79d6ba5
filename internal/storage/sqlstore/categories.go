package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/storeadmin/internal/models"
)

const categoryWithBillboard = `
	SELECT c.id, c.store_id, c.billboard_id, c.name, c.created_at, c.updated_at,
	       b.id, b.store_id, b.label, b.image_url, b.created_at, b.updated_at
	FROM categories c
	JOIN billboards b ON b.id = c.billboard_id`

func scanCategory(row interface{ Scan(...any) error }) (*models.Category, error) {
	c := &models.Category{Billboard: &models.Billboard{}}
	b := c.Billboard
	err := row.Scan(
		&c.ID, &c.StoreID, &c.BillboardID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
		&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCategory inserts a category after checking its billboard belongs to
// the same store.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	c.CreatedAt, c.UpdatedAt = now, now

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.requireInStore(ctx, tx, "billboards", c.BillboardID, c.StoreID); err != nil {
			return err
		}
		_, err := s.exec(ctx, tx,
			"INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			c.ID, c.StoreID, c.BillboardID, c.Name, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}
		return nil
	})
}

// GetCategory retrieves a category and its billboard. Returns nil if absent.
func (s *Store) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	c, err := scanCategory(s.queryRow(ctx, s.db, categoryWithBillboard+" WHERE c.id = ?", categoryID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// ListCategories returns the store's categories with billboards, newest first.
func (s *Store) ListCategories(ctx context.Context, storeID string) ([]*models.Category, error) {
	rows, err := s.query(ctx, s.db,
		categoryWithBillboard+" WHERE c.store_id = ? ORDER BY c.created_at DESC, c.id ASC", storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory sets name and billboard on the matching category.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) (int64, error) {
	var n int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.requireInStore(ctx, tx, "billboards", c.BillboardID, c.StoreID); err != nil {
			return err
		}
		var err error
		n, err = s.updateScoped(ctx, tx,
			"UPDATE categories SET name = ?, billboard_id = ?, updated_at = ? WHERE id = ? AND store_id = ?",
			c.Name, c.BillboardID, time.Now().Unix(), c.ID, c.StoreID,
		)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	return n, err
}

// DeleteCategory removes a category. Fails with storage.ErrReferenced while a
// product still uses it.
func (s *Store) DeleteCategory(ctx context.Context, storeID, categoryID string) (int64, error) {
	return s.deleteScoped(ctx, "categories", storeID, categoryID)
}
