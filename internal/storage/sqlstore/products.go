package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

const productColumns = "id, store_id, category_id, color_id, size_id, name, price, is_featured, is_archived, created_at, updated_at"

const productWithRelations = `
	SELECT p.id, p.store_id, p.category_id, p.color_id, p.size_id, p.name, p.price,
	       p.is_featured, p.is_archived, p.created_at, p.updated_at,
	       c.id, c.store_id, c.billboard_id, c.name, c.created_at, c.updated_at,
	       co.id, co.store_id, co.name, co.value, co.created_at, co.updated_at,
	       sz.id, sz.store_id, sz.name, sz.value, sz.created_at, sz.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN colors co ON co.id = p.color_id
	JOIN sizes sz ON sz.id = p.size_id`

func scanProductWithRelations(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{
		Images:   []models.Image{},
		Category: &models.Category{},
		Color:    &models.Color{},
		Size:     &models.Size{},
	}
	c, co, sz := p.Category, p.Color, p.Size
	err := row.Scan(
		&p.ID, &p.StoreID, &p.CategoryID, &p.ColorID, &p.SizeID, &p.Name, &p.Price,
		&p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.StoreID, &c.BillboardID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
		&co.ID, &co.StoreID, &co.Name, &co.Value, &co.CreatedAt, &co.UpdatedAt,
		&sz.ID, &sz.StoreID, &sz.Name, &sz.Value, &sz.CreatedAt, &sz.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// checkProductRefs verifies the product's category, color and size live in
// the product's store.
func (s *Store) checkProductRefs(ctx context.Context, tx *sql.Tx, p *models.Product) error {
	if err := s.requireInStore(ctx, tx, "categories", p.CategoryID, p.StoreID); err != nil {
		return err
	}
	if err := s.requireInStore(ctx, tx, "colors", p.ColorID, p.StoreID); err != nil {
		return err
	}
	return s.requireInStore(ctx, tx, "sizes", p.SizeID, p.StoreID)
}

// insertImages writes p.Images in order, assigning IDs and timestamps.
func (s *Store) insertImages(ctx context.Context, tx *sql.Tx, p *models.Product, now int64) error {
	for i := range p.Images {
		img := &p.Images[i]
		img.ID = uuid.New().String()
		img.ProductID = p.ID
		img.CreatedAt, img.UpdatedAt = now, now

		_, err := s.exec(ctx, tx,
			"INSERT INTO images (id, product_id, position, url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			img.ID, img.ProductID, i, img.URL, img.CreatedAt, img.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
	}
	return nil
}

// CreateProduct persists a product with its images.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	p.CreatedAt, p.UpdatedAt = now, now

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkProductRefs(ctx, tx, p); err != nil {
			return err
		}

		_, err := s.exec(ctx, tx,
			"INSERT INTO products ("+productColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.StoreID, p.CategoryID, p.ColorID, p.SizeID, p.Name, p.Price,
			p.IsFeatured, p.IsArchived, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}

		return s.insertImages(ctx, tx, p, now)
	})
}

// GetProduct retrieves a product with images, category, color and size.
// Returns nil if it does not exist.
func (s *Store) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	p, err := scanProductWithRelations(s.queryRow(ctx, s.db, productWithRelations+" WHERE p.id = ?", productID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.loadImages(ctx, []*models.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns the store's products matching filter, newest first.
func (s *Store) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error) {
	where := []string{"p.store_id = ?"}
	args := []any{filter.StoreID}
	if filter.CategoryID != "" {
		where = append(where, "p.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.ColorID != "" {
		where = append(where, "p.color_id = ?")
		args = append(args, filter.ColorID)
	}
	if filter.SizeID != "" {
		where = append(where, "p.size_id = ?")
		args = append(args, filter.SizeID)
	}
	if filter.FeaturedOnly {
		where = append(where, "p.is_featured = ?")
		args = append(args, true)
	}
	if !filter.IncludeArchived {
		where = append(where, "p.is_archived = ?")
		args = append(args, false)
	}

	rows, err := s.query(ctx, s.db,
		productWithRelations+" WHERE "+strings.Join(where, " AND ")+" ORDER BY p.created_at DESC, p.id ASC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProductWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	// Close before issuing the image query: SQLite runs on a single connection.
	rows.Close()

	if err := s.loadImages(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// loadImages fills Images on each product, in position order.
func (s *Store) loadImages(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[string]*models.Product, len(products))
	ids := make([]string, len(products))
	for i, p := range products {
		byID[p.ID] = p
		ids[i] = p.ID
	}

	rows, err := s.query(ctx, s.db,
		"SELECT id, product_id, url, created_at, updated_at FROM images WHERE product_id IN ("+
			placeholders(len(ids))+") ORDER BY product_id, position",
		toArgs(ids)...,
	)
	if err != nil {
		return fmt.Errorf("failed to get images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan image: %w", err)
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate images: %w", err)
	}
	return nil
}

// UpdateProduct updates the matching product and replaces its images.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) (int64, error) {
	var n int64
	now := time.Now().Unix()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkProductRefs(ctx, tx, p); err != nil {
			return err
		}

		var err error
		n, err = s.updateScoped(ctx, tx,
			`UPDATE products SET name = ?, price = ?, category_id = ?, color_id = ?, size_id = ?,
			    is_featured = ?, is_archived = ?, updated_at = ?
			 WHERE id = ? AND store_id = ?`,
			p.Name, p.Price, p.CategoryID, p.ColorID, p.SizeID,
			p.IsFeatured, p.IsArchived, now, p.ID, p.StoreID,
		)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if n == 0 {
			return nil
		}

		if _, err := s.exec(ctx, tx, "DELETE FROM images WHERE product_id = ?", p.ID); err != nil {
			return fmt.Errorf("failed to clear images: %w", err)
		}
		return s.insertImages(ctx, tx, p, now)
	})
	return n, err
}

// DeleteProduct removes a product and its images. Fails with
// storage.ErrReferenced while an order item still uses it.
func (s *Store) DeleteProduct(ctx context.Context, storeID, productID string) (int64, error) {
	return s.deleteScoped(ctx, "products", storeID, productID)
}
