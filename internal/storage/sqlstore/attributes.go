package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/storeadmin/internal/models"
)

// Colors and sizes share one table shape: id, store_id, name, value.

type attribute struct {
	ID, StoreID, Name, Value string
	CreatedAt, UpdatedAt     int64
}

const attributeColumns = "id, store_id, name, value, created_at, updated_at"

func scanAttribute(row interface{ Scan(...any) error }) (*attribute, error) {
	a := &attribute{}
	if err := row.Scan(&a.ID, &a.StoreID, &a.Name, &a.Value, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) createAttribute(ctx context.Context, table string, a *attribute) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	a.CreatedAt, a.UpdatedAt = now, now

	_, err := s.exec(ctx, s.db,
		"INSERT INTO "+table+" ("+attributeColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		a.ID, a.StoreID, a.Name, a.Value, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (s *Store) getAttribute(ctx context.Context, table, id string) (*attribute, error) {
	a, err := scanAttribute(s.queryRow(ctx, s.db,
		"SELECT "+attributeColumns+" FROM "+table+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from %s: %w", table, err)
	}
	return a, nil
}

func (s *Store) listAttributes(ctx context.Context, table, storeID string) ([]*attribute, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+attributeColumns+" FROM "+table+" WHERE store_id = ? ORDER BY created_at DESC, id ASC", storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var attrs []*attribute
	for rows.Next() {
		a, err := scanAttribute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return attrs, nil
}

func (s *Store) updateAttribute(ctx context.Context, table string, a *attribute) (int64, error) {
	n, err := s.updateScoped(ctx, s.db,
		"UPDATE "+table+" SET name = ?, value = ?, updated_at = ? WHERE id = ? AND store_id = ?",
		a.Name, a.Value, time.Now().Unix(), a.ID, a.StoreID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}
	return n, nil
}

// CreateColor inserts a color into color.StoreID.
func (s *Store) CreateColor(ctx context.Context, color *models.Color) error {
	a := &attribute{ID: color.ID, StoreID: color.StoreID, Name: color.Name, Value: color.Value}
	if err := s.createAttribute(ctx, "colors", a); err != nil {
		return err
	}
	*color = colorFrom(a)
	return nil
}

// GetColor retrieves a color by ID. Returns nil if it does not exist.
func (s *Store) GetColor(ctx context.Context, colorID string) (*models.Color, error) {
	a, err := s.getAttribute(ctx, "colors", colorID)
	if err != nil || a == nil {
		return nil, err
	}
	c := colorFrom(a)
	return &c, nil
}

// ListColors returns the store's colors, newest first.
func (s *Store) ListColors(ctx context.Context, storeID string) ([]*models.Color, error) {
	attrs, err := s.listAttributes(ctx, "colors", storeID)
	if err != nil {
		return nil, err
	}
	colors := make([]*models.Color, len(attrs))
	for i, a := range attrs {
		c := colorFrom(a)
		colors[i] = &c
	}
	return colors, nil
}

// UpdateColor sets name and value on the matching color.
func (s *Store) UpdateColor(ctx context.Context, color *models.Color) (int64, error) {
	return s.updateAttribute(ctx, "colors", &attribute{
		ID: color.ID, StoreID: color.StoreID, Name: color.Name, Value: color.Value,
	})
}

// DeleteColor removes a color. Fails with storage.ErrReferenced while a
// product still uses it.
func (s *Store) DeleteColor(ctx context.Context, storeID, colorID string) (int64, error) {
	return s.deleteScoped(ctx, "colors", storeID, colorID)
}

// CreateSize inserts a size into size.StoreID.
func (s *Store) CreateSize(ctx context.Context, size *models.Size) error {
	a := &attribute{ID: size.ID, StoreID: size.StoreID, Name: size.Name, Value: size.Value}
	if err := s.createAttribute(ctx, "sizes", a); err != nil {
		return err
	}
	*size = sizeFrom(a)
	return nil
}

// GetSize retrieves a size by ID. Returns nil if it does not exist.
func (s *Store) GetSize(ctx context.Context, sizeID string) (*models.Size, error) {
	a, err := s.getAttribute(ctx, "sizes", sizeID)
	if err != nil || a == nil {
		return nil, err
	}
	sz := sizeFrom(a)
	return &sz, nil
}

// ListSizes returns the store's sizes, newest first.
func (s *Store) ListSizes(ctx context.Context, storeID string) ([]*models.Size, error) {
	attrs, err := s.listAttributes(ctx, "sizes", storeID)
	if err != nil {
		return nil, err
	}
	sizes := make([]*models.Size, len(attrs))
	for i, a := range attrs {
		sz := sizeFrom(a)
		sizes[i] = &sz
	}
	return sizes, nil
}

// UpdateSize sets name and value on the matching size.
func (s *Store) UpdateSize(ctx context.Context, size *models.Size) (int64, error) {
	return s.updateAttribute(ctx, "sizes", &attribute{
		ID: size.ID, StoreID: size.StoreID, Name: size.Name, Value: size.Value,
	})
}

// DeleteSize removes a size. Fails with storage.ErrReferenced while a product
// still uses it.
func (s *Store) DeleteSize(ctx context.Context, storeID, sizeID string) (int64, error) {
	return s.deleteScoped(ctx, "sizes", storeID, sizeID)
}

func colorFrom(a *attribute) models.Color {
	return models.Color{
		ID: a.ID, StoreID: a.StoreID, Name: a.Name, Value: a.Value,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func sizeFrom(a *attribute) models.Size {
	return models.Size{
		ID: a.ID, StoreID: a.StoreID, Name: a.Name, Value: a.Value,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}
