package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/storeadmin/internal/models"
)

const billboardColumns = "id, store_id, label, image_url, created_at, updated_at"

func scanBillboard(row interface{ Scan(...any) error }) (*models.Billboard, error) {
	b := &models.Billboard{}
	if err := row.Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBillboard inserts a billboard into billboard.StoreID.
func (s *Store) CreateBillboard(ctx context.Context, b *models.Billboard) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	b.CreatedAt, b.UpdatedAt = now, now

	_, err := s.exec(ctx, s.db,
		"INSERT INTO billboards ("+billboardColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		b.ID, b.StoreID, b.Label, b.ImageURL, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert billboard: %w", err)
	}
	return nil
}

// GetBillboard retrieves a billboard by ID. Returns nil if it does not exist.
func (s *Store) GetBillboard(ctx context.Context, billboardID string) (*models.Billboard, error) {
	b, err := scanBillboard(s.queryRow(ctx, s.db,
		"SELECT "+billboardColumns+" FROM billboards WHERE id = ?", billboardID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get billboard: %w", err)
	}
	return b, nil
}

// ListBillboards returns the store's billboards, newest first.
func (s *Store) ListBillboards(ctx context.Context, storeID string) ([]*models.Billboard, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+billboardColumns+" FROM billboards WHERE store_id = ? ORDER BY created_at DESC, id ASC", storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billboards: %w", err)
	}
	defer rows.Close()

	billboards := []*models.Billboard{}
	for rows.Next() {
		b, err := scanBillboard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan billboard: %w", err)
		}
		billboards = append(billboards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate billboards: %w", err)
	}
	return billboards, nil
}

// UpdateBillboard sets label and image url on the matching billboard.
func (s *Store) UpdateBillboard(ctx context.Context, b *models.Billboard) (int64, error) {
	n, err := s.updateScoped(ctx, s.db,
		"UPDATE billboards SET label = ?, image_url = ?, updated_at = ? WHERE id = ? AND store_id = ?",
		b.Label, b.ImageURL, time.Now().Unix(), b.ID, b.StoreID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update billboard: %w", err)
	}
	return n, nil
}

// DeleteBillboard removes a billboard. Fails with storage.ErrReferenced while
// a category still uses it.
func (s *Store) DeleteBillboard(ctx context.Context, storeID, billboardID string) (int64, error) {
	return s.deleteScoped(ctx, "billboards", storeID, billboardID)
}
