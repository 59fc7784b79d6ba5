package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

const storeColumns = "id, name, user_id, created_at, updated_at"

func scanStore(row interface{ Scan(...any) error }) (*models.Store, error) {
	st := &models.Store{}
	if err := row.Scan(&st.ID, &st.Name, &st.UserID, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	return st, nil
}

// CreateStore inserts a new store bound to store.UserID.
func (s *Store) CreateStore(ctx context.Context, st *models.Store) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	st.CreatedAt, st.UpdatedAt = now, now

	_, err := s.exec(ctx, s.db,
		"INSERT INTO stores ("+storeColumns+") VALUES (?, ?, ?, ?, ?)",
		st.ID, st.Name, st.UserID, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert store: %w", err)
	}
	return nil
}

// GetStore retrieves a store by ID. Returns nil if it does not exist.
func (s *Store) GetStore(ctx context.Context, storeID string) (*models.Store, error) {
	st, err := scanStore(s.queryRow(ctx, s.db,
		"SELECT "+storeColumns+" FROM stores WHERE id = ?", storeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return st, nil
}

// StoreByOwner retrieves the store only if userID owns it.
func (s *Store) StoreByOwner(ctx context.Context, storeID, userID string) (*models.Store, error) {
	st, err := scanStore(s.queryRow(ctx, s.db,
		"SELECT "+storeColumns+" FROM stores WHERE id = ? AND user_id = ?", storeID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store by owner: %w", err)
	}
	return st, nil
}

// ListStores returns every store owned by userID.
func (s *Store) ListStores(ctx context.Context, userID string) ([]*models.Store, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+storeColumns+" FROM stores WHERE user_id = ? ORDER BY created_at ASC, id ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := []*models.Store{}
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stores: %w", err)
	}
	return stores, nil
}

// UpdateStore renames a store owned by st.UserID.
func (s *Store) UpdateStore(ctx context.Context, st *models.Store) (int64, error) {
	n, err := s.updateScoped(ctx, s.db,
		"UPDATE stores SET name = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		st.Name, time.Now().Unix(), st.ID, st.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update store: %w", err)
	}
	return n, nil
}

// DeleteStore removes a store owned by userID.
func (s *Store) DeleteStore(ctx context.Context, storeID, userID string) (int64, error) {
	res, err := s.exec(ctx, s.db,
		"DELETE FROM stores WHERE id = ? AND user_id = ?", storeID, userID)
	if err != nil {
		if s.dialect.isForeignKeyViolation(err) {
			return 0, fmt.Errorf("failed to delete store: %w", storage.ErrReferenced)
		}
		return 0, fmt.Errorf("failed to delete store: %w", err)
	}
	return res.RowsAffected()
}
