// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/storeadmin/internal/calculator"
	"github.com/mmynk/storeadmin/internal/models"
)

var (
	// ErrReferenced is returned when a delete is rejected because other rows
	// still reference the target (a foreign key violation).
	ErrReferenced = errors.New("row is still referenced by dependents")

	// ErrInvalidReference is returned when a write points at a related row
	// that does not exist in the same store.
	ErrInvalidReference = errors.New("referenced row does not exist in this store")
)

// OwnershipChecker answers whether a store belongs to a principal.
type OwnershipChecker interface {
	// StoreByOwner returns the store with the given id owned by userID.
	// Returns nil and no error if there is no such store.
	StoreByOwner(ctx context.Context, storeID, userID string) (*models.Store, error)
}

// StoreStore persists stores.
type StoreStore interface {
	OwnershipChecker

	// CreateStore persists a new store. ID and timestamps are set by the store.
	CreateStore(ctx context.Context, store *models.Store) error

	// GetStore returns the store with the given id, or nil if absent.
	GetStore(ctx context.Context, storeID string) (*models.Store, error)

	// ListStores returns the stores owned by userID, oldest first.
	ListStores(ctx context.Context, userID string) ([]*models.Store, error)

	// UpdateStore renames the store, matching on both ID and UserID.
	// Returns the number of rows matched.
	UpdateStore(ctx context.Context, store *models.Store) (int64, error)

	// DeleteStore removes the store owned by userID. Returns ErrReferenced if
	// any resource still belongs to it.
	DeleteStore(ctx context.Context, storeID, userID string) (int64, error)
}

// BillboardStore persists billboards.
type BillboardStore interface {
	CreateBillboard(ctx context.Context, billboard *models.Billboard) error
	GetBillboard(ctx context.Context, billboardID string) (*models.Billboard, error)
	ListBillboards(ctx context.Context, storeID string) ([]*models.Billboard, error)
	UpdateBillboard(ctx context.Context, billboard *models.Billboard) (int64, error)
	DeleteBillboard(ctx context.Context, storeID, billboardID string) (int64, error)
}

// CategoryStore persists categories. Reads include the referenced billboard.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)
	ListCategories(ctx context.Context, storeID string) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (int64, error)
	DeleteCategory(ctx context.Context, storeID, categoryID string) (int64, error)
}

// ColorStore persists colors.
type ColorStore interface {
	CreateColor(ctx context.Context, color *models.Color) error
	GetColor(ctx context.Context, colorID string) (*models.Color, error)
	ListColors(ctx context.Context, storeID string) ([]*models.Color, error)
	UpdateColor(ctx context.Context, color *models.Color) (int64, error)
	DeleteColor(ctx context.Context, storeID, colorID string) (int64, error)
}

// SizeStore persists sizes.
type SizeStore interface {
	CreateSize(ctx context.Context, size *models.Size) error
	GetSize(ctx context.Context, sizeID string) (*models.Size, error)
	ListSizes(ctx context.Context, storeID string) ([]*models.Size, error)
	UpdateSize(ctx context.Context, size *models.Size) (int64, error)
	DeleteSize(ctx context.Context, storeID, sizeID string) (int64, error)
}

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	StoreID         string
	CategoryID      string
	ColorID         string
	SizeID          string
	FeaturedOnly    bool
	IncludeArchived bool
}

// ProductStore persists products with their images. Reads include images,
// category, color and size.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error)

	// UpdateProduct updates the product row and, if it matched, replaces its
	// images.
	UpdateProduct(ctx context.Context, product *models.Product) (int64, error)
	DeleteProduct(ctx context.Context, storeID, productID string) (int64, error)
}

// OrderStore persists orders with their items.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)

	// ListOrders returns the store's orders, newest first, with each item's
	// product loaded.
	ListOrders(ctx context.Context, storeID string) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) (int64, error)
	DeleteOrder(ctx context.Context, storeID, orderID string) (int64, error)
}

// DashboardStore provides the raw figures for a store overview.
type DashboardStore interface {
	// PaidLines returns one line per ordered product on the store's paid orders.
	PaidLines(ctx context.Context, storeID string) ([]calculator.PaidLine, error)

	// StockCount returns the number of non-archived products in the store.
	StockCount(ctx context.Context, storeID string) (int, error)
}

// Store defines the full storage surface used by the service layer.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	StoreStore
	BillboardStore
	CategoryStore
	ColorStore
	SizeStore
	ProductStore
	OrderStore
	DashboardStore

	// Close releases any resources held by the store.
	Close() error
}
