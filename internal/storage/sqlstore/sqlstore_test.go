package sqlstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "storeadmin-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := OpenSQLite(context.Background(), filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seed creates a store with one of each supporting row and a product.
func seed(t *testing.T, s *Store, owner string) (*models.Store, *models.Category, *models.Product) {
	t.Helper()
	ctx := context.Background()

	st := &models.Store{Name: "Main", UserID: owner}
	if err := s.CreateStore(ctx, st); err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}
	bb := &models.Billboard{StoreID: st.ID, Label: "Summer", ImageURL: "https://img/summer.png"}
	if err := s.CreateBillboard(ctx, bb); err != nil {
		t.Fatalf("CreateBillboard failed: %v", err)
	}
	cat := &models.Category{StoreID: st.ID, BillboardID: bb.ID, Name: "Shirts"}
	if err := s.CreateCategory(ctx, cat); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	color := &models.Color{StoreID: st.ID, Name: "Red", Value: "#FF0000"}
	if err := s.CreateColor(ctx, color); err != nil {
		t.Fatalf("CreateColor failed: %v", err)
	}
	size := &models.Size{StoreID: st.ID, Name: "Large", Value: "L"}
	if err := s.CreateSize(ctx, size); err != nil {
		t.Fatalf("CreateSize failed: %v", err)
	}
	p := &models.Product{
		StoreID:    st.ID,
		CategoryID: cat.ID,
		ColorID:    color.ID,
		SizeID:     size.ID,
		Name:       "Tee",
		Price:      decimal.RequireFromString("19.99"),
		Images:     []models.Image{{URL: "https://img/a.png"}, {URL: "https://img/b.png"}},
	}
	if err := s.CreateProduct(ctx, p); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	return st, cat, p
}

func TestSQLiteStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	st, cat, p := seed(t, s, "owner-1")

	t.Run("CreateStore sets ID and timestamps", func(t *testing.T) {
		if st.ID == "" {
			t.Error("Expected store ID to be generated")
		}
		if st.CreatedAt == 0 || st.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
	})

	t.Run("StoreByOwner checks the owner", func(t *testing.T) {
		got, err := s.StoreByOwner(ctx, st.ID, "owner-1")
		if err != nil {
			t.Fatalf("StoreByOwner failed: %v", err)
		}
		if got == nil || got.ID != st.ID {
			t.Fatalf("Expected store %s, got %+v", st.ID, got)
		}

		got, err = s.StoreByOwner(ctx, st.ID, "owner-2")
		if err != nil {
			t.Fatalf("StoreByOwner failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for non-owner, got %+v", got)
		}
	})

	t.Run("GetCategory loads billboard", func(t *testing.T) {
		got, err := s.GetCategory(ctx, cat.ID)
		if err != nil {
			t.Fatalf("GetCategory failed: %v", err)
		}
		if got.Billboard == nil || got.Billboard.Label != "Summer" {
			t.Errorf("Expected billboard Summer, got %+v", got.Billboard)
		}
	})

	t.Run("GetProduct keeps image order and exact price", func(t *testing.T) {
		got, err := s.GetProduct(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if !got.Price.Equal(decimal.RequireFromString("19.99")) {
			t.Errorf("Price = %s, want 19.99", got.Price)
		}
		if len(got.Images) != 2 || got.Images[0].URL != "https://img/a.png" || got.Images[1].URL != "https://img/b.png" {
			t.Errorf("Unexpected images: %+v", got.Images)
		}
		if got.Category == nil || got.Category.ID != cat.ID {
			t.Errorf("Expected category %s, got %+v", cat.ID, got.Category)
		}
	})

	t.Run("Get on missing id returns nil", func(t *testing.T) {
		got, err := s.GetProduct(ctx, "missing")
		if err != nil || got != nil {
			t.Errorf("Expected nil, nil; got %+v, %v", got, err)
		}
		bb, err := s.GetBillboard(ctx, "missing")
		if err != nil || bb != nil {
			t.Errorf("Expected nil, nil; got %+v, %v", bb, err)
		}
	})

	t.Run("Delete referenced category fails", func(t *testing.T) {
		n, err := s.DeleteCategory(ctx, st.ID, cat.ID)
		if !errors.Is(err, storage.ErrReferenced) {
			t.Fatalf("Expected ErrReferenced, got %v", err)
		}
		if n != 0 {
			t.Errorf("Expected count 0, got %d", n)
		}
	})

	t.Run("Update scoped to store", func(t *testing.T) {
		n, err := s.UpdateCategory(ctx, &models.Category{ID: cat.ID, StoreID: "other-store", Name: "X", BillboardID: cat.BillboardID})
		if !errors.Is(err, storage.ErrInvalidReference) {
			t.Fatalf("Expected ErrInvalidReference for billboard outside store, got n=%d err=%v", n, err)
		}

		n, err = s.UpdateCategory(ctx, &models.Category{ID: cat.ID, StoreID: st.ID, Name: "Tops", BillboardID: cat.BillboardID})
		if err != nil {
			t.Fatalf("UpdateCategory failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected count 1, got %d", n)
		}
	})
}

func TestSQLiteOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	st, _, p := seed(t, s, "owner-1")

	order := &models.Order{
		StoreID: st.ID,
		Items:   []models.OrderItem{{ProductID: p.ID}, {ProductID: p.ID}},
		IsPaid:  true,
		Phone:   "555-0100",
	}
	if err := s.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	t.Run("ListOrders loads items with products", func(t *testing.T) {
		orders, err := s.ListOrders(ctx, st.ID)
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if len(orders) != 1 || len(orders[0].Items) != 2 {
			t.Fatalf("Expected one order with two items, got %+v", orders)
		}
		if orders[0].Items[0].Product == nil || orders[0].Items[0].Product.Name != "Tee" {
			t.Errorf("Expected product Tee, got %+v", orders[0].Items[0].Product)
		}
	})

	t.Run("PaidLines and StockCount", func(t *testing.T) {
		lines, err := s.PaidLines(ctx, st.ID)
		if err != nil {
			t.Fatalf("PaidLines failed: %v", err)
		}
		if len(lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d", len(lines))
		}
		if lines[0].OrderID != order.ID {
			t.Errorf("OrderID = %s, want %s", lines[0].OrderID, order.ID)
		}
		if lines[0].CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		stock, err := s.StockCount(ctx, st.ID)
		if err != nil {
			t.Fatalf("StockCount failed: %v", err)
		}
		if stock != 1 {
			t.Errorf("StockCount = %d, want 1", stock)
		}
	})

	t.Run("product in use cannot be deleted", func(t *testing.T) {
		if _, err := s.DeleteProduct(ctx, st.ID, p.ID); !errors.Is(err, storage.ErrReferenced) {
			t.Errorf("Expected ErrReferenced, got %v", err)
		}
	})

	t.Run("UpdateOrder replaces items", func(t *testing.T) {
		order.Items = []models.OrderItem{{ProductID: p.ID}}
		order.IsPaid = false
		n, err := s.UpdateOrder(ctx, order)
		if err != nil {
			t.Fatalf("UpdateOrder failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected count 1, got %d", n)
		}

		got, err := s.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if len(got.Items) != 1 || got.IsPaid {
			t.Errorf("Unexpected order after update: %+v", got)
		}
	})

	t.Run("DeleteOrder cascades items", func(t *testing.T) {
		n, err := s.DeleteOrder(ctx, st.ID, order.ID)
		if err != nil || n != 1 {
			t.Fatalf("DeleteOrder = %d, %v", n, err)
		}
		n, err = s.DeleteProduct(ctx, st.ID, p.ID)
		if err != nil || n != 1 {
			t.Fatalf("DeleteProduct after order removal = %d, %v", n, err)
		}
	})
}

func TestSQLiteUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("owner@example.com", "Owner", "hash")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "owner@example.com")
	if err != nil || got == nil || got.ID != user.ID {
		t.Fatalf("GetUserByEmail = %+v, %v", got, err)
	}
	if got.PasswordHash != "hash" {
		t.Errorf("PasswordHash = %q, want hash", got.PasswordHash)
	}

	missing, err := s.GetUserByID(ctx, "missing")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil; got %+v, %v", missing, err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}
