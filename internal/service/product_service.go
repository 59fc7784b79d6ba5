package service

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

type imageInput struct {
	URL string `json:"url"`
}

type productRequest struct {
	Name       string              `json:"name"`
	Images     []imageInput        `json:"images"`
	Price      decimal.NullDecimal `json:"price"`
	CategoryID string              `json:"categoryId"`
	ColorID    string              `json:"colorId"`
	SizeID     string              `json:"sizeId"`
	IsFeatured bool                `json:"isFeatured"`
	IsArchived bool                `json:"isArchived"`
}

func (b *productRequest) Required() []Field {
	return []Field{
		{Label: "Name", Present: b.Name != ""},
		{Label: "Images", Present: hasImages(b.Images)},
		{Label: "Price", Present: b.Price.Valid && !b.Price.Decimal.IsZero()},
		{Label: "Category id", Present: b.CategoryID != ""},
		{Label: "Color id", Present: b.ColorID != ""},
		{Label: "Size id", Present: b.SizeID != ""},
	}
}

func hasImages(images []imageInput) bool {
	if len(images) == 0 {
		return false
	}
	for _, img := range images {
		if img.URL == "" {
			return false
		}
	}
	return true
}

func (b *productRequest) product(storeID, productID string) *models.Product {
	images := make([]models.Image, len(b.Images))
	for i, img := range b.Images {
		images[i] = models.Image{URL: img.URL}
	}
	return &models.Product{
		ID:         productID,
		StoreID:    storeID,
		CategoryID: b.CategoryID,
		ColorID:    b.ColorID,
		SizeID:     b.SizeID,
		Name:       b.Name,
		Price:      b.Price.Decimal,
		IsFeatured: b.IsFeatured,
		IsArchived: b.IsArchived,
		Images:     images,
	}
}

// ProductService serves /api/{storeId}/products.
type ProductService struct {
	store  storage.ProductStore
	guard  *Guard
	logger *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(store storage.ProductStore, guard *Guard, logger *slog.Logger) *ProductService {
	return &ProductService{store: store, guard: guard, logger: logger}
}

// Register mounts the product routes on r.
func (s *ProductService) Register(r *mux.Router) {
	r.HandleFunc("/api/{storeId}/products", s.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/{storeId}/products", s.List).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/products/{productId}", s.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/products/{productId}", s.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/{storeId}/products/{productId}", s.Delete).Methods(http.MethodDelete)
}

// List returns the store's products. Archived products are left out unless
// includeArchived=true. categoryId, colorId, sizeId and isFeatured=true
// narrow the listing further.
func (s *ProductService) List(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if !requireParams(w, Param{"Store id", storeID}) {
		return
	}

	q := r.URL.Query()
	products, err := s.store.ListProducts(r.Context(), storage.ProductFilter{
		StoreID:         storeID,
		CategoryID:      q.Get("categoryId"),
		ColorID:         q.Get("colorId"),
		SizeID:          q.Get("sizeId"),
		FeaturedOnly:    q.Get("isFeatured") == "true",
		IncludeArchived: q.Get("includeArchived") == "true",
	})
	if err != nil {
		s.guard.Fail(w, "PRODUCTS_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *ProductService) Get(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productId"]
	if !requireParams(w, Param{"Product id", productID}) {
		return
	}

	product, err := s.store.GetProduct(r.Context(), productID)
	if err != nil {
		s.guard.Fail(w, "PRODUCT_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *ProductService) Create(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	var req productRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "PRODUCTS_POST",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	product := req.product(storeID, "")
	if err := s.store.CreateProduct(r.Context(), product); err != nil {
		s.guard.Fail(w, "PRODUCTS_POST", err)
		return
	}

	s.logger.Info("Product created", "product_id", product.ID, "store_id", storeID, "images", len(product.Images))
	writeJSON(w, http.StatusOK, product)
}

// Update rewrites the product and replaces its image gallery.
func (s *ProductService) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, productID := vars["storeId"], vars["productId"]
	var req productRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "PRODUCT_PATCH",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}, {"Product id", productID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.UpdateProduct(r.Context(), req.product(storeID, productID))
	if err != nil {
		s.guard.Fail(w, "PRODUCT_PATCH", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}

func (s *ProductService) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, productID := vars["storeId"], vars["productId"]
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "PRODUCT_DELETE",
		Params:  []Param{{"Store id", storeID}, {"Product id", productID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.DeleteProduct(r.Context(), storeID, productID)
	if err != nil {
		s.guard.Fail(w, "PRODUCT_DELETE", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}
