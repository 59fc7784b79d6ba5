package service

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

type categoryRequest struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboardId"`
}

func (b *categoryRequest) Required() []Field {
	return []Field{
		{Label: "Name", Present: b.Name != ""},
		{Label: "Billboard id", Present: b.BillboardID != ""},
	}
}

// CategoryService serves /api/{storeId}/categories.
type CategoryService struct {
	store  storage.CategoryStore
	guard  *Guard
	logger *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(store storage.CategoryStore, guard *Guard, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: store, guard: guard, logger: logger}
}

// Register mounts the category routes on r.
func (s *CategoryService) Register(r *mux.Router) {
	r.HandleFunc("/api/{storeId}/categories", s.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/{storeId}/categories", s.List).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/categories/{categoryId}", s.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/categories/{categoryId}", s.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/{storeId}/categories/{categoryId}", s.Delete).Methods(http.MethodDelete)
}

func (s *CategoryService) List(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if !requireParams(w, Param{"Store id", storeID}) {
		return
	}

	categories, err := s.store.ListCategories(r.Context(), storeID)
	if err != nil {
		s.guard.Fail(w, "CATEGORIES_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *CategoryService) Get(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["categoryId"]
	if !requireParams(w, Param{"Category id", categoryID}) {
		return
	}

	category, err := s.store.GetCategory(r.Context(), categoryID)
	if err != nil {
		s.guard.Fail(w, "CATEGORY_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *CategoryService) Create(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	var req categoryRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "CATEGORIES_POST",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	category := &models.Category{StoreID: storeID, Name: req.Name, BillboardID: req.BillboardID}
	if err := s.store.CreateCategory(r.Context(), category); err != nil {
		s.guard.Fail(w, "CATEGORIES_POST", err)
		return
	}

	s.logger.Info("Category created", "category_id", category.ID, "store_id", storeID)
	writeJSON(w, http.StatusOK, category)
}

func (s *CategoryService) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, categoryID := vars["storeId"], vars["categoryId"]
	var req categoryRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "CATEGORY_PATCH",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}, {"Category id", categoryID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.UpdateCategory(r.Context(), &models.Category{
		ID:          categoryID,
		StoreID:     storeID,
		Name:        req.Name,
		BillboardID: req.BillboardID,
	})
	if err != nil {
		s.guard.Fail(w, "CATEGORY_PATCH", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}

func (s *CategoryService) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, categoryID := vars["storeId"], vars["categoryId"]
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "CATEGORY_DELETE",
		Params:  []Param{{"Store id", storeID}, {"Category id", categoryID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.DeleteCategory(r.Context(), storeID, categoryID)
	if err != nil {
		s.guard.Fail(w, "CATEGORY_DELETE", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}
