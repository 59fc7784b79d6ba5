package service

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/middleware"
	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

type storeRequest struct {
	Name string `json:"name"`
}

func (b *storeRequest) Required() []Field {
	return []Field{{Label: "Name", Present: strings.TrimSpace(b.Name) != ""}}
}

// StoreService serves /api/stores.
type StoreService struct {
	store  storage.StoreStore
	guard  *Guard
	logger *slog.Logger
}

// NewStoreService creates a StoreService.
func NewStoreService(store storage.StoreStore, guard *Guard, logger *slog.Logger) *StoreService {
	return &StoreService{store: store, guard: guard, logger: logger}
}

// Register mounts the store routes on r.
func (s *StoreService) Register(r *mux.Router) {
	r.HandleFunc("/api/stores", s.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/stores", s.List).Methods(http.MethodGet)
	r.HandleFunc("/api/stores/{storeId}", s.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/stores/{storeId}", s.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/stores/{storeId}", s.Delete).Methods(http.MethodDelete)
}

// Create binds a new store to the caller.
func (s *StoreService) Create(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	userID, ok := s.guard.Run(w, r, Check{Op: "STORES_POST", Body: &req})
	if !ok {
		return
	}

	store := &models.Store{Name: strings.TrimSpace(req.Name), UserID: userID}
	if err := s.store.CreateStore(r.Context(), store); err != nil {
		s.guard.Fail(w, "STORES_POST", err)
		return
	}

	s.logger.Info("Store created", "store_id", store.ID, "user_id", userID)
	writeJSON(w, http.StatusOK, store)
}

// List returns the caller's stores.
func (s *StoreService) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeText(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	stores, err := s.store.ListStores(r.Context(), userID)
	if err != nil {
		s.guard.Fail(w, "STORES_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

// Get returns one store, or null.
func (s *StoreService) Get(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if !requireParams(w, Param{"Store id", storeID}) {
		return
	}

	store, err := s.store.GetStore(r.Context(), storeID)
	if err != nil {
		s.guard.Fail(w, "STORE_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

// Update renames a store owned by the caller.
func (s *StoreService) Update(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	var req storeRequest
	userID, ok := s.guard.Run(w, r, Check{
		Op:      "STORE_PATCH",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	})
	if !ok {
		return
	}

	n, err := s.store.UpdateStore(r.Context(), &models.Store{
		ID:     storeID,
		Name:   strings.TrimSpace(req.Name),
		UserID: userID,
	})
	if err != nil {
		s.guard.Fail(w, "STORE_PATCH", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}

// Delete removes a store owned by the caller. It fails while any resource
// still belongs to the store.
func (s *StoreService) Delete(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	userID, ok := s.guard.Run(w, r, Check{
		Op:      "STORE_DELETE",
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	})
	if !ok {
		return
	}

	n, err := s.store.DeleteStore(r.Context(), storeID, userID)
	if err != nil {
		s.guard.Fail(w, "STORE_DELETE", err)
		return
	}

	s.logger.Info("Store deleted", "store_id", storeID, "count", n)
	writeJSON(w, http.StatusOK, countResult{Count: n})
}
