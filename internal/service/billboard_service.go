package service

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

type billboardRequest struct {
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

func (b *billboardRequest) Required() []Field {
	return []Field{
		{Label: "Label", Present: b.Label != ""},
		{Label: "Image url", Present: b.ImageURL != ""},
	}
}

// BillboardService serves /api/{storeId}/billboards.
type BillboardService struct {
	store  storage.BillboardStore
	guard  *Guard
	logger *slog.Logger
}

// NewBillboardService creates a BillboardService.
func NewBillboardService(store storage.BillboardStore, guard *Guard, logger *slog.Logger) *BillboardService {
	return &BillboardService{store: store, guard: guard, logger: logger}
}

// Register mounts the billboard routes on r.
func (s *BillboardService) Register(r *mux.Router) {
	r.HandleFunc("/api/{storeId}/billboards", s.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/{storeId}/billboards", s.List).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/billboards/{billboardId}", s.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/billboards/{billboardId}", s.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/{storeId}/billboards/{billboardId}", s.Delete).Methods(http.MethodDelete)
}

func (s *BillboardService) List(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if !requireParams(w, Param{"Store id", storeID}) {
		return
	}

	billboards, err := s.store.ListBillboards(r.Context(), storeID)
	if err != nil {
		s.guard.Fail(w, "BILLBOARDS_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, billboards)
}

func (s *BillboardService) Get(w http.ResponseWriter, r *http.Request) {
	billboardID := mux.Vars(r)["billboardId"]
	if !requireParams(w, Param{"Billboard id", billboardID}) {
		return
	}

	billboard, err := s.store.GetBillboard(r.Context(), billboardID)
	if err != nil {
		s.guard.Fail(w, "BILLBOARD_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, billboard)
}

func (s *BillboardService) Create(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	var req billboardRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "BILLBOARDS_POST",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	billboard := &models.Billboard{StoreID: storeID, Label: req.Label, ImageURL: req.ImageURL}
	if err := s.store.CreateBillboard(r.Context(), billboard); err != nil {
		s.guard.Fail(w, "BILLBOARDS_POST", err)
		return
	}

	s.logger.Info("Billboard created", "billboard_id", billboard.ID, "store_id", storeID)
	writeJSON(w, http.StatusOK, billboard)
}

func (s *BillboardService) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, billboardID := vars["storeId"], vars["billboardId"]
	var req billboardRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "BILLBOARD_PATCH",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}, {"Billboard id", billboardID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.UpdateBillboard(r.Context(), &models.Billboard{
		ID:       billboardID,
		StoreID:  storeID,
		Label:    req.Label,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		s.guard.Fail(w, "BILLBOARD_PATCH", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}

func (s *BillboardService) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, billboardID := vars["storeId"], vars["billboardId"]
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "BILLBOARD_DELETE",
		Params:  []Param{{"Store id", storeID}, {"Billboard id", billboardID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.DeleteBillboard(r.Context(), storeID, billboardID)
	if err != nil {
		s.guard.Fail(w, "BILLBOARD_DELETE", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}
