package service

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/calculator"
	"github.com/mmynk/storeadmin/internal/storage"
)

// DashboardService serves the store overview.
type DashboardService struct {
	store  storage.DashboardStore
	guard  *Guard
	logger *slog.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(store storage.DashboardStore, guard *Guard, logger *slog.Logger) *DashboardService {
	return &DashboardService{store: store, guard: guard, logger: logger}
}

// Register mounts the dashboard route on r.
func (s *DashboardService) Register(r *mux.Router) {
	r.HandleFunc("/api/{storeId}/dashboard", s.Get).Methods(http.MethodGet)
}

// Get returns revenue, sales and stock figures for a store owned by the
// caller.
func (s *DashboardService) Get(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "DASHBOARD_GET",
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	lines, err := s.store.PaidLines(r.Context(), storeID)
	if err != nil {
		s.guard.Fail(w, "DASHBOARD_GET", err)
		return
	}
	stock, err := s.store.StockCount(r.Context(), storeID)
	if err != nil {
		s.guard.Fail(w, "DASHBOARD_GET", err)
		return
	}

	writeJSON(w, http.StatusOK, calculator.Dashboard(lines, stock))
}
