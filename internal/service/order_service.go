package service

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

type orderRequest struct {
	ProductIDs []string `json:"productIds"`
	IsPaid     bool     `json:"isPaid"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
}

func (b *orderRequest) Required() []Field {
	present := len(b.ProductIDs) > 0
	for _, id := range b.ProductIDs {
		if id == "" {
			present = false
		}
	}
	return []Field{{Label: "Products", Present: present}}
}

func (b *orderRequest) order(storeID, orderID string) *models.Order {
	items := make([]models.OrderItem, len(b.ProductIDs))
	for i, id := range b.ProductIDs {
		items[i] = models.OrderItem{ProductID: id}
	}
	return &models.Order{
		ID:      orderID,
		StoreID: storeID,
		Items:   items,
		IsPaid:  b.IsPaid,
		Phone:   b.Phone,
		Address: b.Address,
	}
}

// OrderService serves /api/{storeId}/orders.
type OrderService struct {
	store  storage.OrderStore
	guard  *Guard
	logger *slog.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(store storage.OrderStore, guard *Guard, logger *slog.Logger) *OrderService {
	return &OrderService{store: store, guard: guard, logger: logger}
}

// Register mounts the order routes on r.
func (s *OrderService) Register(r *mux.Router) {
	r.HandleFunc("/api/{storeId}/orders", s.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/{storeId}/orders", s.List).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/orders/{orderId}", s.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/{storeId}/orders/{orderId}", s.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/{storeId}/orders/{orderId}", s.Delete).Methods(http.MethodDelete)
}

func (s *OrderService) List(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if !requireParams(w, Param{"Store id", storeID}) {
		return
	}

	orders, err := s.store.ListOrders(r.Context(), storeID)
	if err != nil {
		s.guard.Fail(w, "ORDERS_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *OrderService) Get(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	if !requireParams(w, Param{"Order id", orderID}) {
		return
	}

	order, err := s.store.GetOrder(r.Context(), orderID)
	if err != nil {
		s.guard.Fail(w, "ORDER_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *OrderService) Create(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	var req orderRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "ORDERS_POST",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	order := req.order(storeID, "")
	if err := s.store.CreateOrder(r.Context(), order); err != nil {
		s.guard.Fail(w, "ORDERS_POST", err)
		return
	}

	s.logger.Info("Order created", "order_id", order.ID, "store_id", storeID, "items", len(order.Items))
	writeJSON(w, http.StatusOK, order)
}

// Update replaces payment state, contact details and the ordered products.
func (s *OrderService) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, orderID := vars["storeId"], vars["orderId"]
	var req orderRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "ORDER_PATCH",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}, {"Order id", orderID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.UpdateOrder(r.Context(), req.order(storeID, orderID))
	if err != nil {
		s.guard.Fail(w, "ORDER_PATCH", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}

func (s *OrderService) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, orderID := vars["storeId"], vars["orderId"]
	if _, ok := s.guard.Run(w, r, Check{
		Op:      "ORDER_DELETE",
		Params:  []Param{{"Store id", storeID}, {"Order id", orderID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.store.DeleteOrder(r.Context(), storeID, orderID)
	if err != nil {
		s.guard.Fail(w, "ORDER_DELETE", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}
