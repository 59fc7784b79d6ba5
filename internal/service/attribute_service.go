package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage"
)

type attributeRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (b *attributeRequest) Required() []Field {
	return []Field{
		{Label: "Name", Present: b.Name != ""},
		{Label: "Value", Present: b.Value != ""},
	}
}

// attributeOps binds a name/value resource to its storage calls.
type attributeOps struct {
	create func(ctx context.Context, storeID string, req attributeRequest) (any, error)
	get    func(ctx context.Context, id string) (any, error)
	list   func(ctx context.Context, storeID string) (any, error)
	update func(ctx context.Context, storeID, id string, req attributeRequest) (int64, error)
	delete func(ctx context.Context, storeID, id string) (int64, error)
}

// AttributeService serves a name/value product attribute (colors or sizes).
type AttributeService struct {
	path    string // collection segment, e.g. "colors"
	idVar   string // route variable, e.g. "colorId"
	idLabel string
	op      string // log tag prefix, e.g. "COLOR"
	ops     attributeOps
	guard   *Guard
	logger  *slog.Logger
}

// NewColorService serves /api/{storeId}/colors.
func NewColorService(store storage.ColorStore, guard *Guard, logger *slog.Logger) *AttributeService {
	return &AttributeService{
		path:    "colors",
		idVar:   "colorId",
		idLabel: "Color id",
		op:      "COLOR",
		guard:   guard,
		logger:  logger,
		ops: attributeOps{
			create: func(ctx context.Context, storeID string, req attributeRequest) (any, error) {
				c := &models.Color{StoreID: storeID, Name: req.Name, Value: req.Value}
				if err := store.CreateColor(ctx, c); err != nil {
					return nil, err
				}
				return c, nil
			},
			get: func(ctx context.Context, id string) (any, error) {
				return store.GetColor(ctx, id)
			},
			list: func(ctx context.Context, storeID string) (any, error) {
				return store.ListColors(ctx, storeID)
			},
			update: func(ctx context.Context, storeID, id string, req attributeRequest) (int64, error) {
				return store.UpdateColor(ctx, &models.Color{ID: id, StoreID: storeID, Name: req.Name, Value: req.Value})
			},
			delete: store.DeleteColor,
		},
	}
}

// NewSizeService serves /api/{storeId}/sizes.
func NewSizeService(store storage.SizeStore, guard *Guard, logger *slog.Logger) *AttributeService {
	return &AttributeService{
		path:    "sizes",
		idVar:   "sizeId",
		idLabel: "Size id",
		op:      "SIZE",
		guard:   guard,
		logger:  logger,
		ops: attributeOps{
			create: func(ctx context.Context, storeID string, req attributeRequest) (any, error) {
				sz := &models.Size{StoreID: storeID, Name: req.Name, Value: req.Value}
				if err := store.CreateSize(ctx, sz); err != nil {
					return nil, err
				}
				return sz, nil
			},
			get: func(ctx context.Context, id string) (any, error) {
				return store.GetSize(ctx, id)
			},
			list: func(ctx context.Context, storeID string) (any, error) {
				return store.ListSizes(ctx, storeID)
			},
			update: func(ctx context.Context, storeID, id string, req attributeRequest) (int64, error) {
				return store.UpdateSize(ctx, &models.Size{ID: id, StoreID: storeID, Name: req.Name, Value: req.Value})
			},
			delete: store.DeleteSize,
		},
	}
}

// Register mounts the attribute routes on r.
func (s *AttributeService) Register(r *mux.Router) {
	collection := "/api/{storeId}/" + s.path
	item := collection + "/{" + s.idVar + "}"
	r.HandleFunc(collection, s.Create).Methods(http.MethodPost)
	r.HandleFunc(collection, s.List).Methods(http.MethodGet)
	r.HandleFunc(item, s.Get).Methods(http.MethodGet)
	r.HandleFunc(item, s.Update).Methods(http.MethodPatch)
	r.HandleFunc(item, s.Delete).Methods(http.MethodDelete)
}

func (s *AttributeService) List(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if !requireParams(w, Param{"Store id", storeID}) {
		return
	}

	rows, err := s.ops.list(r.Context(), storeID)
	if err != nil {
		s.guard.Fail(w, s.op+"S_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *AttributeService) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[s.idVar]
	if !requireParams(w, Param{s.idLabel, id}) {
		return
	}

	row, err := s.ops.get(r.Context(), id)
	if err != nil {
		s.guard.Fail(w, s.op+"_GET", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *AttributeService) Create(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	var req attributeRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      s.op + "S_POST",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	row, err := s.ops.create(r.Context(), storeID, req)
	if err != nil {
		s.guard.Fail(w, s.op+"S_POST", err)
		return
	}

	s.logger.Info("Attribute created", "kind", s.path, "store_id", storeID)
	writeJSON(w, http.StatusOK, row)
}

func (s *AttributeService) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, id := vars["storeId"], vars[s.idVar]
	var req attributeRequest
	if _, ok := s.guard.Run(w, r, Check{
		Op:      s.op + "_PATCH",
		Body:    &req,
		Params:  []Param{{"Store id", storeID}, {s.idLabel, id}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.ops.update(r.Context(), storeID, id, req)
	if err != nil {
		s.guard.Fail(w, s.op+"_PATCH", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}

func (s *AttributeService) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, id := vars["storeId"], vars[s.idVar]
	if _, ok := s.guard.Run(w, r, Check{
		Op:      s.op + "_DELETE",
		Params:  []Param{{"Store id", storeID}, {s.idLabel, id}},
		StoreID: storeID,
		Gate:    true,
	}); !ok {
		return
	}

	n, err := s.ops.delete(r.Context(), storeID, id)
	if err != nil {
		s.guard.Fail(w, s.op+"_DELETE", err)
		return
	}
	writeJSON(w, http.StatusOK, countResult{Count: n})
}
