package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/storeadmin/internal/auth"
	"github.com/mmynk/storeadmin/internal/models"
	"github.com/mmynk/storeadmin/internal/storage/sqlstore"
)

// testServer is a full router backed by a fresh SQLite file.
type testServer struct {
	t       *testing.T
	store   *sqlstore.Store
	jwt     *auth.JWTManager
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlstore.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwt := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testServer{
		t:       t,
		store:   store,
		jwt:     jwt,
		handler: NewRouter(store, store, authenticator, jwt, logger, RouterOptions{Ping: store.Ping}),
	}
}

func (s *testServer) token(userID string) string {
	s.t.Helper()
	token, err := s.jwt.Generate(userID, userID+"@example.com")
	require.NoError(s.t, err)
	return token
}

// do sends a request. body may be nil, a raw string, or a value to
// marshal as JSON. token is sent as a bearer token when non-empty.
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// createStore creates a store owned by userID through the API.
func (s *testServer) createStore(userID, name string) *models.Store {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/stores", s.token(userID), map[string]any{"name": name})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[*models.Store](s.t, rec)
}

// post creates a resource under path as userID and returns its id.
func (s *testServer) post(userID, path string, body any) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, path, s.token(userID), body)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[struct {
		ID string `json:"id"`
	}](s.t, rec)
	require.NotEmpty(s.t, created.ID)
	return created.ID
}

// catalog is a product's worth of supporting rows in one store.
type catalog struct {
	StoreID     string
	BillboardID string
	CategoryID  string
	ColorID     string
	SizeID      string
}

func (s *testServer) seedCatalog(userID, storeName string) catalog {
	s.t.Helper()
	store := s.createStore(userID, storeName)
	c := catalog{StoreID: store.ID}
	base := "/api/" + store.ID
	c.BillboardID = s.post(userID, base+"/billboards", map[string]any{"label": "Summer", "imageUrl": "https://img/summer.png"})
	c.CategoryID = s.post(userID, base+"/categories", map[string]any{"name": "Shirts", "billboardId": c.BillboardID})
	c.ColorID = s.post(userID, base+"/colors", map[string]any{"name": "Red", "value": "#FF0000"})
	c.SizeID = s.post(userID, base+"/sizes", map[string]any{"name": "Large", "value": "L"})
	return c
}

func (c catalog) product(name string, price any) map[string]any {
	return map[string]any{
		"name":       name,
		"price":      price,
		"categoryId": c.CategoryID,
		"colorId":    c.ColorID,
		"sizeId":     c.SizeID,
		"images":     []map[string]string{{"url": "https://img/" + name + "-1.png"}, {"url": "https://img/" + name + "-2.png"}},
	}
}
