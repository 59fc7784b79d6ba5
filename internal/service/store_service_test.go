package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/storeadmin/internal/models"
)

func TestStoreLifecycle(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.token("owner")

	store := srv.createStore("owner", "Main")
	assert.Equal(t, "owner", store.UserID)
	srv.createStore("someone-else", "Other")

	stores := decode[[]models.Store](t, srv.do(http.MethodGet, "/api/stores", owner, nil))
	require.Len(t, stores, 1)
	assert.Equal(t, store.ID, stores[0].ID)

	rec := srv.do(http.MethodGet, "/api/stores", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodPatch, "/api/stores/"+store.ID, srv.token("intruder"), map[string]any{"name": "Mine"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(http.MethodPatch, "/api/stores/"+store.ID, owner, map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[countResult](t, rec).Count)

	got := decode[*models.Store](t, srv.do(http.MethodGet, "/api/stores/"+store.ID, "", nil))
	require.NotNil(t, got)
	assert.Equal(t, "Renamed", got.Name)

	t.Run("store with resources cannot be deleted", func(t *testing.T) {
		sizeID := srv.post("owner", "/api/"+store.ID+"/sizes", map[string]any{"name": "Large", "value": "L"})

		rec := srv.do(http.MethodDelete, "/api/stores/"+store.ID, owner, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		rec = srv.do(http.MethodDelete, "/api/"+store.ID+"/sizes/"+sizeID, owner, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	rec = srv.do(http.MethodDelete, "/api/stores/"+store.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[countResult](t, rec).Count)
	assert.Equal(t, "null\n", srv.do(http.MethodGet, "/api/stores/"+store.ID, "", nil).Body.String())
}

func TestCreateStoreRequiresName(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/stores", srv.token("owner"), map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", rec.Body.String())
}
