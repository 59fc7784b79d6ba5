package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/storeadmin/internal/middleware"
	"github.com/mmynk/storeadmin/internal/models"
)

type fakeOwners struct {
	owned map[string]string // store id -> owner
	err   error
	calls int
}

func (f *fakeOwners) StoreByOwner(_ context.Context, storeID, userID string) (*models.Store, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.owned[storeID] != userID {
		return nil, nil
	}
	return &models.Store{ID: storeID, UserID: userID}, nil
}

func TestGuardOrder(t *testing.T) {
	owners := &fakeOwners{owned: map[string]string{"store-1": "owner"}}
	guard := NewGuard(owners, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name     string
		body     string
		userID   string
		storeID  string
		wantOK   bool
		wantCode int
		wantBody string
	}{
		{
			name:     "malformed body is rejected before auth",
			body:     "{",
			wantCode: http.StatusBadRequest,
			wantBody: msgInvalidBody,
		},
		{
			name:     "missing principal",
			body:     `{"label":"x","imageUrl":"y"}`,
			storeID:  "store-1",
			wantCode: http.StatusUnauthorized,
			wantBody: msgUnauthenticated,
		},
		{
			name:     "first missing field wins",
			body:     `{}`,
			userID:   "owner",
			storeID:  "store-1",
			wantCode: http.StatusBadRequest,
			wantBody: "Label is required",
		},
		{
			name:     "fields are checked before ownership",
			body:     `{"label":"x"}`,
			userID:   "intruder",
			storeID:  "store-1",
			wantCode: http.StatusBadRequest,
			wantBody: "Image url is required",
		},
		{
			name:     "missing path param",
			body:     `{"label":"x","imageUrl":"y"}`,
			userID:   "owner",
			wantCode: http.StatusBadRequest,
			wantBody: "Store id is required",
		},
		{
			name:     "non-owner is forbidden",
			body:     `{"label":"x","imageUrl":"y"}`,
			userID:   "intruder",
			storeID:  "store-1",
			wantCode: http.StatusForbidden,
			wantBody: msgUnauthorized,
		},
		{
			name:    "owner passes",
			body:    `{"label":"x","imageUrl":"y"}`,
			userID:  "owner",
			storeID: "store-1",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.userID != "" {
				req = req.WithContext(middleware.WithUser(req.Context(), tt.userID, ""))
			}
			rec := httptest.NewRecorder()

			var body billboardRequest
			userID, ok := guard.Run(rec, req, Check{
				Op:      "TEST",
				Body:    &body,
				Params:  []Param{{"Store id", tt.storeID}},
				StoreID: tt.storeID,
				Gate:    true,
			})

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.userID, userID)
				return
			}
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestGuardGateError(t *testing.T) {
	owners := &fakeOwners{err: errors.New("database is locked")}
	guard := NewGuard(owners, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), "owner", ""))
	rec := httptest.NewRecorder()

	_, ok := guard.Run(rec, req, Check{Op: "TEST", Params: []Param{{"Store id", "store-1"}}, StoreID: "store-1", Gate: true})

	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgInternal, rec.Body.String())
	assert.Equal(t, 1, owners.calls)
}

func TestGuardSkipsGateWhenUnset(t *testing.T) {
	owners := &fakeOwners{}
	guard := NewGuard(owners, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Main"}`))
	req = req.WithContext(middleware.WithUser(req.Context(), "owner", ""))
	rec := httptest.NewRecorder()

	var body storeRequest
	_, ok := guard.Run(rec, req, Check{Op: "TEST", Body: &body})

	assert.True(t, ok)
	assert.Equal(t, "Main", body.Name)
	assert.Zero(t, owners.calls)
}
