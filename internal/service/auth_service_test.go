package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/storeadmin/internal/models"
)

type session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "Owner@Example.com",
		"displayName": "Owner",
		"password":    "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	registered := decode[session](t, rec)
	assert.Equal(t, "owner@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.Token)
	assert.NotContains(t, rec.Body.String(), "password")

	t.Run("me", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/api/auth/me", registered.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decode[models.User](t, rec)
		assert.Equal(t, registered.User.ID, me.ID)
		assert.Equal(t, "Owner", me.DisplayName)

		rec = srv.do(http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = srv.do(http.MethodGet, "/api/auth/me", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "owner@example.com", "password": "correct-horse"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, registered.User.ID, decode[session](t, rec).User.ID)

		rec = srv.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "owner@example.com", "password": "wrong-horse"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = srv.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "whatever1"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/auth/register", "", map[string]any{
			"email": "owner@example.com", "displayName": "Again", "password": "another-pass",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("weak password", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/auth/register", "", map[string]any{
			"email": "new@example.com", "displayName": "New", "password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "new@example.com", "password": "long-enough"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Display name is required", rec.Body.String())
	})

	t.Run("registered user owns stores", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/stores", registered.Token, map[string]any{"name": "Main"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, registered.User.ID, decode[models.Store](t, rec).UserID)
	})
}
