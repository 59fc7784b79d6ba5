package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/storeadmin/internal/middleware"
	"github.com/mmynk/storeadmin/internal/storage"
)

// Field is one required input. Fields are checked in the order declared.
type Field struct {
	Label   string
	Present bool
}

// Param is one required path parameter.
type Param struct {
	Label string
	Value string
}

// Body is a request payload that declares its required fields.
type Body interface {
	Required() []Field
}

// Check describes what a mutating handler needs before it touches data.
type Check struct {
	// Op tags log lines, e.g. "BILLBOARD_PATCH".
	Op string

	// Body is decoded from the request when non-nil.
	Body Body

	Params []Param

	// StoreID is checked against the Ownership Gate when Gate is set.
	StoreID string
	Gate    bool
}

// Gate answers whether a store belongs to a principal. A missing store is a
// plain false, not an error.
type Gate struct {
	owners storage.OwnershipChecker
}

// NewGate creates a Gate over the given checker.
func NewGate(owners storage.OwnershipChecker) Gate {
	return Gate{owners: owners}
}

// Allows reports whether userID owns storeID.
func (g Gate) Allows(ctx context.Context, storeID, userID string) (bool, error) {
	store, err := g.owners.StoreByOwner(ctx, storeID, userID)
	if err != nil {
		return false, err
	}
	return store != nil, nil
}

// Guard runs the request checks shared by every mutating handler in a fixed
// order: parse body, authenticate, required fields, path params, ownership.
type Guard struct {
	gate   Gate
	logger *slog.Logger
}

// NewGuard creates a Guard that consults owners for store ownership.
func NewGuard(owners storage.OwnershipChecker, logger *slog.Logger) *Guard {
	return &Guard{gate: NewGate(owners), logger: logger}
}

// Run applies c to the request. On failure it writes the response and
// returns ok=false; on success it returns the principal id.
func (g *Guard) Run(w http.ResponseWriter, r *http.Request, c Check) (userID string, ok bool) {
	if c.Body != nil && !decodeBody(w, r, c.Body) {
		return "", false
	}

	userID = middleware.GetUserID(r.Context())
	if userID == "" {
		writeText(w, http.StatusUnauthorized, msgUnauthenticated)
		return "", false
	}

	if c.Body != nil && !requireFields(w, c.Body) {
		return "", false
	}

	if !requireParams(w, c.Params...) {
		return "", false
	}

	if c.Gate {
		allowed, err := g.gate.Allows(r.Context(), c.StoreID, userID)
		if err != nil {
			g.Fail(w, c.Op, err)
			return "", false
		}
		if !allowed {
			g.logger.Warn("Store ownership check failed", "op", c.Op, "store_id", c.StoreID, "user_id", userID)
			writeText(w, http.StatusForbidden, msgUnauthorized)
			return "", false
		}
	}

	return userID, true
}

// Fail maps a data-layer error to a response. A delete blocked by
// dependents is answered exactly like any other internal failure.
func (g *Guard) Fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidReference):
		g.logger.Warn("["+op+"] invalid reference", "error", err)
		writeText(w, http.StatusBadRequest, msgInvalidRef)
	case errors.Is(err, storage.ErrReferenced):
		g.logger.Warn("["+op+"] blocked by dependents", "error", err)
		writeText(w, http.StatusInternalServerError, msgInternal)
	default:
		g.logger.Error("["+op+"] failed", "error", err)
		writeText(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeBody writes 400 if the request body is not valid JSON for b.
func decodeBody(w http.ResponseWriter, r *http.Request, b Body) bool {
	if err := json.NewDecoder(r.Body).Decode(b); err != nil {
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// requireFields writes 400 for the first missing field of b.
func requireFields(w http.ResponseWriter, b Body) bool {
	for _, f := range b.Required() {
		if !f.Present {
			writeText(w, http.StatusBadRequest, f.Label+" is required")
			return false
		}
	}
	return true
}

// requireParams writes 400 for the first empty parameter.
func requireParams(w http.ResponseWriter, params ...Param) bool {
	for _, p := range params {
		if p.Value == "" {
			writeText(w, http.StatusBadRequest, p.Label+" is required")
			return false
		}
	}
	return true
}
