package service

import (
	"encoding/json"
	"io"
	"net/http"
)

// Plain-text error bodies returned to clients.
const (
	msgUnauthenticated = "Unauthenticated"
	msgUnauthorized    = "Unauthorized"
	msgInternal        = "Internal error"
	msgInvalidBody     = "Invalid JSON body"
	msgInvalidRef      = "Referenced resource does not exist in this store"
)

// countResult is the body returned by bulk update and delete.
type countResult struct {
	Count int64 `json:"count"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, msg)
}
