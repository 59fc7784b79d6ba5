package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/auth"
	"github.com/mmynk/storeadmin/internal/middleware"
	"github.com/mmynk/storeadmin/internal/storage"
)

// RouterOptions configures the optional parts of the HTTP surface.
type RouterOptions struct {
	// Limiter throttles requests per principal or client IP. Nil disables it.
	Limiter *middleware.RateLimiter

	// Metrics records request counts and latencies. Nil disables it.
	Metrics *middleware.Metrics

	// MetricsHandler is served at /metrics when non-nil.
	MetricsHandler http.Handler

	// Ping backs /health. Nil reports healthy unconditionally.
	Ping func(ctx context.Context) error
}

// NewRouter wires every service and the middleware chain onto a new router.
func NewRouter(store storage.Store, users auth.UserStorage, authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	// Middleware runs in order once a route matches.
	r.Use(middleware.RequestID, middleware.OptionalAuth(jwtManager), middleware.Logging)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	r.HandleFunc("/health", healthHandler(opts.Ping, logger)).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler).Methods(http.MethodGet)
	}

	guard := NewGuard(store, logger)

	// Literal segments register first so "/api/stores/..." and "/api/auth/..."
	// never match a store-scoped pattern.
	NewAuthService(authenticator, users, jwtManager, logger).Register(r)
	NewStoreService(store, guard, logger).Register(r)
	NewDashboardService(store, guard, logger).Register(r)
	NewBillboardService(store, guard, logger).Register(r)
	NewCategoryService(store, guard, logger).Register(r)
	NewSizeService(store, guard, logger).Register(r)
	NewColorService(store, guard, logger).Register(r)
	NewProductService(store, guard, logger).Register(r)
	NewOrderService(store, guard, logger).Register(r)

	return r
}

func healthHandler(ping func(ctx context.Context) error, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger.Error("Health check failed", "error", err)
				writeText(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		writeText(w, http.StatusOK, "ok")
	}
}
