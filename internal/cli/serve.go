package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/storeadmin/internal/auth"
	"github.com/mmynk/storeadmin/internal/config"
	"github.com/mmynk/storeadmin/internal/middleware"
	"github.com/mmynk/storeadmin/internal/service"
	"github.com/mmynk/storeadmin/internal/storage/sqlstore"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the store admin HTTP API.

The database is migrated on startup. The server stops gracefully on
SIGINT or SIGTERM.

Example:
  JWT_SECRET=dev storeadmin serve
  JWT_SECRET=dev storeadmin serve --port 9000 --db-driver postgres \
      --database-url "postgres://localhost/storeadmin?sslmode=disable"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if opts.Port != 0 {
				cfg.Port = opts.Port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "listen port; overrides PORT")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := setupLogging(cfg)

	store, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", cfg.DBDriver)

	handler := newHandler(cfg, store, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newHandler builds the full HTTP handler: CORS outside the router, the
// rest of the middleware chain inside it.
func newHandler(cfg *config.Config, store *sqlstore.Store, logger *slog.Logger) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := service.RouterOptions{
		Metrics:        middleware.NewMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Ping:           store.Ping,
	}
	if cfg.RateLimitRPS > 0 {
		opts.Limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := service.NewRouter(store, store, authenticator, jwtManager, logger, opts)
	return middleware.CORS(cfg.CORSOrigin)(router)
}
