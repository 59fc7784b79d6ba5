// Package cli implements the storeadmin command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/storeadmin/internal/config"
	"github.com/mmynk/storeadmin/pkg/logging"
)

// RootOptions holds global flags for all commands. Empty values fall back
// to the environment.
type RootOptions struct {
	LogLevel    string
	LogFormat   string
	DBDriver    string
	DatabaseURL string
}

// ValidFormats defines the allowed log formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the storeadmin CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storeadmin",
		Short: "Multi-tenant store admin API",
		Long:  "Admin backend for managing stores, billboards, categories, product attributes, products and orders.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogFormat != "" && !isValidFormat(opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error); overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json); overrides LOG_FORMAT")
	cmd.PersistentFlags().StringVar(&opts.DBDriver, "db-driver", "", "database driver (sqlite|postgres); overrides DB_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "sqlite path or postgres DSN; overrides DATABASE_URL")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if o.DBDriver != "" {
		cfg.DBDriver = o.DBDriver
	}
	if o.DatabaseURL != "" {
		cfg.DatabaseURL = o.DatabaseURL
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) *slog.Logger {
	return logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
