package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/storeadmin/internal/storage/sqlstore"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		Long: `Create any missing tables and indexes. Safe to run repeatedly.

Example:
  storeadmin migrate --database-url ./data/storeadmin.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogging(cfg)

			store, err := sqlstore.Open(cmd.Context(), cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Info("Schema applied", "driver", cfg.DBDriver)
			return nil
		},
	}
}
