package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/storeadmin/internal/auth"
)

// TokenOptions holds flags for the token command.
type TokenOptions struct {
	*RootOptions
	UserID string
	Email  string
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a principal id",
		Long: `Print a signed bearer token for the given principal id, using
JWT_SECRET and TOKEN_TTL from the environment.

Example:
  JWT_SECRET=dev storeadmin token --user 3f1c...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}

			token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL).Generate(opts.UserID, opts.Email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "", "principal id (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email claim")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
