package cmd

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/authdebug"
)

func newTokenCmd() *cobra.Command {
	var (
		sub     string
		ttl     time.Duration
		inspect string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint or inspect an access token for auth debugging",
		Long: `Mint an HS256 access token with the configured signing secret, or
inspect an existing one with --inspect. The secret comes from JWT_SECRET or
the config file; it is never baked in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, _, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.AuthSecret == "" {
				return errors.New("no signing secret configured; set JWT_SECRET")
			}
			secret := []byte(cfg.AuthSecret)

			if inspect != "" {
				claims, err := authdebug.ParseAndValidate(inspect, secret)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(claims)
			}

			token, err := authdebug.Mint(secret, sub, ttl)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub, "sub", "debug-user", "Token subject (user id)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	cmd.Flags().StringVar(&inspect, "inspect", "", "Validate and print the claims of an existing token")
	return cmd
}
