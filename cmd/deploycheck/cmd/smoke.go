package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/report"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/smoke"
)

func newSmokeCmd() *cobra.Command {
	var (
		token    string
		coin     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "smoke [baseURL]",
		Short: "Run authenticated API smoke tests",
		Long: `Exercise the versioned API endpoints with bearer-token authorization.
A token comes from --token, SMOKE_TOKEN, or a login with --email/--password.
Failed calls print the raw server response for manual diagnosis.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, rep, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			base := cfg.Target()
			if len(args) == 1 {
				base = args[0]
			}
			if token == "" {
				token = cfg.BearerToken
			}

			client := smoke.NewClient(base, token, cfg.HTTPTimeout)
			if token == "" && email != "" {
				if err := client.Login(cmd.Context(), email, password); err != nil {
					return err
				}
				logger.Info("smoke_login_ok", zap.String("email", email))
			}

			runner := &check.Runner{}
			summary := runner.RunConcurrent(cmd.Context(), client.Checks(coin))
			logger.Info("smoke_done",
				zap.String("target", base),
				zap.Bool("all_passed", summary.AllPassed),
			)
			if err := rep.Print("API smoke tests: "+base, summary); err != nil {
				return err
			}
			if report.ExitCode(summary) != 0 {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer token for API calls")
	cmd.Flags().StringVar(&coin, "coin", "BTC", "Coin symbol for analysis endpoints")
	cmd.Flags().StringVar(&email, "email", "", "Login email (used when no token is given)")
	cmd.Flags().StringVar(&password, "password", "", "Login password")
	return cmd
}
