package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/stubapp"
)

func newStubCmd() *cobra.Command {
	var (
		addr     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a local stand-in for the deployed app",
		Long: `Serve the app's HTTP contract locally so probe and smoke runs can be
exercised without a live deployment. Credentials are fixture values supplied
by flags; the signing secret comes from config or is generated per run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, _, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			secret := cfg.AuthSecret
			if secret == "" {
				buf := make([]byte, 32)
				if _, err := rand.Read(buf); err != nil {
					return err
				}
				secret = hex.EncodeToString(buf)
				cmd.Println("generated signing secret:", secret)
			}

			srv := stubapp.NewServer(logger, []byte(secret), email, password)
			logger.Info("stub_listen", zap.String("addr", addr))
			cmd.Println("stub app listening on", addr)
			return http.ListenAndServe(addr, srv.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3000", "Bind address")
	cmd.Flags().StringVar(&email, "email", "ops@example.com", "Fixture login email")
	cmd.Flags().StringVar(&password, "password", "fixture-password", "Fixture login password")
	return cmd
}
