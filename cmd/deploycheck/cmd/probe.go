package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/probe"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/report"
)

func newProbeCmd() *cobra.Command {
	var (
		retries int
		backoff time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe [baseURL]",
		Short: "Verify a running instance over HTTP",
		Long: `Probe the health and root endpoints of a running instance. With no
argument the target is built from the configured host and port.`,
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

			targets := []struct {
				name string
				p    probe.Prober
			}{
				{"health endpoint", probe.Health(base, cfg.HTTPTimeout)},
				{"root endpoint", probe.Root(base, cfg.HTTPTimeout)},
			}
			var reg check.Registry
			for _, t := range targets {
				p := t.p
				if retries > 1 {
					p = &probe.Retry{Inner: p, Attempts: retries, Backoff: backoff}
				}
				reg = append(reg, probe.AsCheck(t.name, p,
					"Check the deployment logs; the server may still be starting"))
			}

			runner := &check.Runner{}
			summary := runner.RunConcurrent(cmd.Context(), reg)
			logger.Info("probe_done",
				zap.String("target", base),
				zap.Bool("all_passed", summary.AllPassed),
			)
			if err := rep.Print("Remote verification: "+base, summary); err != nil {
				return err
			}
			if report.ExitCode(summary) != 0 {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&retries, "retries", 1, "Attempts per probe")
	cmd.Flags().DurationVar(&backoff, "backoff", 2*time.Second, "Delay between attempts")
	return cmd
}
