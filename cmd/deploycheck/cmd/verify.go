package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/report"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dir]",
		Short: "Check a checkout for deployment readiness",
		Long: `Verify that a checkout has everything the hosting platform needs:
built server and client bundles, deploy configs, manifests, installed
dependencies, and a start command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			_, logger, rep, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			runner := &check.Runner{}
			summary := runner.Run(cmd.Context(), check.Readiness(dir))
			logger.Info("verify_done",
				zap.String("run_id", summary.RunID),
				zap.Bool("all_passed", summary.AllPassed),
				zap.Int("failures", len(summary.Failures())),
			)
			if err := rep.Print("Deployment readiness: "+dir, summary); err != nil {
				return err
			}
			if report.ExitCode(summary) != 0 {
				return errChecksFailed
			}
			return nil
		},
	}
}
