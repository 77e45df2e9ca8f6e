package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/build"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [dir]",
		Short: "Run the build pipeline and verify the artifacts",
		Long: `Run the platform build pipeline against a checkout: clean, install,
build, then verify the produced artifacts. Steps run strictly in order and
the pipeline stops at the first failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			cfg, logger, rep, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			verify := func(ctx context.Context) error {
				runner := &check.Runner{}
				summary := runner.Run(ctx, check.Readiness(dir))
				if summary.AllPassed {
					return nil
				}
				var names []string
				for _, f := range summary.Failures() {
					names = append(names, f.Name)
				}
				return fmt.Errorf("readiness checks failed: %s", strings.Join(names, ", "))
			}

			pipeline := build.NewPipeline(logger, build.Railway(dir, cfg.BuildTimeout, verify))
			results, ok := pipeline.Run(cmd.Context())
			logger.Info("build_done", zap.Bool("ok", ok))
			if err := rep.PrintPipeline("Build pipeline: "+dir, results, ok); err != nil {
				return err
			}
			if !ok {
				return errChecksFailed
			}
			return nil
		},
	}
}
