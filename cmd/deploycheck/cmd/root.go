// Package cmd wires the deploycheck subcommands: readiness verification,
// remote probing, API smoke tests, build supervision, and auth token
// debugging.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/config"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/logging"
	"github.com/minzf581/crypto-intel-engine-sub004/internal/report"
)

// errChecksFailed signals a clean "required checks failed" exit without a
// usage dump.
var errChecksFailed = errors.New("required checks failed")

var (
	flagConfig  string
	flagJSON    bool
	flagNoColor bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "deploycheck",
		Short:         "Deployment verification toolkit for the crypto-intel web app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newVerifyCmd(),
		newProbeCmd(),
		newSmokeCmd(),
		newBuildCmd(),
		newTokenCmd(),
		newStubCmd(),
	)
	return root
}

// setup loads config, logger, and reporter for a subcommand invocation.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, *report.Reporter, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	styles := report.DefaultStyles()
	if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		styles = report.PlainStyles()
	}
	rep := report.New(cmd.OutOrStdout(), styles, flagJSON)
	logger.Info("invocation", zap.String("command", cmd.Name()), zap.String("env", cfg.Env))
	return cfg, logger, rep, nil
}

// Execute runs the CLI and returns the process exit code. Unexpected panics
// are recovered and mapped to exit 1 with the raw message printed.
func Execute() (code int) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(os.Stderr, "unexpected error: %v\n", p)
			code = 1
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}
