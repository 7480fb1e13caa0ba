// Package cli implements the csvinsight command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/csv-insight/backend/internal/config"
	"github.com/csv-insight/backend/internal/logging"
)

// app carries state shared by every subcommand.
type app struct {
	version  string
	cfgFile  string
	logLevel string
	cfg      *config.AppConfig
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "csvinsight",
		Short: "Classify and summarize loosely structured CSV exports",
		Long: `csvinsight detects the dialect of a text export (financial price history,
monthly budget sheet, sales report or plain table), extracts a dataset from it
and prints per-column statistics with a short preview.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (defaults and CSVINSIGHT_* env when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newAnalyzeCmd(a),
		newClassifyCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) loadConfig(logOut io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Advanced.LogLevel = a.logLevel
	}
	// Logs go to stderr so command output can be piped
	logging.InitWriter(logOut, cfg.Advanced.LogLevel, cfg.Advanced.LogFormat)
	a.cfg = cfg
	return nil
}
