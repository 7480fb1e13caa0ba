package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			opts, err := cfg.AnalysisOptions()
			if err != nil {
				return err
			}
			srv, err := server.New(&cfg, analysis.NewAnalyzer(opts), a.version)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}

