package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dataqa-labs/tablecheck/internal/config"
	"github.com/dataqa-labs/tablecheck/internal/quality"
	"github.com/dataqa-labs/tablecheck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dataset quality HTTP service",
	Long: `Run the HTTP service exposing the quality engine:

  GET  /health                  service probe
  POST /quality                 evaluate caller-supplied aggregates
  POST /quality-from-csv        evaluate an uploaded CSV file
  POST /quality-flags-from-csv  flags only, from an uploaded CSV file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		srv := server.New(server.Config{
			Addr:           cfg.Server.Addr,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
			Engine:         quality.NewEngine(cfg.Thresholds),
			Logger:         logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080",
		"Address to listen on")
	serveCmd.Flags().Int64("max-upload-bytes", 32<<20,
		"Maximum accepted CSV upload size")
}
