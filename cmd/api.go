package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/adapter/inbound/api"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common/slogger"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server exposing sync, migration and direct ADAMO
write endpoints. The server runs until interrupted, then drains in-flight
requests before exiting.`,
	RunE: runAPI,
}

func runAPI(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svcs := buildServices(ctx, cfg)
	errorHandler := api.NewErrorHandler()

	router := api.NewRouter(
		api.NewHealthHandler(cfg, Version),
		api.NewSyncHandler(svcs.Sync, errorHandler),
		api.NewMigrationHandler(svcs.Migration, errorHandler),
		api.NewAdamoHandler(svcs.Session, errorHandler),
	)

	server := api.NewServer(cfg.API, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.ErrorWithError(shutdownCtx, err, "Graceful shutdown failed", nil)
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(apiCmd)
}
