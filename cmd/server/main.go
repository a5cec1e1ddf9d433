// Command server runs the interactive climate-norms query API. It loads CSV
// datasets on demand, caches the normalized records, and serves aggregated,
// color-mapped station summaries to the map front end.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/climate-norms/internal/adapter/http"
	"github.com/couchcryptid/climate-norms/internal/config"
	"github.com/couchcryptid/climate-norms/internal/observability"
	"github.com/couchcryptid/climate-norms/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := pipeline.NewLoader(cfg.DatasetCacheSize, logger, metrics)
	pipe := pipeline.New(logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, loader, pipe, cfg.DataDir, cfg.DataFile, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
