package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/fantasy-stats/internal/app"
	"github.com/riskibarqy/fantasy-stats/internal/config"
	"github.com/riskibarqy/fantasy-stats/internal/observability"
	"github.com/riskibarqy/fantasy-stats/internal/platform/logging"
)

func main() {
	envFile, envLoaded := config.LoadDotEnv(".env", "../.env", "../../.env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.AppEnv, cfg.LogLevel).With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()
	if envLoaded {
		logger.Info("loaded env file", "path", envFile)
	}

	stopObservability, err := observability.Setup(cfg, logger)
	if err != nil {
		logger.Error("init observability", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := app.NewHTTPServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "data_source", cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	if err := stopObservability(shutdownCtx); err != nil {
		logger.Warn("observability shutdown failed", "error", err)
	}

	logger.Info("http server stopped")
}
