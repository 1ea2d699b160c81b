package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/teamtrack/internal/app"
	"github.com/riskibarqy/teamtrack/internal/config"
	"github.com/riskibarqy/teamtrack/internal/observability"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewForEnv(cfg.AppEnv, cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		logger.Error("start observability", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		if err := application.Hub.Start(ctx); err != nil {
			logger.Error("realtime hub stopped", "error", err)
			stop()
		}
	}()

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv, "memory_mode", cfg.MemoryMode())
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		exitCode = 1
	}
	select {
	case <-hubDone:
	case <-shutdownCtx.Done():
		logger.Warn("realtime hub did not stop before shutdown timeout")
	}
	application.Close()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown observability", "error", err)
	}

	logger.Info("http server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
