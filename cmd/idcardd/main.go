package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/metrics"
	"github.com/hqplabs/idcard-ocr/internal/pipeline"
	"github.com/hqplabs/idcard-ocr/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("dotenv load failed", "error", err)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := corpus.OpenStore(cfg.Storage, cfg.Redis, corpus.StoreConfig{
		DualKey: cfg.Extract.DualKeyDuplicate,
	}, logger)
	if err != nil {
		logger.Error("open corpus", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	proc, err := pipeline.FromConfig(cfg, store, m, logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg.Server, proc, store, m, logger)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
