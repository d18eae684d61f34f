package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/export"
)

// Exports the stored corpus as an XLSX workbook for offline review.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	out := flag.String("out", "idcard_records.xlsx", "output workbook path")
	fromArg := flag.String("from", "", "inclusive lower bound, YYYY-MM-DD")
	toArg := flag.String("to", "", "inclusive upper bound, YYYY-MM-DD")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("dotenv load failed", "error", err)
	}
	cfg := common.LoadConfig()

	from, err := parseDate(*fromArg)
	if err != nil {
		logger.Error("invalid -from", "value", *fromArg, "error", err)
		os.Exit(2)
	}
	to, err := parseDate(*toArg)
	if err != nil {
		logger.Error("invalid -to", "value", *toArg, "error", err)
		os.Exit(2)
	}
	if to != nil {
		// Make the upper bound cover the whole day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := corpus.OpenStore(cfg.Storage, cfg.Redis, corpus.StoreConfig{}, logger)
	if err != nil {
		logger.Error("open corpus", "error", err)
		os.Exit(1)
	}

	raw, err := export.NewService(store, logger).ExportXLSX(ctx, from, to)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		logger.Error("write workbook", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *out, "bytes", len(raw))
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
