package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/pipeline"
)

// One-shot extraction for a local image pair. Results print as JSON; nothing
// is persisted unless -save is passed.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	front := flag.String("front", "", "front image path or URL (required)")
	back := flag.String("back", "", "back image path or URL")
	userID := flag.String("user", "cli", "user id attached to the record")
	save := flag.Bool("save", false, "persist the result to the configured corpus")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	if *front == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("dotenv load failed", "error", err)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var store corpus.Corpus = corpus.NewMemoryCorpus()
	if *save {
		s, err := corpus.OpenStore(cfg.Storage, cfg.Redis, corpus.StoreConfig{
			DualKey: cfg.Extract.DualKeyDuplicate,
		}, logger)
		if err != nil {
			logger.Error("open corpus", "error", err)
			os.Exit(1)
		}
		store = s
	}

	proc, err := pipeline.FromConfig(cfg, store, nil, logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	rec, rej, err := proc.Extract(ctx, *front, *back, *userID)
	if err != nil {
		logger.Error("extraction failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if rej != nil {
		_ = enc.Encode(rej)
		os.Exit(3)
	}
	_ = enc.Encode(rec)
}
