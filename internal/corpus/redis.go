package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/extract"
)

const mirrorKeyPrefix = "aadhaar:"

// RedisMirror is the key-value view of the corpus: one hash per record at
// aadhaar:<id_number>, empty fields skipped. It is a best-effort secondary
// index; the snapshot store stays authoritative, so mirror failures degrade
// to available=false instead of failing the pipeline.
type RedisMirror struct {
	client    *redis.Client
	available bool
	logger    *slog.Logger
}

// NewRedisMirror dials the configured server and probes it with a ping. An
// empty Addr or a failed ping yields a mirror with Available()=false; every
// write then becomes a no-op.
func NewRedisMirror(cfg common.RedisConfig, logger *slog.Logger) *RedisMirror {
	if logger == nil {
		logger = slog.Default()
	}
	m := &RedisMirror{logger: logger}
	if cfg.Addr == "" {
		logger.Info("corpus.mirror.disabled", "reason", "no address configured")
		return m
	}

	m.client = redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout+time.Second)
	defer cancel()
	if err := m.client.Ping(ctx).Err(); err != nil {
		logger.Warn("corpus.mirror.unreachable", "addr", cfg.Addr, "error", err)
		return m
	}
	m.available = true
	logger.Info("corpus.mirror.connected", "addr", cfg.Addr, "db", cfg.DB)
	return m
}

// Available reports whether the mirror accepted the startup ping.
func (m *RedisMirror) Available() bool { return m.available }

// Write stores rec as a hash under aadhaar:<id>. Records without an id number
// have no key and are skipped. Empty optional fields are not written, so a
// reader can distinguish "absent" from "empty string".
func (m *RedisMirror) Write(ctx context.Context, rec extract.ExtractedRecord) error {
	if !m.available || rec.IDNumber == "" {
		return nil
	}

	fields := map[string]any{
		"user_id":      rec.UserID,
		"extracted_at": rec.ExtractedAt.UTC().Format(time.RFC3339),
	}
	if rec.Name != "" {
		fields["name"] = rec.Name
	}
	if rec.DateOfBirth != "" {
		fields["date_of_birth"] = rec.DateOfBirth
	}
	if rec.Gender != "" {
		fields["gender"] = string(rec.Gender)
	}
	if rec.VIDNumber != "" {
		fields["vid_number"] = rec.VIDNumber
	}
	if rec.Address != "" {
		fields["address"] = rec.Address
	}
	if rec.PostalCode != "" {
		fields["postal_code"] = rec.PostalCode
	}

	key := mirrorKeyPrefix + rec.IDNumber
	if err := m.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("mirror hset %s: %w", key, err)
	}
	return nil
}

// Exists reports whether the mirror already holds a hash for id.
func (m *RedisMirror) Exists(ctx context.Context, id string) (bool, error) {
	if !m.available || id == "" {
		return false, nil
	}
	n, err := m.client.Exists(ctx, mirrorKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("mirror exists: %w", err)
	}
	return n > 0, nil
}
