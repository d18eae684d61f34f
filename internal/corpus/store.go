package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// Mirror is the key-value side channel the composite store writes through.
type Mirror interface {
	Available() bool
	Write(ctx context.Context, rec extract.ExtractedRecord) error
	Exists(ctx context.Context, id string) (bool, error)
}

// StoreConfig controls duplicate detection.
type StoreConfig struct {
	// DualKey also treats a vid collision as a duplicate, not only the id.
	DualKey bool
}

// Store is the composite corpus: the JSONL snapshot is the source of truth
// for membership, the CSV file and the key-value mirror are derived sinks
// written on every accepted record. A single mutex spans the membership check
// and the append, so two concurrent submissions of the same identifier
// cannot both be accepted.
type Store struct {
	mu       sync.Mutex
	snapshot *SnapshotStore
	csv      *CSVSink
	mirror   Mirror
	cfg      StoreConfig
	logger   *slog.Logger
}

func NewStore(snapshot *SnapshotStore, csv *CSVSink, mirror Mirror, cfg StoreConfig, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{snapshot: snapshot, csv: csv, mirror: mirror, cfg: cfg, logger: logger}
}

// Find scans the loaded snapshot for a colliding record.
func (s *Store) Find(ctx context.Context, idNumber, vidNumber string) (*extract.ExtractedRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(idNumber, vidNumber)
}

func (s *Store) findLocked(idNumber, vidNumber string) (*extract.ExtractedRecord, bool, error) {
	for i := range s.snapshot.Records() {
		rec := s.snapshot.Records()[i]
		if idNumber != "" && rec.IDNumber == idNumber {
			return &rec, true, nil
		}
		if s.cfg.DualKey && vidNumber != "" && rec.VIDNumber == vidNumber {
			return &rec, true, nil
		}
	}
	return nil, false, nil
}

// AppendIfAbsent runs the duplicate gate and the three-sink append under one
// lock. On a collision the prior record is returned and nothing is written.
// Snapshot and CSV failures abort the accept; a mirror failure is logged and
// swallowed because the mirror is best effort.
func (s *Store) AppendIfAbsent(ctx context.Context, rec extract.ExtractedRecord) (*extract.ExtractedRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prior, found, err := s.findLocked(rec.IDNumber, rec.VIDNumber)
	if err != nil {
		return nil, false, err
	}
	if found {
		return prior, false, nil
	}

	if err := s.snapshot.Append(rec); err != nil {
		return nil, false, fmt.Errorf("snapshot append: %w", err)
	}
	if err := s.csv.Append(rec); err != nil {
		// The snapshot already holds the record, so the accept stands; the
		// CSV row is recoverable from the snapshot.
		s.logger.Error("corpus.csv.append_failed", "id_number", rec.IDNumber, "error", err)
	}
	if s.mirror != nil && s.mirror.Available() {
		if err := s.mirror.Write(ctx, rec); err != nil {
			s.logger.Warn("corpus.mirror.write_failed", "id_number", rec.IDNumber, "error", err)
		}
	}
	return nil, true, nil
}

// All returns a copy of the stored records in append order.
func (s *Store) All(ctx context.Context) ([]extract.ExtractedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.snapshot.Records()
	out := make([]extract.ExtractedRecord, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *Store) MirrorAvailable() bool {
	return s.mirror != nil && s.mirror.Available()
}

// OpenStore wires the three sinks from configuration.
func OpenStore(storage common.StorageConfig, redisCfg common.RedisConfig, cfg StoreConfig, logger *slog.Logger) (*Store, error) {
	snapshot, err := OpenSnapshot(storage.SnapshotPath, logger)
	if err != nil {
		return nil, err
	}
	return NewStore(snapshot, NewCSVSink(storage.CSVPath), NewRedisMirror(redisCfg, logger), cfg, logger), nil
}
