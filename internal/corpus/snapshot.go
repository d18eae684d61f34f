package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// SnapshotStore is the serialized-object-list sink: one JSON document per
// line, append-only. The whole file is loaded into memory at open so
// membership checks never reread disk. The in-memory slice and the file are
// kept in lockstep by Append; callers serialize access through Store.
type SnapshotStore struct {
	path    string
	records []extract.ExtractedRecord
	logger  *slog.Logger
}

// OpenSnapshot loads the JSONL file at path, creating parent directories if
// needed. A missing file is an empty corpus, not an error.
func OpenSnapshot(path string, logger *slog.Logger) (*SnapshotStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	s := &SnapshotStore{path: path, logger: logger}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	if err := s.load(f); err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	logger.Info("corpus.snapshot.loaded", "path", path, "records", len(s.records))
	return s, nil
}

func (s *SnapshotStore) load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec extract.ExtractedRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		s.records = append(s.records, rec)
	}
	return sc.Err()
}

// Append writes rec to the file and, on success, to the in-memory list.
func (s *SnapshotStore) Append(rec extract.ExtractedRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open snapshot for append: %w", err)
	}
	if _, err := f.Write(append(raw, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("append snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	s.records = append(s.records, rec)
	return nil
}

// Records returns the loaded records in append order. The caller must not
// mutate the returned slice.
func (s *SnapshotStore) Records() []extract.ExtractedRecord {
	return s.records
}
