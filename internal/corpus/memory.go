package corpus

import (
	"context"
	"sync"

	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// MemoryCorpus is an in-memory Corpus for tests and the one-shot CLI.
type MemoryCorpus struct {
	mu      sync.Mutex
	DualKey bool
	records []extract.ExtractedRecord
}

func NewMemoryCorpus() *MemoryCorpus { return &MemoryCorpus{} }

func (m *MemoryCorpus) Find(_ context.Context, idNumber, vidNumber string) (*extract.ExtractedRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(idNumber, vidNumber)
}

func (m *MemoryCorpus) findLocked(idNumber, vidNumber string) (*extract.ExtractedRecord, bool, error) {
	for i := range m.records {
		rec := m.records[i]
		if idNumber != "" && rec.IDNumber == idNumber {
			return &rec, true, nil
		}
		if m.DualKey && vidNumber != "" && rec.VIDNumber == vidNumber {
			return &rec, true, nil
		}
	}
	return nil, false, nil
}

func (m *MemoryCorpus) AppendIfAbsent(_ context.Context, rec extract.ExtractedRecord) (*extract.ExtractedRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prior, found, err := m.findLocked(rec.IDNumber, rec.VIDNumber)
	if err != nil {
		return nil, false, err
	}
	if found {
		return prior, false, nil
	}
	m.records = append(m.records, rec)
	return nil, true, nil
}

func (m *MemoryCorpus) All(_ context.Context) ([]extract.ExtractedRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]extract.ExtractedRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryCorpus) MirrorAvailable() bool { return false }
