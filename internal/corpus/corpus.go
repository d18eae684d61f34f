package corpus

import (
	"context"

	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// Corpus is the append-only history of accepted records, keyed by id number.
// The extraction engine only reads it to test membership; every mutation goes
// through AppendIfAbsent so the duplicate check and the append are one
// critical section. Two concurrent requests for the same identifier must not
// both pass the gate.
type Corpus interface {
	// Find returns the stored record colliding with the given identifiers,
	// if any. A vid collision only counts when dual-key checking is enabled
	// on the implementation.
	Find(ctx context.Context, idNumber, vidNumber string) (*extract.ExtractedRecord, bool, error)

	// AppendIfAbsent appends rec to every sink unless an identifier
	// collision exists. It returns the conflicting prior record when the
	// append was refused.
	AppendIfAbsent(ctx context.Context, rec extract.ExtractedRecord) (prior *extract.ExtractedRecord, appended bool, err error)

	// All returns every stored record in append order.
	All(ctx context.Context) ([]extract.ExtractedRecord, error)

	// MirrorAvailable reports whether the key-value mirror is reachable.
	// The mirror is a best-effort side channel; false never blocks accepts.
	MirrorAvailable() bool
}
