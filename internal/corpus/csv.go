package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// csvHeader is the fixed column order of the flat-file sink. The file is a
// human-auditable export, not the membership source of truth; the snapshot
// store is.
var csvHeader = []string{
	"timestamp", "user_id", "name", "date_of_birth", "gender",
	"id_number", "vid_number", "address", "postal_code",
}

// CSVSink appends accepted records to a flat CSV file, writing the header
// only when it creates the file.
type CSVSink struct {
	path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes rec as one CSV row, creating the file with a header row when
// it does not exist yet.
func (c *CSVSink) Append(rec extract.ExtractedRecord) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create csv dir: %w", err)
		}
	}

	_, statErr := os.Stat(c.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	row := []string{
		rec.ExtractedAt.UTC().Format(time.RFC3339),
		rec.UserID,
		rec.Name,
		rec.DateOfBirth,
		string(rec.Gender),
		rec.IDNumber,
		rec.VIDNumber,
		rec.Address,
		rec.PostalCode,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
