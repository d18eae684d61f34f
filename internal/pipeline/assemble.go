package pipeline

import (
	"time"

	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// Assemble merges strategy output into an ExtractedRecord. Numeric fields
// that fail their fixed-length invariant are dropped here, so everything
// downstream of the assembler can trust the formats.
func Assemble(f extract.Fields, userID string, at time.Time) extract.ExtractedRecord {
	rec := extract.ExtractedRecord{
		Name:        f.Name,
		DateOfBirth: f.DateOfBirth,
		Gender:      f.Gender,
		IDNumber:    f.IDNumber,
		VIDNumber:   f.VIDNumber,
		Address:     f.Address,
		PostalCode:  f.PostalCode,
		UserID:      userID,
		ExtractedAt: at,
	}
	if !extract.ValidIDNumber(rec.IDNumber) {
		rec.IDNumber = ""
	}
	if !extract.ValidVIDNumber(rec.VIDNumber) {
		rec.VIDNumber = ""
	}
	if !extract.ValidPostalCode(rec.PostalCode) {
		rec.PostalCode = ""
	}
	return rec
}

// MissingEssentials lists the essential fields absent from rec. A record with
// no id_number or no name is not useful for identity matching.
func MissingEssentials(rec extract.ExtractedRecord) []string {
	var missing []string
	if rec.IDNumber == "" {
		missing = append(missing, "id_number")
	}
	if rec.Name == "" {
		missing = append(missing, "name")
	}
	return missing
}
