package extract

import (
	"regexp"
	"time"

	"github.com/hqplabs/idcard-ocr/constants"
)

// Validation patterns for the fixed-length numeric fields. A value that fails
// its pattern is never stored; it is dropped or replaced by a regex-derived
// fallback.
var (
	reValidID     = regexp.MustCompile(`^\d{12}$`)
	reValidVID    = regexp.MustCompile(`^\d{16}$`)
	reValidPostal = regexp.MustCompile(`^\d{6}$`)
)

// ExtractedRecord is the canonical output of one extraction request. All
// fields except UserID are optional; an empty string means the field was not
// found by any strategy. Records are never mutated after the duplicate-gate
// decision.
type ExtractedRecord struct {
	Name        string           `json:"name,omitempty"`
	DateOfBirth string           `json:"date_of_birth,omitempty"`
	Gender      constants.Gender `json:"gender,omitempty"`
	IDNumber    string           `json:"id_number,omitempty"`
	VIDNumber   string           `json:"vid_number,omitempty"`
	Address     string           `json:"address,omitempty"`
	PostalCode  string           `json:"postal_code,omitempty"`
	UserID      string           `json:"user_id"`
	ExtractedAt time.Time        `json:"extracted_at"`
}

// ValidIDNumber reports whether s is exactly 12 ASCII digits.
func ValidIDNumber(s string) bool { return reValidID.MatchString(s) }

// ValidVIDNumber reports whether s is exactly 16 ASCII digits.
func ValidVIDNumber(s string) bool { return reValidVID.MatchString(s) }

// ValidPostalCode reports whether s is exactly 6 ASCII digits.
func ValidPostalCode(s string) bool { return reValidPostal.MatchString(s) }

// Equal compares two records field by field. Timestamps compare with
// time.Time.Equal so a JSON round trip through the snapshot store still
// matches the original.
func (r ExtractedRecord) Equal(o ExtractedRecord) bool {
	return r.Name == o.Name &&
		r.DateOfBirth == o.DateOfBirth &&
		r.Gender == o.Gender &&
		r.IDNumber == o.IDNumber &&
		r.VIDNumber == o.VIDNumber &&
		r.Address == o.Address &&
		r.PostalCode == o.PostalCode &&
		r.UserID == o.UserID &&
		r.ExtractedAt.Equal(o.ExtractedAt)
}
