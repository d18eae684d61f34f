package extract

import (
	"regexp"
	"strings"

	"github.com/hqplabs/idcard-ocr/constants"
)

// The matchers below return the first match in document reading order (top
// line to bottom). That ordering is a contract: the id number is printed
// before the VID on the reverse side, and callers rely on it.
var (
	reIDNumber = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	reVIDGroup = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\b`)
	// Label-anchored VID: the literal "VID" followed by the 16-digit group.
	reVIDLabeled = regexp.MustCompile(`(?i)\bVID\s*[:.\-]?\s*(\d{4}\s?\d{4}\s?\d{4}\s?\d{4})\b`)
	rePostal     = regexp.MustCompile(`\b\d{6}\b`)
	reDate       = regexp.MustCompile(`\b\d{2}[/-]\d{2}[/-]\d{4}\b`)
)

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// MatchIDNumber returns the first 12-digit id number (4-4-4 groups, spaces
// optional) found in text, digits only, or "" when absent.
func MatchIDNumber(text string) string {
	m := reIDNumber.FindString(text)
	if m == "" {
		return ""
	}
	d := digitsOnly(m)
	if !ValidIDNumber(d) {
		return ""
	}
	return d
}

// CountIDMatches returns how many id-number-shaped groups appear in text.
// The orientation retry controller uses this as its quality score.
func CountIDMatches(text string) int {
	return len(reIDNumber.FindAllString(text, -1))
}

// MatchVIDNumber returns the 16-digit VID, digits only, or "" when absent.
// A group anchored by the literal "VID" label wins; otherwise the first
// standalone 4x4x4x4 group is used. idNumber is the already-matched 12-digit
// id: an unlabeled candidate that merely re-reads those digits (equal to or
// starting with the id) is rejected so a shared digit run is not counted
// twice.
func MatchVIDNumber(text, idNumber string) string {
	if m := reVIDLabeled.FindStringSubmatch(text); m != nil {
		if d := digitsOnly(m[1]); ValidVIDNumber(d) {
			return d
		}
	}
	for _, m := range reVIDGroup.FindAllString(text, -1) {
		d := digitsOnly(m)
		if !ValidVIDNumber(d) {
			continue
		}
		if idNumber != "" && (d == idNumber || strings.HasPrefix(d, idNumber)) {
			continue
		}
		return d
	}
	return ""
}

// MatchPostalCode returns the first standalone 6-digit group, preferring one
// that shares a line with an address or locality keyword. The bare fallback
// cannot distinguish a postal code from any other 6-digit number; that risk
// is accepted.
func MatchPostalCode(text string) string {
	lines := NormalizeLines(text)
	for _, line := range lines {
		if !containsAnyFold(line, constants.LocalityKeywords) && !containsAnyFold(line, constants.AddressLabels) {
			continue
		}
		if m := rePostal.FindString(line); m != "" && ValidPostalCode(m) {
			return m
		}
	}
	m := rePostal.FindString(text)
	if !ValidPostalCode(m) {
		return ""
	}
	return m
}

// MatchDate returns the first dd/mm/yyyy or dd-mm-yyyy token, preferring one
// on a line carrying a date-of-birth label in any supported script. The raw
// matched text is returned as-is; document date formats are too inconsistent
// to parse into a calendar date.
func MatchDate(text string) string {
	lines := NormalizeLines(text)
	for _, line := range lines {
		if !containsAnyFold(line, constants.DOBLabels) {
			continue
		}
		if m := reDate.FindString(line); m != "" {
			return m
		}
	}
	return reDate.FindString(text)
}
