package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hqplabs/idcard-ocr/constants"
)

// maxAddressLines bounds block capture so noisy OCR cannot accumulate
// unrelated trailing text.
const maxAddressLines = 6

var reRelationPrefix = regexp.MustCompile(`(?i)\b[swcd]/[o0]\b\s*[:.\-]?`)

// ScanAddress locates the printed address. Block capture from a
// relation/locality anchor runs first, then label-span capture from the
// "address" label; back-side text is preferred because addresses
// conventionally appear on the reverse.
func ScanAddress(back, front []string) string {
	for _, lines := range [][]string{back, front} {
		if a := addressBlockCapture(lines); a != "" {
			return a
		}
	}
	for _, lines := range [][]string{back, front} {
		if a := addressLabelSpan(lines); a != "" {
			return a
		}
	}
	return ""
}

// addressBlockCapture accumulates lines from the first relation-prefix or
// locality-keyword anchor until a postal-code-shaped token appears
// (inclusive) or maxAddressLines is reached.
func addressBlockCapture(lines []string) string {
	start := -1
	for i, line := range lines {
		if reRelationPrefix.MatchString(line) || containsAnyFold(line, constants.LocalityKeywords) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	var captured []string
	for i := start; i < len(lines) && len(captured) < maxAddressLines; i++ {
		captured = append(captured, lines[i])
		if rePostal.MatchString(lines[i]) {
			break
		}
	}
	return cleanAddress(strings.Join(captured, " "))
}

// addressLabelSpan joins everything between the line after the "address"
// label and the line containing a postal code (inclusive).
func addressLabelSpan(lines []string) string {
	start := -1
	for i, line := range lines {
		if containsAnyFold(line, constants.AddressLabels) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	var captured []string
	for i := start + 1; i < len(lines) && len(captured) < maxAddressLines; i++ {
		captured = append(captured, lines[i])
		if rePostal.MatchString(lines[i]) {
			break
		}
	}
	return cleanAddress(strings.Join(captured, " "))
}

// cleanAddress strips relation prefixes, drops characters outside the safe
// punctuation set and collapses whitespace.
func cleanAddress(s string) string {
	s = reRelationPrefix.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		switch r {
		case ' ', ',', '.', '/', '-', '#':
			return r
		}
		return -1
	}, s)
	s = collapseSpaces(s)
	s = strings.Trim(s, " ,.-")
	return s
}
