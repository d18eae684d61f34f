package extract

import "strings"

// NormalizeLines splits raw OCR output into trimmed, non-empty lines in
// document reading order. Empty input yields an empty slice.
func NormalizeLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r", "")
	rawLines := strings.Split(raw, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// collapseSpaces squeezes runs of whitespace into single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsAnyFold reports whether s contains any of the given keywords,
// comparing case-insensitively.
func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
