package extract

import (
	"regexp"
	"strings"

	"github.com/hqplabs/idcard-ocr/constants"
)

// reNameChars admits a line as a plausible holder name: alphabetic words
// joined by spaces, periods or apostrophes, nothing else.
var reNameChars = regexp.MustCompile(`^[A-Za-z][A-Za-z .']*$`)

// ScanName locates the holder's name. Documents print the name immediately
// adjacent to the gender/DOB line, so the scan anchors on the gender keyword:
//
//  1. the gender line itself, with the gender token stripped;
//  2. otherwise the next non-empty line after it (minimum two words);
//  3. the same two steps against the other document side;
//  4. otherwise the first alphabetic-only line with at least two words.
//
// Every candidate passes the issuer/label denylist; header text is
// capitalized like a name and produces false positives without it.
func ScanName(primary, secondary []string) string {
	for _, lines := range [][]string{primary, secondary} {
		if n := nameNearGender(lines); n != "" {
			return n
		}
	}
	for _, lines := range [][]string{primary, secondary} {
		for _, line := range lines {
			if n := nameFallback(line); n != "" {
				return n
			}
		}
	}
	return ""
}

func nameNearGender(lines []string) string {
	gi := genderLineIndex(lines)
	if gi < 0 {
		return ""
	}

	rest := collapseSpaces(reGenderToken.ReplaceAllString(lines[gi], " "))
	rest = strings.Trim(rest, " :-/|.,")
	if rest != "" && !containsAnyFold(rest, constants.NameDenylist) {
		return rest
	}

	if gi+1 < len(lines) {
		next := collapseSpaces(lines[gi+1])
		if len(strings.Fields(next)) >= 2 && !containsAnyFold(next, constants.NameDenylist) {
			return next
		}
	}
	return ""
}

func nameFallback(line string) string {
	line = collapseSpaces(line)
	if !reNameChars.MatchString(line) {
		return ""
	}
	if len(strings.Fields(line)) < 2 {
		return ""
	}
	if containsAnyFold(line, constants.NameDenylist) {
		return ""
	}
	return line
}
