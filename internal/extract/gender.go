package extract

import (
	"regexp"

	"github.com/hqplabs/idcard-ocr/constants"
)

// "male" is a substring of "female", so the Latin patterns are word-bounded
// and female/other are tested first.
var (
	reFemale = regexp.MustCompile(`(?i)\bfemale\b|महिला`)
	reMale   = regexp.MustCompile(`(?i)\bmale\b|पुरुष`)
	reOther  = regexp.MustCompile(`(?i)\btransgender\b|ट्रांसजेंडर`)

	// reGenderToken strips the gender word and its label/separator from a
	// line when the name scanner reuses that line.
	reGenderToken = regexp.MustCompile(`(?i)\bfemale\b|\bmale\b|\btransgender\b|महिला|पुरुष|ट्रांसजेंडर`)
)

// ScanGender returns the canonical gender for the first line carrying a
// gender keyword in any supported script. Absence returns ""; gender is never
// guessed.
func ScanGender(lines []string) constants.Gender {
	for _, line := range lines {
		switch {
		case reFemale.MatchString(line):
			return constants.GenderFemale
		case reOther.MatchString(line):
			return constants.GenderOther
		case reMale.MatchString(line):
			return constants.GenderMale
		}
	}
	return ""
}

// genderLineIndex returns the index of the first line carrying a gender
// keyword, or -1.
func genderLineIndex(lines []string) int {
	for i, line := range lines {
		if reFemale.MatchString(line) || reMale.MatchString(line) || reOther.MatchString(line) {
			return i
		}
	}
	return -1
}
