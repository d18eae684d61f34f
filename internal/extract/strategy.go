package extract

import (
	"context"
	"regexp"

	"github.com/hqplabs/idcard-ocr/constants"
)

// Input carries the raw OCR text for both document sides. BackText may be
// empty when only one side was supplied.
type Input struct {
	FrontText string
	BackText  string
}

// Combined returns both sides joined in reading order, front first.
func (in Input) Combined() string {
	if in.BackText == "" {
		return in.FrontText
	}
	return in.FrontText + "\n" + in.BackText
}

// Fields is the mutable field map a strategy populates. The assembler merges
// it into an ExtractedRecord.
type Fields struct {
	Name        string
	DateOfBirth string
	Gender      constants.Gender
	IDNumber    string
	VIDNumber   string
	Address     string
	PostalCode  string
}

// Strategy is one heuristic generation of the field-extraction engine. The
// source went through several materially different generations; each survives
// as a swappable implementation instead of silently picking one. All
// implementations are pure over their input: a scanner that finds nothing
// leaves the field empty, which is a valid outcome, not an error.
type Strategy interface {
	Extract(ctx context.Context, in Input) Fields
}

// RegexStrategy is the first heuristic generation: whole-text regular
// expressions only, no line anchoring beyond the capitalized-name pattern.
type RegexStrategy struct{}

var reCapitalizedName = regexp.MustCompile(`^[A-Z][a-zA-Z]*( [A-Z][a-zA-Z]*)+$`)

func (RegexStrategy) Extract(_ context.Context, in Input) Fields {
	text := in.Combined()
	lines := NormalizeLines(text)

	var name string
	for _, line := range lines {
		if reCapitalizedName.MatchString(line) && !containsAnyFold(line, constants.NameDenylist) {
			name = line
			break
		}
	}

	id := MatchIDNumber(text)
	return Fields{
		Name:        name,
		DateOfBirth: MatchDate(text),
		Gender:      ScanGender(lines),
		IDNumber:    id,
		VIDNumber:   MatchVIDNumber(text, id),
		Address:     addressLabelSpan(lines),
		PostalCode:  MatchPostalCode(text),
	}
}

// KeywordStrategy is the line-anchored generation and the default: numeric
// matchers over the combined text plus the keyword-anchored Name, Gender and
// Address scanners with their side preferences.
type KeywordStrategy struct{}

func (KeywordStrategy) Extract(_ context.Context, in Input) Fields {
	text := in.Combined()
	front := NormalizeLines(in.FrontText)
	back := NormalizeLines(in.BackText)

	gender := ScanGender(front)
	if gender == "" {
		gender = ScanGender(back)
	}

	id := MatchIDNumber(text)
	return Fields{
		Name:        ScanName(front, back),
		DateOfBirth: MatchDate(text),
		Gender:      gender,
		IDNumber:    id,
		VIDNumber:   MatchVIDNumber(text, id),
		Address:     ScanAddress(back, front),
		PostalCode:  MatchPostalCode(text),
	}
}
