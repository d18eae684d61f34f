package constants

// Keyword tables for the line scanners. Devanagari variants sit next to their
// English labels because documents print both scripts side by side and OCR
// returns whichever survived recognition.

// MaleKeywords and FemaleKeywords anchor the gender scanner. Matching is
// case-insensitive for the Latin entries.
var (
	MaleKeywords   = []string{"male", "पुरुष"}
	FemaleKeywords = []string{"female", "महिला"}
	OtherKeywords  = []string{"transgender", "ट्रांसजेंडर"}
)

// DOBLabels anchor the date matcher to the date-of-birth line when present.
var DOBLabels = []string{"dob", "d.o.b", "date of birth", "birth date", "जन्म तिथि", "जन्म तारीख"}

// AddressLabels mark the start of the printed address block.
var AddressLabels = []string{"address", "पता"}

// RelationPrefixes are guardian-relation markers that open the address block on
// the reverse side ("S/O Ramesh Kumar, ..."). They are stripped from the
// captured text.
var RelationPrefixes = []string{"s/o", "d/o", "c/o", "w/o", "s/0", "c/0"}

// LocalityKeywords back up the relation prefixes as address anchors.
var LocalityKeywords = []string{"house", "village", "district", "tehsil", "street", "po:", "ps:", "pincode", "pin code", "vtc", "जिला", "गांव"}

// NameDenylist rejects issuer/header boilerplate that is visually similar to a
// holder name (capitalized words). Compared case-insensitively by substring.
var NameDenylist = []string{
	"government of india",
	"unique identification",
	"authority of india",
	"भारत सरकार",
	"आधार",
	"aadhaar",
	"uidai",
	"identification",
	"government",
	"enrolment",
	"enrollment",
	"download date",
	"issue date",
	"date of birth",
	"year of birth",
	"dob",
	"gender",
	"लिंग",
	"address",
	"vid",
	"help@",
	"www",
	"1947",
	"1800",
}

// VIDLabels mark the 16-digit virtual id. The label match is what keeps the
// VID matcher from colliding with the 12-digit id number.
var VIDLabels = []string{"vid"}
