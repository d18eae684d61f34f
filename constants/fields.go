package constants

// Gender is the canonical gender value stored on a record. OCR and LLM output
// in any supported script is mapped onto these exact strings.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// RejectionReason is the stable code attached to a rejected extraction.
type RejectionReason string

const (
	ReasonAlreadyExists          RejectionReason = "ALREADY_EXISTS"
	ReasonEssentialFieldsMissing RejectionReason = "ESSENTIAL_FIELDS_MISSING"
)

// StrategyName selects a field-extraction strategy generation.
type StrategyName string

const (
	StrategyRegex   StrategyName = "regex"
	StrategyKeyword StrategyName = "keyword"
	StrategyLLM     StrategyName = "llm"
)

// MissingEssentialPolicy decides what happens when id_number and/or name are
// still empty after every strategy has run.
type MissingEssentialPolicy string

const (
	// PolicyReject returns an ESSENTIAL_FIELDS_MISSING rejection.
	PolicyReject MissingEssentialPolicy = "reject"
	// PolicyPersistPartial stores whatever was found.
	PolicyPersistPartial MissingEssentialPolicy = "persist-partial"
)

// Fixed digit lengths for the validated numeric fields.
const (
	IDNumberLen   = 12
	VIDNumberLen  = 16
	PostalCodeLen = 6
)
