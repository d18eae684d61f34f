package llm

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// ParseHint turns a raw model response into CardFields. The response may wrap
// the JSON object in prose or code fencing; malformed responses yield an
// empty hint, never an error, so the request continues on regex-derived
// values alone.
func ParseHint(response string, logger *slog.Logger) CardFields {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := FirstJSONObject(response)
	if err != nil {
		logger.Warn("llm.hint.no_json_object", "response_bytes", len(response))
		return CardFields{}
	}
	if err := ValidateJSONAgainstSchema(BuildHintJSONSchema(), raw); err != nil {
		logger.Warn("llm.hint.schema_mismatch", "error", err)
		return CardFields{}
	}

	var hint CardFields
	if err := json.Unmarshal(raw, &hint); err != nil {
		logger.Warn("llm.hint.unmarshal_failed", "error", err)
		return CardFields{}
	}
	return hint
}

// Reconcile overlays an untrusted hint onto the regex-derived fields. Numeric
// fields from the hint are accepted only when they pass the fixed-length
// digit invariants; otherwise the regex-derived value stands, even when that
// value is itself empty. Free-text fields have no strict format and are taken
// from the hint whenever present.
func Reconcile(hint CardFields, base extract.Fields, logger *slog.Logger) extract.Fields {
	if logger == nil {
		logger = slog.Default()
	}
	out := base

	if hint.Name != "" {
		out.Name = strings.TrimSpace(hint.Name)
	}
	if hint.DateOfBirth != "" {
		out.DateOfBirth = strings.TrimSpace(hint.DateOfBirth)
	}
	if hint.Address != "" {
		out.Address = strings.TrimSpace(hint.Address)
	}
	if g := canonicalGender(hint.Gender); g != "" {
		out.Gender = g
	}

	if id := strings.TrimSpace(hint.IDNumber); id != "" {
		if extract.ValidIDNumber(id) {
			out.IDNumber = id
		} else {
			logger.Warn("llm.hint.invalid_id_number", "len", len(id))
		}
	}
	if vid := strings.TrimSpace(hint.VIDNumber); vid != "" {
		if extract.ValidVIDNumber(vid) {
			out.VIDNumber = vid
		} else {
			logger.Warn("llm.hint.invalid_vid_number", "len", len(vid))
		}
	}
	if pc := strings.TrimSpace(hint.PostalCode); pc != "" {
		if extract.ValidPostalCode(pc) {
			out.PostalCode = pc
		} else {
			logger.Warn("llm.hint.invalid_postal_code", "len", len(pc))
		}
	}
	return out
}

func canonicalGender(s string) constants.Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return constants.GenderMale
	case "female", "f":
		return constants.GenderFemale
	case "other", "transgender":
		return constants.GenderOther
	}
	return ""
}
