package llm

import (
	"encoding/json"
	"strings"

	"github.com/hqplabs/idcard-ocr/internal/common"
)

// FirstJSONObject extracts the first well-formed JSON object embedded in
// text, ignoring any surrounding prose or code fencing and all trailing
// content. Models rarely return a bare object, so this is the only supported
// way to read a hint. Returns ErrMalformedHint when no object can be decoded.
func FirstJSONObject(text string) (json.RawMessage, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		// Decode accepts scalars too; require an object.
		if len(raw) > 0 && raw[0] == '{' {
			return raw, nil
		}
	}
	return nil, common.ErrMalformedHint
}
