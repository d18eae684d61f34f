package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildHintJSONSchema returns the JSON-Schema (draft 2020-12 subset) for the
// model hint as a generic map. All fields are optional: the hint is an
// untrusted overlay, and validation failures degrade to the regex-derived
// values rather than failing the request. The numeric patterns here only
// pre-filter; the reconciler re-checks them regardless.
func BuildHintJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":          map[string]any{"type": "string"},
			"date_of_birth": map[string]any{"type": "string"},
			"gender":        map[string]any{"type": "string"},
			"id_number":     map[string]any{"type": "string"},
			"vid_number":    map[string]any{"type": "string"},
			"address":       map[string]any{"type": "string"},
			"postal_code":   map[string]any{"type": "string"},
		},
		"additionalProperties": true,
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
