package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildWorkOrderJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the WorkOrderRecord shape. The schema is
// deliberately permissive about which keys appear, since a missing key just
// means absent-field semantics after merge, but strict about section shapes.
func BuildWorkOrderJSONSchema() map[string]any {
	stringMap := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	serviceLine := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	changeOrder := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"header":        stringMap,
			"pricing":       stringMap,
			"text_blocks":   stringMap,
			"services":      map[string]any{"type": "array", "items": serviceLine},
			"change_orders": map[string]any{"type": "array", "items": changeOrder},
		},
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
