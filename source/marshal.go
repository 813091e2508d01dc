package source

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// MarshalYAML implements yaml.InterfaceMarshaler for Value.
func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

// ToMap converts the result to the document written by [Result.FormatJSON]
// and [Result.FormatYAML].
func (r Result) ToMap() map[string]any {
	vars := r.Vars.Native()
	if vars == nil {
		vars = map[string]any{}
	}

	return map[string]any{
		"changed": r.Changed,
		"vars":    vars,
	}
}

// MarshalJSON implements json.Marshaler for Result.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}
