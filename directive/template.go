package directive

import (
	"strings"

	"github.com/go-json-experiment/json"
)

// Template is the payload of an expand directive.
//
// Exactly one of the following holds:
//   - Value is set: a structured template (decoded JSON object or array)
//   - Fn is set: the name of a registered expand function
//   - Raw is set alone: the payload could not be parsed and is kept as written
type Template struct {
	Value any    `yaml:"value,omitempty" json:"value,omitempty"`
	Fn    string `yaml:"fn,omitempty" json:"fn,omitempty"`
	Raw   string `yaml:"raw,omitempty" json:"raw,omitempty"`
}

// IsFunc reports whether the template refers to an expand function.
func (t Template) IsFunc() bool { return t.Fn != "" }

// IsMalformed reports whether the payload was kept as an unparsed string.
func (t Template) IsMalformed() bool {
	return t.Value == nil && t.Fn == "" && t.Raw != ""
}

// ParseFieldTemplate parses the into argument of a field-level expand.
// Anything that is not valid JSON becomes an empty object.
func ParseFieldTemplate(raw string) Template {
	v, err := decodeJSON(raw)
	if err != nil {
		return Template{Value: map[string]any{}}
	}
	return Template{Value: v}
}

// ParseTypeTemplate parses the into argument of a type-level expand.
// Object literals are decoded; malformed ones fall back to the raw text.
// Anything else is taken as the name of an expand function; a bare name is
// the only way to refer to one.
func ParseTypeTemplate(raw string) Template {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Template{Value: map[string]any{}}
	}
	if !looksLikeLiteral(trimmed) {
		return Template{Fn: trimmed}
	}
	v, err := decodeJSON(trimmed)
	if err != nil {
		return Template{Raw: raw}
	}
	return Template{Value: v}
}

func looksLikeLiteral(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

func decodeJSON(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
