package model

import "strings"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"]
// while pattern rules preserve the original expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside a generated form.
//
// AdditionalProperties carries the value schema of map-like objects (an
// object without declared properties whose values share one schema). The
// key/value editor handles the string-valued variant.
type Field struct {
	Name                 string            `json:"name"`
	Type                 FieldType         `json:"type"`
	Format               string            `json:"format,omitempty"`
	Required             bool              `json:"required"`
	ReadOnly             bool              `json:"readOnly,omitempty"`
	Disabled             bool              `json:"disabled,omitempty"`
	Label                string            `json:"label,omitempty"`
	Placeholder          string            `json:"placeholder,omitempty"`
	Description          string            `json:"description,omitempty"`
	Default              any               `json:"default,omitempty"`
	Enum                 []any             `json:"enum,omitempty"`
	Nested               []Field           `json:"nested,omitempty"`
	Items                *Field            `json:"items,omitempty"`
	AdditionalProperties *Field            `json:"additionalProperties,omitempty"`
	Validations          []ValidationRule  `json:"validations,omitempty"`
	Metadata             map[string]string `json:"metadata,omitempty"`
	UIHints              map[string]string `json:"uiHints,omitempty"`
}

// IsMap reports whether the field is an object whose values are free-form
// strings keyed by arbitrary names.
func (f Field) IsMap() bool {
	if f.Type != FieldTypeObject || len(f.Nested) > 0 || f.AdditionalProperties == nil {
		return false
	}
	return f.AdditionalProperties.Type == FieldTypeString
}

// Inert reports whether the field's controls must render non-interactive.
func (f Field) Inert() bool {
	if f.ReadOnly || f.Disabled {
		return true
	}
	return hintEnabled(f.UIHints, "disabled") || hintEnabled(f.UIHints, "readonly")
}

// Hint returns a trimmed UI hint value.
func (f Field) Hint(key string) string {
	if f.UIHints == nil {
		return ""
	}
	return strings.TrimSpace(f.UIHints[key])
}

// FormModel is the top-level representation renderers consume. ID holds the
// schema name the model was built from.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Endpoint    string            `json:"endpoint,omitempty"`
	Method      string            `json:"method,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func hintEnabled(hints map[string]string, key string) bool {
	if hints == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(hints[key])) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
