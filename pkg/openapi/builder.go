package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formgen-theme/pkg/model"
)

const (
	metadataEndpoint = "endpoint"
	metadataMethod   = "method"
	defaultMethod    = "POST"
	maxSchemaDepth   = 32
)

// Builder converts component schemas into form models.
type Builder struct {
	labels bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDerivedLabels fills empty labels from property names ("api_key" becomes
// "Api Key"). Enabled by default.
func WithDerivedLabels(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.labels = enabled
	}
}

// NewBuilder returns a Builder with the supplied options applied.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{labels: true}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build produces the form model for the named component schema. The form's
// endpoint and method come from the schema's `x-formgen` metadata; the method
// defaults to POST.
func (b *Builder) Build(doc *Document, schemaName string) (model.FormModel, error) {
	if doc == nil {
		return model.FormModel{}, errors.New("openapi: document is nil")
	}
	ref, err := doc.Schema(schemaName)
	if err != nil {
		return model.FormModel{}, err
	}
	schema := ref.Value
	if typ := schemaType(schema); typ != "" && typ != string(model.FieldTypeObject) {
		return model.FormModel{}, fmt.Errorf("openapi: schema %s is %s, want object", schemaName, typ)
	}

	metadata, _ := model.ParseUIExtensions(collectExtensions(schema, 0))
	form := model.FormModel{
		ID:          schemaName,
		Title:       firstNonEmpty(schema.Title, schemaName),
		Description: schema.Description,
		Method:      defaultMethod,
		Fields:      b.properties(schema, 0),
		Metadata:    metadata,
	}
	if endpoint := metadata[metadataEndpoint]; endpoint != "" {
		form.Endpoint = endpoint
	}
	if method := strings.ToUpper(strings.TrimSpace(metadata[metadataMethod])); method != "" {
		form.Method = method
	}
	return form, nil
}

func (b *Builder) properties(schema *openapi3.Schema, depth int) []model.Field {
	if schema == nil || len(schema.Properties) == 0 || depth > maxSchemaDepth {
		return nil
	}
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field := b.field(name, ref.Value, depth+1)
		_, field.Required = required[name]
		fields = append(fields, field)
	}
	return fields
}

func (b *Builder) field(name string, schema *openapi3.Schema, depth int) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(schema),
		Format:      schema.Format,
		ReadOnly:    schema.ReadOnly,
		Label:       schema.Title,
		Description: schema.Description,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	field.Validations = validations(schema)

	metadata, hints := model.ParseUIExtensions(collectExtensions(schema, 0))
	field.Metadata = metadata
	field.UIHints = hints
	if label := field.Hint("label"); label != "" {
		field.Label = label
	}
	if placeholder := field.Hint("placeholder"); placeholder != "" {
		field.Placeholder = placeholder
	}
	if field.Label == "" && b.labels {
		field.Label = humanize(name)
	}

	if depth > maxSchemaDepth {
		return field
	}
	switch field.Type {
	case model.FieldTypeObject:
		field.Nested = b.properties(schema, depth)
		if len(field.Nested) == 0 {
			field.AdditionalProperties = b.additional(schema.AdditionalProperties, depth)
		}
	case model.FieldTypeArray:
		if schema.Items != nil && schema.Items.Value != nil {
			item := b.field("items", schema.Items.Value, depth+1)
			field.Items = &item
		}
	}
	return field
}

// additional maps `additionalProperties`. `true` admits any value and is
// edited as a string.
func (b *Builder) additional(ap openapi3.AdditionalProperties, depth int) *model.Field {
	if ap.Schema != nil && ap.Schema.Value != nil {
		value := b.field("value", ap.Schema.Value, depth+1)
		return &value
	}
	if ap.Has != nil && *ap.Has {
		return &model.Field{Name: "value", Type: model.FieldTypeString}
	}
	return nil
}

func validations(schema *openapi3.Schema) []model.ValidationRule {
	var rules []model.ValidationRule
	add := func(kind, key, value string) {
		rules = append(rules, model.ValidationRule{Kind: kind, Params: map[string]string{key: value}})
	}
	if schema.Min != nil {
		add(model.ValidationRuleMin, "value", formatFloat(*schema.Min))
	}
	if schema.Max != nil {
		add(model.ValidationRuleMax, "value", formatFloat(*schema.Max))
	}
	if schema.MinLength > 0 {
		add(model.ValidationRuleMinLength, "value", strconv.FormatUint(schema.MinLength, 10))
	}
	if schema.MaxLength != nil {
		add(model.ValidationRuleMaxLength, "value", strconv.FormatUint(*schema.MaxLength, 10))
	}
	if schema.Pattern != "" {
		add(model.ValidationRulePattern, "pattern", schema.Pattern)
	}
	return rules
}

// collectExtensions merges the schema's vendor extensions with those of its
// allOf members. Keys on the schema itself win.
func collectExtensions(schema *openapi3.Schema, depth int) map[string]any {
	if schema == nil || depth > maxSchemaDepth {
		return nil
	}
	result := make(map[string]any)
	for _, ref := range schema.AllOf {
		if ref == nil || ref.Value == nil {
			continue
		}
		for key, value := range collectExtensions(ref.Value, depth+1) {
			result[key] = value
		}
	}
	for key, value := range schema.Extensions {
		if key == model.ExtensionNamespace {
			if nested, ok := value.(map[string]any); ok {
				merged, _ := result[key].(map[string]any)
				combined := make(map[string]any, len(merged)+len(nested))
				for k, v := range merged {
					combined[k] = v
				}
				for k, v := range nested {
					combined[k] = v
				}
				result[key] = combined
			}
			continue
		}
		if strings.HasPrefix(key, model.ExtensionNamespace+"-") {
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func fieldType(schema *openapi3.Schema) model.FieldType {
	switch schemaType(schema) {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "boolean":
		return model.FieldTypeBoolean
	case "array":
		return model.FieldTypeArray
	case "object":
		return model.FieldTypeObject
	case "string":
		return model.FieldTypeString
	}
	switch {
	case len(schema.Properties) > 0, schema.AdditionalProperties.Schema != nil, schema.AdditionalProperties.Has != nil:
		return model.FieldTypeObject
	case schema.Items != nil:
		return model.FieldTypeArray
	default:
		return model.FieldTypeString
	}
}

// schemaType returns the first non-null declared type.
func schemaType(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil {
		return ""
	}
	for _, typ := range schema.Type.Slice() {
		if typ != "null" {
			return typ
		}
	}
	return ""
}

func humanize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
