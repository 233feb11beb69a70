package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formgen-theme/pkg/model"
)

const (
	templatePrefix = "templates/components/"
)

var defaultTemplates = map[string]string{
	PartialInput:    templatePrefix + "input.tmpl",
	PartialTextarea: templatePrefix + "textarea.tmpl",
	PartialSelect:   templatePrefix + "select.tmpl",
	PartialCheckbox: templatePrefix + "checkbox.tmpl",
	PartialEnvVars:  templatePrefix + "env_vars.tmpl",
}

// DefaultPartials returns the built-in template path of every component
// partial key.
func DefaultPartials() map[string]string {
	out := make(map[string]string, len(defaultTemplates))
	for key, value := range defaultTemplates {
		out[key] = value
	}
	return out
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer. The env-vars editor is registered
// in both roles so `x-formgen-field: env-vars` and `x-formgen-widget: env-vars`
// resolve to the same implementation.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameText, TemplateDescriptor(PartialInput, defaultTemplates[PartialInput]))
	registry.MustRegister(NameTextarea, TemplateDescriptor(PartialTextarea, defaultTemplates[PartialTextarea]))
	registry.MustRegister(NameSelect, TemplateDescriptor(PartialSelect, defaultTemplates[PartialSelect]))
	registry.MustRegister(NameCheckbox, TemplateDescriptor(PartialCheckbox, defaultTemplates[PartialCheckbox]))

	envVars := EnvVarsDescriptor(defaultTemplates[PartialEnvVars])
	registry.MustRegister(NameEnvVars, envVars)
	if err := registry.RegisterRole(RoleField, NameEnvVars, envVars); err != nil {
		panic(err)
	}

	return registry
}

// TemplateDescriptor builds a descriptor rendering a single control through
// a template. Theme partials registered under partialKey replace
// defaultTemplate.
func TemplateDescriptor(partialKey, defaultTemplate string) Descriptor {
	return Descriptor{Renderer: templateComponentRenderer(partialKey, defaultTemplate)}
}

func templateComponentRenderer(partialKey, defaultTemplate string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", defaultTemplate)
		}

		resolved := data.Partial(partialKey, defaultTemplate)
		rendered, err := data.Template.RenderTemplate(resolved, controlPayload(field, data))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func controlPayload(field model.Field, data ComponentData) map[string]any {
	value := data.Value
	if value == nil {
		value = field.Default
	}

	payload := map[string]any{
		"field":       field,
		"id":          data.ID,
		"name":        data.Path,
		"label":       field.Label,
		"placeholder": field.Placeholder,
		"required":    field.Required,
		"disabled":    data.Disabled,
		"readonly":    data.ReadOnly,
		"invalid":     len(data.Errors) > 0,
		"errors":      stringsToAny(data.Errors),
		"config":      data.Config,
		"classes":     sanitizeClassList(field.Hint("cssClass")),
		"value":       scalarString(value),
		"checked":     truthy(value),
	}
	if len(field.Enum) > 0 {
		payload["options"] = enumOptions(field.Enum, scalarString(value))
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
			payload[rule.Kind] = rule.Params["value"]
		case model.ValidationRulePattern:
			payload[rule.Kind] = rule.Params["pattern"]
		}
	}
	return payload
}

func enumOptions(values []any, selected string) []any {
	options := make([]any, 0, len(values))
	for _, raw := range values {
		value := scalarString(raw)
		options = append(options, map[string]any{
			"value":    value,
			"label":    value,
			"selected": value == selected,
		})
	}
	return options
}

func scalarString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case map[string]any, map[string]string, []any:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

func stringsToAny(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "fg-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
