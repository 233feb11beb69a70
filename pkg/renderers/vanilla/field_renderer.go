package vanilla

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/render"
	"github.com/goliatone/go-formgen-theme/pkg/render/template"
	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla/components"
)

// componentRenderer renders the fields of one form. It is created per Render
// call and records which components were used so their assets can be
// emitted once.
type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	partials  map[string]string
	options   render.RenderOptions

	used []components.Key
	seen map[components.Key]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, partials map[string]string, options render.RenderOptions) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		partials:  partials,
		options:   options,
		seen:      make(map[components.Key]struct{}),
	}
}

// resolve picks the component for a field: an explicit field hint in the
// field role, then a widget hint in the widget role, then the env-vars
// widget for string maps, then text. ok is false for object and array
// fields, which render through layout templates.
func (r *componentRenderer) resolve(field model.Field, path string) (components.Key, components.Descriptor, bool, error) {
	if name := field.Hint("field"); name != "" {
		key := components.Key{Role: components.RoleField, Name: name}
		descriptor, ok := r.registry.Lookup(key.Role, key.Name)
		if !ok {
			return key, components.Descriptor{}, false, fmt.Errorf("field component %q not registered for field %q", name, path)
		}
		return key, descriptor, true, nil
	}

	name := field.Hint("widget")
	if name == "" && field.Metadata != nil {
		name = strings.TrimSpace(field.Metadata["widget"])
	}
	if name == "" {
		switch {
		case field.IsMap():
			name = components.NameEnvVars
		case field.Type == model.FieldTypeObject, field.Type == model.FieldTypeArray:
			return components.Key{}, components.Descriptor{}, false, nil
		default:
			name = components.NameText
		}
	}

	key := components.Key{Role: components.RoleWidget, Name: name}
	descriptor, ok := r.registry.Lookup(key.Role, key.Name)
	if !ok {
		return key, components.Descriptor{}, false, fmt.Errorf("widget %q not registered for field %q", name, path)
	}
	return key, descriptor, true, nil
}

func (r *componentRenderer) render(field model.Field, path string) (string, error) {
	key, descriptor, ok, err := r.resolve(field, path)
	if err != nil {
		return "", err
	}
	if !ok {
		if field.Type == model.FieldTypeArray {
			return r.renderArray(field, path)
		}
		return r.renderObject(field, path)
	}

	value, _ := render.ValueAt(r.options.Values, path)
	errors := r.options.Errors[path]
	data := components.ComponentData{
		Template: r.templates,
		Partials: r.partials,
		Path:     path,
		ID:       componentControlID(path),
		Value:    value,
		Disabled: r.options.Disabled || field.Disabled || field.Hint("disabled") == "true",
		ReadOnly: r.options.ReadOnly || field.ReadOnly || field.Hint("readonly") == "true",
		Errors:   errors,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", key.Name, path, err)
	}
	r.markUsed(key)

	return r.renderChrome(field, path, key.Name, descriptor.OwnsLabel, control.String(), errors)
}

func (r *componentRenderer) renderChrome(field model.Field, path, component string, ownsLabel bool, control string, errors []string) (string, error) {
	payload := map[string]any{
		"field":       field,
		"component":   component,
		"id":          componentControlID(path),
		"label_id":    componentLabelID(path),
		"label":       field.Label,
		"show_label":  !ownsLabel && shouldRenderLabel(field.Label, field.Hint("hideLabel")),
		"required":    field.Required,
		"control":     control,
		"description": "",
		"help":        field.Hint("helpText"),
		"errors":      stringsToAny(errors),
		"classes":     field.Hint("cssClass"),
		"chrome":      chromeClasses(),
	}
	if !ownsLabel {
		payload["description"] = sanitizeDescription(field.Description)
	}

	name := partialOr(r.partials, PartialField, defaultFieldTemplate)
	rendered, err := r.templates.RenderTemplate(name, payload)
	if err != nil {
		return "", fmt.Errorf("render field template %q for field %q: %w", name, path, err)
	}
	return rendered, nil
}

func (r *componentRenderer) renderObject(field model.Field, path string) (string, error) {
	children := make([]any, 0, len(field.Nested))
	for _, nested := range field.Nested {
		child, err := r.render(nested, render.JoinPath(path, nested.Name))
		if err != nil {
			return "", err
		}
		children = append(children, child)
	}

	payload := r.layoutPayload(field, path)
	payload["children"] = children

	name := partialOr(r.partials, PartialObject, defaultObjectTemplate)
	rendered, err := r.templates.RenderTemplate(name, payload)
	if err != nil {
		return "", fmt.Errorf("render object template %q for field %q: %w", name, path, err)
	}
	return rendered, nil
}

// renderArray renders one item per prefilled element, or a single empty
// item when no values were supplied.
func (r *componentRenderer) renderArray(field model.Field, path string) (string, error) {
	var items []any
	if field.Items != nil {
		count := 1
		if value, ok := render.ValueAt(r.options.Values, path); ok {
			if list, ok := value.([]any); ok && len(list) > 0 {
				count = len(list)
			}
		}
		for i := 0; i < count; i++ {
			item := *field.Items
			item.Name = strconv.Itoa(i)
			child, err := r.render(item, render.JoinPath(path, item.Name))
			if err != nil {
				return "", err
			}
			items = append(items, child)
		}
	}

	payload := r.layoutPayload(field, path)
	payload["items"] = items

	name := partialOr(r.partials, PartialArray, defaultArrayTemplate)
	rendered, err := r.templates.RenderTemplate(name, payload)
	if err != nil {
		return "", fmt.Errorf("render array template %q for field %q: %w", name, path, err)
	}
	return rendered, nil
}

func (r *componentRenderer) layoutPayload(field model.Field, path string) map[string]any {
	label := field.Label
	labelID := ""
	if shouldRenderLabel(label, field.Hint("hideLabel")) {
		labelID = componentLabelID(path)
	} else {
		label = ""
	}
	return map[string]any{
		"field":       field,
		"id":          componentControlID(path),
		"label":       label,
		"label_id":    labelID,
		"description": sanitizeDescription(field.Description),
		"help":        field.Hint("helpText"),
		"errors":      stringsToAny(r.options.Errors[path]),
		"classes":     field.Hint("cssClass"),
		"chrome":      chromeClasses(),
	}
}

func (r *componentRenderer) markUsed(key components.Key) {
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.used = append(r.used, key)
}

func (r *componentRenderer) assets() (stylesheets []string, scripts []components.Script) {
	if r.registry == nil || len(r.used) == 0 {
		return nil, nil
	}
	return r.registry.Assets(r.used)
}
