package shadcn

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla/components"
)

// Name is the theme name used in the manifest and theme selection.
const Name = "shadcn"

const templateDir = "templates/shadcn/"

// Registration names exposed by the theme.
const (
	TextWidget                 = "TextWidget"
	SelectWidget               = "SelectWidget"
	CheckboxWidget             = "CheckboxWidget"
	TextareaWidget             = "TextareaWidget"
	EnvironmentVariablesWidget = "EnvironmentVariablesWidget"
	EnvironmentVariablesField  = "EnvironmentVariablesField"

	FormTemplate        = "FormTemplate"
	FieldTemplate       = "FieldTemplate"
	ObjectFieldTemplate = "ObjectFieldTemplate"
	ArrayFieldTemplate  = "ArrayFieldTemplate"
)

// Template binds a layout template to the partial key the renderer reads.
type Template struct {
	Partial string
	Path    string
}

// Theme holds the three registration tables.
type Theme struct {
	Widgets   map[string]components.Descriptor
	Fields    map[string]components.Descriptor
	Templates map[string]Template
}

// builtinAliases maps the widget names produced by widget resolution to the
// themed widgets.
var builtinAliases = map[string]string{
	components.NameText:     TextWidget,
	components.NameTextarea: TextareaWidget,
	components.NameSelect:   SelectWidget,
	components.NameCheckbox: CheckboxWidget,
	components.NameEnvVars:  EnvironmentVariablesWidget,
}

// New builds the theme tables. The environment-variable editor is a single
// descriptor shared by the widget and field tables.
func New() *Theme {
	envVars := components.EnvVarsDescriptor(templateDir + "env_vars.tmpl")
	textarea := components.TemplateDescriptor(components.PartialTextarea, templateDir+"textarea.tmpl")

	return &Theme{
		Widgets: map[string]components.Descriptor{
			TextWidget:                 components.TemplateDescriptor(components.PartialInput, templateDir+"input.tmpl"),
			SelectWidget:               components.TemplateDescriptor(components.PartialSelect, templateDir+"select.tmpl"),
			CheckboxWidget:             components.TemplateDescriptor(components.PartialCheckbox, templateDir+"checkbox.tmpl"),
			TextareaWidget:             textarea,
			"textarea":                 textarea,
			EnvironmentVariablesWidget: envVars,
		},
		Fields: map[string]components.Descriptor{
			EnvironmentVariablesField: envVars,
		},
		Templates: map[string]Template{
			FormTemplate:        {Partial: vanilla.PartialForm, Path: templateDir + "form.tmpl"},
			FieldTemplate:       {Partial: vanilla.PartialField, Path: templateDir + "field.tmpl"},
			ObjectFieldTemplate: {Partial: vanilla.PartialObject, Path: templateDir + "object.tmpl"},
			ArrayFieldTemplate:  {Partial: vanilla.PartialArray, Path: templateDir + "array.tmpl"},
		},
	}
}

// Register installs the widgets and fields into registry, including aliases
// for the built-in widget names and the `env-vars` field name.
func (t *Theme) Register(registry *components.Registry) error {
	if registry == nil {
		return fmt.Errorf("shadcn: component registry is nil")
	}
	for _, name := range slices.Sorted(maps.Keys(t.Widgets)) {
		if err := registry.Register(name, t.Widgets[name]); err != nil {
			return fmt.Errorf("shadcn: register widget %q: %w", name, err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(t.Fields)) {
		if err := registry.RegisterRole(components.RoleField, name, t.Fields[name]); err != nil {
			return fmt.Errorf("shadcn: register field %q: %w", name, err)
		}
	}
	for _, alias := range slices.Sorted(maps.Keys(builtinAliases)) {
		descriptor, ok := t.Widgets[builtinAliases[alias]]
		if !ok {
			continue
		}
		if err := registry.Register(alias, descriptor); err != nil {
			return fmt.Errorf("shadcn: alias widget %q: %w", alias, err)
		}
	}
	if field, ok := t.Fields[EnvironmentVariablesField]; ok {
		if err := registry.RegisterRole(components.RoleField, components.NameEnvVars, field); err != nil {
			return fmt.Errorf("shadcn: alias field %q: %w", components.NameEnvVars, err)
		}
	}
	return nil
}

// Partials maps renderer partial keys to the theme's layout templates.
func (t *Theme) Partials() map[string]string {
	out := make(map[string]string, len(t.Templates))
	for _, tmpl := range t.Templates {
		out[tmpl.Partial] = tmpl.Path
	}
	return out
}

// Registry returns the default component registry with the theme installed.
func (t *Theme) Registry() (*components.Registry, error) {
	registry := components.NewDefaultRegistry()
	if err := t.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// Options returns the renderer options that install the theme: its template
// name, template bundle, registry and layout partials.
func (t *Theme) Options() ([]vanilla.Option, error) {
	registry, err := t.Registry()
	if err != nil {
		return nil, err
	}
	return []vanilla.Option{
		vanilla.WithName(Name),
		vanilla.WithTemplatesFS(TemplatesFS()),
		vanilla.WithComponentRegistry(registry),
		vanilla.WithPartials(t.Partials()),
		vanilla.WithInlineStylesheet(false),
	}, nil
}

// NewRenderer constructs an HTML renderer with the theme installed. Extra
// options are applied after the theme's.
func NewRenderer(extra ...vanilla.Option) (*vanilla.Renderer, error) {
	options, err := New().Options()
	if err != nil {
		return nil, err
	}
	return vanilla.New(append(options, extra...)...)
}
