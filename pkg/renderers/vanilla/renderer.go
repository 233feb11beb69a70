package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/render"
	rendertemplate "github.com/goliatone/go-formgen-theme/pkg/render/template"
	gotemplate "github.com/goliatone/go-formgen-theme/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla/components"
)

type Option func(*config)

type config struct {
	name             string
	templateBundles  []fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	partials         map[string]string
	inlineStyles     bool
}

// WithName overrides the registry name, letting themed instances sit next to
// the plain renderer.
func WithName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithTemplatesFS adds a template bundle searched before the embedded
// defaults. Themes use it to ship their own partials.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateBundles = append(cfg.templateBundles, files)
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateBundles = append(cfg.templateBundles, os.DirFS(path))
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithPartials sets renderer-level partial overrides. Partials carried by
// RenderOptions.Theme take precedence over these.
func WithPartials(partials map[string]string) Option {
	return func(cfg *config) {
		cfg.partials = mergePartials(cfg.partials, partials)
	}
}

// WithInlineStylesheet toggles the embedded stylesheet. It is on by default.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// Renderer produces server-side HTML for a form model.
type Renderer struct {
	name         string
	templates    rendertemplate.TemplateRenderer
	registry     *components.Registry
	partials     map[string]string
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{name: "vanilla", inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := []gotemplate.Option{gotemplate.WithExtension(".tmpl")}
		for _, bundle := range cfg.templateBundles {
			engineOptions = append(engineOptions, gotemplate.WithFS(bundle))
		}
		engineOptions = append(engineOptions, gotemplate.WithFS(TemplatesFS()))

		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	return &Renderer{
		name:         cfg.name,
		templates:    renderer,
		registry:     registry,
		partials:     cfg.partials,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return r.name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Registry exposes the component registry so callers can register additional
// widgets after construction.
func (r *Renderer) Registry() *components.Registry {
	return r.registry
}

func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var themePartials map[string]string
	if options.Theme != nil {
		themePartials = options.Theme.Partials
	}
	partials := mergePartials(r.partials, themePartials)

	fields := newComponentRenderer(r.templates, r.registry, partials, options)
	rendered := make([]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		markup, err := fields.render(field, field.Name)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		rendered = append(rendered, markup)
	}

	stylesheets, scripts := fields.assets()
	payload := map[string]any{
		"form":        form,
		"description": sanitizeDescription(form.Description),
		"fields":      rendered,
		"chrome":      chromeClasses(),
		"stylesheets": stringsToAny(r.themeStylesheets(options, stylesheets)),
		"scripts":     scriptsToAny(scripts),
		"css_vars":    cssVarsToAny(options),
		"form_errors": stringsToAny(options.Errors[""]),
	}
	if r.inlineStyles {
		payload["inline_style"] = defaultStylesheet()
	}
	if options.Theme != nil {
		payload["theme"] = map[string]any{
			"name":    options.Theme.Theme,
			"variant": options.Theme.Variant,
		}
	}

	template := partialOr(partials, PartialForm, defaultFormTemplate)
	result, err := r.templates.RenderTemplate(template, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) themeStylesheets(options render.RenderOptions, component []string) []string {
	var out []string
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if href := options.Theme.AssetURL("stylesheet"); href != "" {
			out = append(out, href)
		}
	}
	for _, href := range component {
		if !slices.Contains(out, href) {
			out = append(out, href)
		}
	}
	return out
}

func partialOr(partials map[string]string, key, fallback string) string {
	if candidate := partials[key]; candidate != "" {
		return candidate
	}
	return fallback
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

func scriptsToAny(scripts []components.Script) []any {
	if len(scripts) == 0 {
		return nil
	}
	out := make([]any, 0, len(scripts))
	for _, script := range scripts {
		out = append(out, map[string]any{
			"src":    script.Src,
			"inline": script.Inline,
			"defer":  script.Defer,
			"module": script.Module,
		})
	}
	return out
}

func cssVarsToAny(options render.RenderOptions) []any {
	if options.Theme == nil || len(options.Theme.CSSVars) == 0 {
		return nil
	}
	names := make([]string, 0, len(options.Theme.CSSVars))
	for name := range options.Theme.CSSVars {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{"name": name, "value": options.Theme.CSSVars[name]})
	}
	return out
}
