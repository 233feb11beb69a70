package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/openapi"
	"github.com/goliatone/go-formgen-theme/pkg/render"
	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-theme/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Builder turns a component schema of a parsed document into a form model.
type Builder interface {
	Build(doc *openapi.Document, schema string) (model.FormModel, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithWidgetRegistry replaces the widget registry used to annotate fields.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// WithSchemaTransformer registers a Transformer that can mutate form models
// after building but before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the generated form
// model, after widget resolution and before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithDocumentFS makes Request.Path resolve against fsys instead of the
// operating system.
func WithDocumentFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.documents = fsys
	}
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// renderers receive a resolved theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider constructs a go-theme selector from a ThemeProvider and
// the theme/variant used when requests leave them empty.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = &theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// WithThemeFallbacks replaces the partials used when a theme leaves a
// template key unset. Defaults to the vanilla renderer's embedded templates.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator coordinates the full pipeline from OpenAPI document to rendered
// output. It applies sensible defaults (vanilla renderer, built-in widgets)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	builder         Builder
	registry        *render.Registry
	widgets         *widgets.Registry
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool
	decorators      []model.Decorator
	transformer     Transformer
	documents       fs.FS
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form from a component
// schema.
type Request struct {
	// Parsed bypasses loading when the caller already holds a document.
	Parsed *openapi.Document
	// Document is a raw JSON or YAML OpenAPI payload.
	Document []byte
	// Path names a document file, read from the configured document FS or
	// the operating system. Used when Parsed and Document are both empty.
	Path string

	// Schema selects the component schema to render.
	Schema string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Values prefills controls by dotted field path.
	Values map[string]any
	// Errors surfaces server-side validation messages by field path.
	Errors map[string][]string

	// ThemeName and ThemeVariant are passed to the theme selector. Empty
	// values let the selector apply its defaults.
	ThemeName    string
	ThemeVariant string

	Disabled bool
	ReadOnly bool
}

// Generate executes the load → build → decorate → theme → render sequence
// and returns the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Schema) == "" {
		return nil, errors.New("orchestrator: schema name is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	form, err := o.builder.Build(doc, req.Schema)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if err := o.applyTransformer(ctx, &form); err != nil {
		return nil, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	themeConfig, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, render.RenderOptions{
		Values:   req.Values,
		Errors:   req.Errors,
		Theme:    themeConfig,
		Disabled: req.Disabled,
		ReadOnly: req.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

// RegisterWidget adds a widget matcher to the orchestrator's widget registry.
func (o *Orchestrator) RegisterWidget(name string, priority int, matcher widgets.Matcher) {
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	o.widgets.Register(name, priority, matcher)
}

// WidgetRegistry exposes the registry used to annotate fields.
func (o *Orchestrator) WidgetRegistry() *widgets.Registry {
	return o.widgets
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (*openapi.Document, error) {
	switch {
	case req.Parsed != nil:
		return req.Parsed, nil
	case len(req.Document) > 0:
		doc, err := openapi.Parse(ctx, req.Document)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load document: %w", err)
		}
		return doc, nil
	case strings.TrimSpace(req.Path) != "":
		doc, err := openapi.Load(ctx, o.documents, req.Path)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load document: %w", err)
		}
		return doc, nil
	default:
		return nil, errors.New("orchestrator: document or path is required")
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return render.ThemeConfig(selection, o.themeFallbacks), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if form == nil {
		return nil
	}
	if o.widgets != nil {
		if err := o.widgets.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: resolve widgets: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.builder == nil {
		o.builder = openapi.NewBuilder()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func defaultThemeFallbacks() map[string]string {
	return vanilla.DefaultPartials()
}
