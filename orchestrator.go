package formgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-theme/pkg/openapi"
	"github.com/goliatone/go-formgen-theme/pkg/orchestrator"
	"github.com/goliatone/go-formgen-theme/pkg/render"
	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-theme/pkg/theme/shadcn"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers driving Generate directly.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML parses the OpenAPI payload, builds a form model for the named
// component schema, and renders it using the named renderer. It is the
// simplest entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, document []byte, schema, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: document,
		Schema:   schema,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a form using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc *openapi.Document, schema, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Parsed:   doc,
		Schema:   schema,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider constructs a go-theme selector from a ThemeProvider and
// registers it with the orchestrator so renderers receive resolved partials,
// tokens, and assets.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

// WithShadcnTheme registers the vanilla and shadcn renderers, makes shadcn
// the default and selects the embedded shadcn manifest with defaultVariant
// ("" for the base tokens, "dark" for the dark palette).
func WithShadcnTheme(defaultVariant string) (orchestrator.Option, error) {
	manifest, err := shadcn.Manifest()
	if err != nil {
		return nil, err
	}
	provider := theme.NewRegistry()
	if err := provider.Register(manifest); err != nil {
		return nil, err
	}

	base, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	themed, err := shadcn.NewRenderer()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(base); err != nil {
		return nil, err
	}
	if err := registry.Register(themed); err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(themed.Name()),
		orchestrator.WithThemeProvider(provider, shadcn.Name, defaultVariant),
		orchestrator.WithThemeFallbacks(shadcn.New().Partials()),
	}
	return func(o *orchestrator.Orchestrator) {
		for _, opt := range options {
			opt(o)
		}
	}, nil
}
