package orchestrator

import (
	"context"
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	pkgmodel "github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/openapi"
	"github.com/goliatone/go-formgen-theme/pkg/render"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	t.Helper()

	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
	}

	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}

	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithModelBuilder(stubBuilder{form: pkgmodel.FormModel{ID: "Service"}}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	_, err := orch.Generate(context.Background(), Request{
		Parsed:       &openapi.Document{},
		Schema:       "Service",
		Renderer:     renderer.Name(),
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	if renderer.options.Theme == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if renderer.options.Theme.Theme != selection.Theme {
		t.Fatalf("theme name mismatch: want %s, got %s", selection.Theme, renderer.options.Theme.Theme)
	}
	if renderer.options.Theme.Variant != selection.Variant {
		t.Fatalf("theme variant mismatch: want %s, got %s", selection.Variant, renderer.options.Theme.Variant)
	}
	if renderer.options.Theme.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := renderer.options.Theme.Partials["forms.env-vars"]; got != defaultThemeFallbacks()["forms.env-vars"] {
		t.Fatalf("partials not merged with fallbacks: want %s, got %s", defaultThemeFallbacks()["forms.env-vars"], got)
	}
	if renderer.options.Theme.Tokens["brand"] != manifest.Tokens["brand"] {
		t.Fatalf("tokens not propagated")
	}
	if renderer.options.Theme.CSSVars["--brand"] != manifest.Tokens["brand"] {
		t.Fatalf("css vars not derived from tokens")
	}
}

func TestOrchestrator_WithThemeProviderUsesDefaults(t *testing.T) {
	t.Helper()

	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.checkbox": "themes/acme/dark/checkbox.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"script": "theme.dark.js",
					},
				},
			},
		},
	}

	provider := theme.NewRegistry()
	if err := provider.Register(manifest); err != nil {
		t.Fatalf("register manifest: %v", err)
	}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithModelBuilder(stubBuilder{form: pkgmodel.FormModel{ID: "Service"}}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeProvider(provider, "acme", "dark"),
	)

	_, err := orch.Generate(context.Background(), Request{
		Parsed:   &openapi.Document{},
		Schema:   "Service",
		Renderer: renderer.Name(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" {
		t.Fatalf("theme name mismatch: want acme, got %s", cfg.Theme)
	}
	if cfg.Variant != "dark" {
		t.Fatalf("theme variant mismatch: want dark, got %s", cfg.Variant)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("expected base template override, got %s", cfg.Partials["forms.input"])
	}
	if cfg.Partials["forms.checkbox"] != "themes/acme/dark/checkbox.tmpl" {
		t.Fatalf("expected variant template override, got %s", cfg.Partials["forms.checkbox"])
	}
	if cfg.Partials["forms.textarea"] != defaultThemeFallbacks()["forms.textarea"] {
		t.Fatalf("fallback partial not applied for textarea")
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("tokens not merged with variant override, got %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens, got %s", cfg.CSSVars["--brand"])
	}
	if got := cfg.AssetURL("script"); got != "/assets/themes/acme/theme.dark.js" {
		t.Fatalf("unexpected script asset url: %s", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
}

func TestOrchestrator_ThemeSelectionError(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	selectErr := errors.New("unknown theme")
	orch := New(
		WithModelBuilder(stubBuilder{form: pkgmodel.FormModel{ID: "Service"}}),
		WithRegistry(registry),
		WithThemeSelector(&stubThemeSelector{err: selectErr}),
	)

	_, err := orch.Generate(context.Background(), Request{Parsed: &openapi.Document{}, Schema: "Service"})
	if !errors.Is(err, selectErr) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestOrchestrator_NoSelectorLeavesThemeEmpty(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithModelBuilder(stubBuilder{form: pkgmodel.FormModel{ID: "Service"}}),
		WithRegistry(registry),
	)

	out, err := orch.Generate(context.Background(), Request{
		Parsed:   &openapi.Document{},
		Schema:   "Service",
		Values:   map[string]any{"env": map[string]string{"A": "1"}},
		ReadOnly: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "Service" {
		t.Fatalf("unexpected output %q", out)
	}
	if renderer.options.Theme != nil {
		t.Fatalf("expected no theme config, got %+v", renderer.options.Theme)
	}
	if !renderer.options.ReadOnly || renderer.options.Values["env"] == nil {
		t.Fatalf("request options not forwarded: %+v", renderer.options)
	}
}

type stubBuilder struct {
	form pkgmodel.FormModel
	err  error
}

func (s stubBuilder) Build(*openapi.Document, string) (pkgmodel.FormModel, error) {
	if s.err != nil {
		return pkgmodel.FormModel{}, s.err
	}
	return s.form, nil
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, form pkgmodel.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(form.ID), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
