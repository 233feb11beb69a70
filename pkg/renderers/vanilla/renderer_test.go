package vanilla

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/render"
)

func envField(name string, hints map[string]string) model.Field {
	return model.Field{
		Name:                 name,
		Type:                 model.FieldTypeObject,
		Label:                "Environment",
		AdditionalProperties: &model.Field{Type: model.FieldTypeString},
		UIHints:              hints,
	}
}

func renderForm(t *testing.T, renderer *Renderer, form model.FormModel, options render.RenderOptions) string {
	t.Helper()
	output, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func mustRenderer(t *testing.T, options ...Option) *Renderer {
	t.Helper()
	renderer, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRender_EnvVarsRowsFollowKeyOrder(t *testing.T) {
	renderer := mustRenderer(t, WithInlineStylesheet(false))
	form := model.FormModel{
		ID:     "service",
		Fields: []model.Field{envField("env", map[string]string{"widget": "env-vars"})},
	}

	html := renderForm(t, renderer, form, render.RenderOptions{
		Values: map[string]any{"env": map[string]string{"PORT": "8080", "HOST": "x"}},
	})

	host := strings.Index(html, `value="HOST"`)
	port := strings.Index(html, `value="PORT"`)
	if host < 0 || port < 0 || host > port {
		t.Fatalf("expected HOST row before PORT row, got:\n%s", html)
	}
	for _, want := range []string{
		`id="fg-env-key-0"`,
		`name="env[0][key]"`,
		`id="fg-env-value-1"`,
		`name="env[1][value]"`,
		`aria-labelledby="fg-env-label"`,
		`placeholder="Variable name"`,
		`aria-label="Remove environment variable"`,
		`Add Environment Variable`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRender_FieldRoleResolvesSameDescriptor(t *testing.T) {
	renderer := mustRenderer(t, WithInlineStylesheet(false))
	form := model.FormModel{
		ID: "service",
		Fields: []model.Field{
			envField("env", map[string]string{"field": "env-vars"}),
			envField("secrets", nil),
		},
	}

	html := renderForm(t, renderer, form, render.RenderOptions{})
	if !strings.Contains(html, `data-kv-name="env"`) || !strings.Contains(html, `data-kv-name="secrets"`) {
		t.Fatalf("expected both maps to render as env-vars editors:\n%s", html)
	}
	if got := strings.Count(html, "<script>"); got != 1 {
		t.Fatalf("expected editor script once, got %d", got)
	}
}

func TestRender_UnknownComponentsFail(t *testing.T) {
	renderer := mustRenderer(t)
	cases := map[string]map[string]string{
		"widget": {"widget": "color-wheel"},
		"field":  {"field": "color-wheel"},
	}
	for name, hints := range cases {
		t.Run(name, func(t *testing.T) {
			form := model.FormModel{Fields: []model.Field{{Name: "tone", Type: model.FieldTypeString, UIHints: hints}}}
			if _, err := renderer.Render(context.Background(), form, render.RenderOptions{}); err == nil {
				t.Fatal("expected error for unregistered component")
			}
		})
	}
}

func TestRender_NestedMapUsesDottedPath(t *testing.T) {
	renderer := mustRenderer(t, WithInlineStylesheet(false))
	form := model.FormModel{
		ID: "deploy",
		Fields: []model.Field{{
			Name:   "service",
			Type:   model.FieldTypeObject,
			Label:  "Service",
			Nested: []model.Field{envField("env", nil)},
		}},
	}

	html := renderForm(t, renderer, form, render.RenderOptions{
		Values: map[string]any{"service": map[string]any{"env": map[string]any{"DEBUG": true}}},
	})
	for _, want := range []string{
		`<legend id="fg-service-label">Service</legend>`,
		`id="fg-service-env-key-0"`,
		`name="service.env[0][value]" value="true"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRender_InertFormDisablesEditor(t *testing.T) {
	renderer := mustRenderer(t, WithInlineStylesheet(false))
	form := model.FormModel{Fields: []model.Field{envField("env", nil)}}

	html := renderForm(t, renderer, form, render.RenderOptions{
		Disabled: true,
		Values:   map[string]any{"env": map[string]string{"A": "1"}},
	})
	if !strings.Contains(html, "data-kv-inert") {
		t.Fatalf("expected inert marker:\n%s", html)
	}
	if !strings.Contains(html, `data-kv-action="add" disabled`) {
		t.Fatalf("expected disabled add control:\n%s", html)
	}
}

func TestRender_SanitizesDescriptions(t *testing.T) {
	renderer := mustRenderer(t, WithInlineStylesheet(false))
	form := model.FormModel{Fields: []model.Field{{
		Name:        "name",
		Type:        model.FieldTypeString,
		Label:       "Name",
		Description: `Use <strong>lowercase</strong><script>alert(1)</script>`,
	}}}

	html := renderForm(t, renderer, form, render.RenderOptions{})
	if !strings.Contains(html, "<strong>lowercase</strong>") {
		t.Fatalf("expected allowed markup to survive:\n%s", html)
	}
	if strings.Contains(html, "alert(1)") {
		t.Fatalf("expected script to be stripped:\n%s", html)
	}
}

func TestRender_ThemePartialsOverrideDefaults(t *testing.T) {
	bundle := fstest.MapFS{
		"custom/input.tmpl": &fstest.MapFile{Data: []byte(`<input class="themed" name="{{ name }}">`)},
	}
	renderer := mustRenderer(t, WithTemplatesFS(bundle), WithInlineStylesheet(false))
	form := model.FormModel{Fields: []model.Field{{Name: "title", Type: model.FieldTypeString}}}

	html := renderForm(t, renderer, form, render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:    "custom",
			Variant:  "default",
			Partials: map[string]string{"forms.input": "custom/input.tmpl"},
			CSSVars:  map[string]string{"--radius": "4px"},
		},
	})
	for _, want := range []string{
		`<input class="themed" name="title">`,
		`data-theme="custom"`,
		`--radius: 4px;`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRender_ScalarControlsAndErrors(t *testing.T) {
	renderer := mustRenderer(t, WithInlineStylesheet(false))
	form := model.FormModel{Fields: []model.Field{
		{Name: "tier", Type: model.FieldTypeString, Enum: []any{"free", "pro"}, UIHints: map[string]string{"widget": "select"}},
		{Name: "enabled", Type: model.FieldTypeBoolean, UIHints: map[string]string{"widget": "checkbox"}},
		{Name: "name", Type: model.FieldTypeString, Required: true, Label: "Name"},
	}}

	html := renderForm(t, renderer, form, render.RenderOptions{
		Values: map[string]any{"tier": "pro", "enabled": true},
		Errors: map[string][]string{"name": {"is required"}},
	})
	for _, want := range []string{
		`<option value="pro" selected>pro</option>`,
		`value="true" checked`,
		`aria-invalid="true"`,
		`<li>is required</li>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}
