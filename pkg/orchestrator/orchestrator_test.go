package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/openapi"
	"github.com/goliatone/go-formgen-theme/pkg/orchestrator"
	"github.com/goliatone/go-formgen-theme/pkg/render"
)

func TestOrchestrator_GeneratesEnvVarsEditor(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithDocumentFS(os.DirFS("testdata")))

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Path:   "service.yaml",
		Schema: "Service",
		Values: map[string]any{
			"name": "api",
			"env":  map[string]any{"B": "2", "A": "1"},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		`action="/services"`,
		`data-kv-name="env"`,
		`id="fg-env-key-0" name="env[0][key]" value="A"`,
		`id="fg-env-value-1" name="env[1][value]" value="2"`,
		`placeholder="NAME"`,
		`type="checkbox"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestOrchestrator_RequestValidation(t *testing.T) {
	orch := orchestrator.New()
	ctx := context.Background()

	if _, err := orch.Generate(ctx, orchestrator.Request{Document: []byte("{}")}); err == nil {
		t.Fatal("expected error for missing schema")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Schema: "Service"}); err == nil {
		t.Fatal("expected error for missing document")
	}

	raw, err := os.ReadFile("testdata/service.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	_, err = orch.Generate(ctx, orchestrator.Request{Document: raw, Schema: "Missing"})
	if !errors.Is(err, openapi.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Document: raw, Schema: "Service", Renderer: "pdf"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_RunsDecoratorsAfterWidgets(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	var seen string
	decorator := model.DecoratorFunc(func(form *model.FormModel) error {
		for _, field := range form.Fields {
			if field.Name == "env" {
				seen = field.UIHints["widget"]
			}
		}
		return nil
	})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithDocumentFS(os.DirFS("testdata")),
		orchestrator.WithDecorators(decorator),
	)
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Path: "service.yaml", Schema: "Service"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if seen != "env-vars" {
		t.Fatalf("decorator saw widget %q, want env-vars", seen)
	}
}

func TestOrchestrator_DecoratorErrorAborts(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDocumentFS(os.DirFS("testdata")),
		orchestrator.WithDecorators(model.DecoratorFunc(func(*model.FormModel) error {
			return errors.New("boom")
		})),
	)
	_, err := orch.Generate(context.Background(), orchestrator.Request{Path: "service.yaml", Schema: "Service"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected decorator error, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer should not run after a decorator error")
	}
}

type stubRenderer struct {
	last  model.FormModel
	calls int
}

func (r *stubRenderer) Name() string        { return "stub" }
func (r *stubRenderer) ContentType() string { return "text/plain" }

func (r *stubRenderer) Render(_ context.Context, form model.FormModel, _ render.RenderOptions) ([]byte, error) {
	r.last = form
	r.calls++
	return []byte(form.ID), nil
}
