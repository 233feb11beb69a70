package render_test

import (
	"testing"

	"github.com/goliatone/go-formgen-theme/pkg/render"
)

func TestValueAt(t *testing.T) {
	values := map[string]any{
		"name": "api",
		"service": map[string]any{
			"env": map[string]string{"DEBUG": "true"},
			"ports": []any{
				map[string]any{"number": 80},
			},
		},
		"flat.key": "flat",
	}

	cases := []struct {
		path string
		want any
		ok   bool
	}{
		{path: "name", want: "api", ok: true},
		{path: "service.env.DEBUG", want: "true", ok: true},
		{path: "service.ports.0.number", want: 80, ok: true},
		{path: "flat.key", want: "flat", ok: true},
		{path: "service.ports.3", ok: false},
		{path: "service.missing", ok: false},
		{path: "name.deeper", ok: false},
		{path: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := render.ValueAt(values, tc.path)
		if ok != tc.ok {
			t.Fatalf("ValueAt(%q) ok = %v, want %v", tc.path, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ValueAt(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestJoinPath(t *testing.T) {
	if got := render.JoinPath("", "env"); got != "env" {
		t.Fatalf("join root = %q", got)
	}
	if got := render.JoinPath("service", "env"); got != "service.env" {
		t.Fatalf("join nested = %q", got)
	}
	if got := render.JoinPath("service", " "); got != "service" {
		t.Fatalf("join blank = %q", got)
	}
}
