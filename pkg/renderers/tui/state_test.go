package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestState_SetValueBuildsContainers(t *testing.T) {
	state := NewState(nil, nil)
	steps := []struct {
		path  string
		value any
	}{
		{"service.name", "api"},
		{"tags.0", "a"},
		{"tags.1", "b"},
		{"ports.0.number", 80},
		{"env", map[string]string{"A": "1"}},
	}
	for _, step := range steps {
		if err := state.SetValue(step.path, step.value); err != nil {
			t.Fatalf("set %s: %v", step.path, err)
		}
	}

	want := map[string]any{
		"service": map[string]any{"name": "api"},
		"tags":    []any{"a", "b"},
		"ports":   []any{map[string]any{"number": 80}},
		"env":     map[string]string{"A": "1"},
	}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got, ok := state.GetValue("env.A"); !ok || got != "1" {
		t.Fatalf("expected env.A lookup, got %v %v", got, ok)
	}
}

func TestState_ClonesPrefill(t *testing.T) {
	prefill := map[string]any{"env": map[string]string{"A": "1"}}
	state := NewState(prefill, nil)
	if err := state.SetValue("env", map[string]string{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	state.Values()["other"] = true
	if _, ok := prefill["other"]; ok {
		t.Fatal("prefill mutated")
	}
	if len(prefill["env"].(map[string]string)) != 1 {
		t.Fatal("prefill map mutated")
	}
}
