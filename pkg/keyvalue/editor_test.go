package keyvalue_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-theme/pkg/keyvalue"
)

type recorder struct {
	calls []map[string]string
}

func (r *recorder) onChange(m map[string]string) {
	r.calls = append(r.calls, m)
}

func (r *recorder) last(t *testing.T) map[string]string {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatalf("expected at least one onChange call")
	}
	return r.calls[len(r.calls)-1]
}

func TestNew_ProjectsMappingInKeyOrder(t *testing.T) {
	editor := keyvalue.New(keyvalue.Props{
		Value: map[string]string{"DEBUG": "true", "API_KEY": "abc"},
	})

	want := []keyvalue.Entry{
		{Key: "API_KEY", Value: "abc"},
		{Key: "DEBUG", Value: "true"},
	}
	if diff := cmp.Diff(want, editor.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_MalformedInputIsEmpty(t *testing.T) {
	cases := map[string]any{
		"nil":       nil,
		"string":    "API_KEY=abc",
		"slice":     []any{"a"},
		"int map":   map[string]int{"A": 1},
		"nil map":   map[string]string(nil),
		"number":    42,
		"bool":      true,
		"struct":    struct{ A string }{A: "x"},
		"any slice": []map[string]string{{"A": "1"}},
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			editor := keyvalue.New(keyvalue.Props{Value: value})
			if editor.Len() != 0 {
				t.Fatalf("expected no rows, got %d", editor.Len())
			}
			if got := editor.Mapping(); len(got) != 0 {
				t.Fatalf("expected empty mapping, got %v", got)
			}
		})
	}
}

func TestNew_AnyMapValuesAreStringified(t *testing.T) {
	editor := keyvalue.New(keyvalue.Props{
		Value: map[string]any{"PORT": 8080, "NAME": "api", "EMPTY": nil},
	})
	want := map[string]string{"PORT": "8080", "NAME": "api", "EMPTY": ""}
	if diff := cmp.Diff(want, editor.Mapping()); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestResync_RoundTripDropsBlankKeys(t *testing.T) {
	input := map[string]string{
		"API_KEY": "abc",
		"   ":     "ignored",
		"":        "also ignored",
		"DEBUG":   "",
	}
	editor := keyvalue.New(keyvalue.Props{})
	editor.Resync(input)

	want := map[string]string{"API_KEY": "abc", "DEBUG": ""}
	if diff := cmp.Diff(want, editor.Mapping()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if editor.Len() != 4 {
		t.Fatalf("blank-key rows should stay visible, got %d rows", editor.Len())
	}
}

func TestAddThenRemove_IsNoOpOnMapping(t *testing.T) {
	rec := &recorder{}
	editor := keyvalue.New(keyvalue.Props{
		Value:    map[string]string{"A": "1", "B": "2"},
		OnChange: rec.onChange,
	})
	before := editor.Mapping()

	if !editor.Add() {
		t.Fatalf("add should succeed")
	}
	if editor.Len() != 3 {
		t.Fatalf("expected 3 rows after add, got %d", editor.Len())
	}
	if diff := cmp.Diff(before, rec.last(t)); diff != "" {
		t.Fatalf("adding a blank row changed the mapping (-want +got):\n%s", diff)
	}

	if !editor.Remove(editor.Len() - 1) {
		t.Fatalf("remove should succeed")
	}
	if diff := cmp.Diff(before, rec.last(t)); diff != "" {
		t.Fatalf("add+remove changed the mapping (-want +got):\n%s", diff)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("expected exactly one notification per mutation, got %d", len(rec.calls))
	}
}

func TestSetKeyBlank_RemovesOnlyThatContribution(t *testing.T) {
	rec := &recorder{}
	editor := keyvalue.New(keyvalue.Props{
		Value:    map[string]string{"A": "1", "B": "2", "C": "3"},
		OnChange: rec.onChange,
	})

	editor.Set(1, keyvalue.PartKey, "")

	want := map[string]string{"A": "1", "C": "3"}
	if diff := cmp.Diff(want, rec.last(t)); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	if editor.Len() != 3 {
		t.Fatalf("blanked row should remain, got %d rows", editor.Len())
	}
}

func TestSet_TrimsKeysButNotValues(t *testing.T) {
	rec := &recorder{}
	editor := keyvalue.New(keyvalue.Props{OnChange: rec.onChange})
	editor.Add()
	editor.Set(0, keyvalue.PartKey, "  NAME  ")
	editor.Set(0, keyvalue.PartValue, " spaced ")

	want := map[string]string{"NAME": " spaced "}
	if diff := cmp.Diff(want, rec.last(t)); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	if got := editor.Entries()[0].Key; got != "  NAME  " {
		t.Fatalf("row key should keep what was typed, got %q", got)
	}
}

func TestUpdate_NewMappingClearsRows(t *testing.T) {
	editor := keyvalue.New(keyvalue.Props{Value: map[string]string{"A": "1"}})
	if editor.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", editor.Len())
	}

	if !editor.Update(keyvalue.Props{Value: map[string]string{}}) {
		t.Fatalf("expected resync on new mapping")
	}
	if editor.Len() != 0 {
		t.Fatalf("expected rows cleared, got %d", editor.Len())
	}
}

func TestUpdate_EchoedMappingKeepsDraftRows(t *testing.T) {
	var owned map[string]string
	props := keyvalue.Props{
		Value: map[string]string{},
	}
	props.OnChange = func(m map[string]string) { owned = m }
	editor := keyvalue.New(props)

	editor.Add()
	editor.Add()
	editor.Set(1, keyvalue.PartKey, "X")

	props.Value = owned
	if editor.Update(props) {
		t.Fatalf("host echoing the emitted mapping must not resync")
	}
	if editor.Len() != 2 {
		t.Fatalf("draft rows lost, got %d rows", editor.Len())
	}
}

func TestUpdate_ReplacementWithEqualContentsDropsDraftRows(t *testing.T) {
	tests := []struct {
		name    string
		initial map[string]string
		edit    func(*keyvalue.Editor)
		value   map[string]string
		want    []keyvalue.Entry
	}{
		{
			name:    "blank key row",
			initial: map[string]string{},
			edit: func(e *keyvalue.Editor) {
				e.Add()
			},
			value: map[string]string{},
			want:  nil,
		},
		{
			name:    "duplicate key row",
			initial: map[string]string{"A": "1"},
			edit: func(e *keyvalue.Editor) {
				e.Add()
				e.Set(1, keyvalue.PartKey, "A")
				e.Set(1, keyvalue.PartValue, "2")
				e.Set(1, keyvalue.PartValue, "1")
			},
			value: map[string]string{"A": "1"},
			want:  []keyvalue.Entry{{Key: "A", Value: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			props := keyvalue.Props{Value: tt.initial, OnChange: rec.onChange}
			editor := keyvalue.New(props)
			tt.edit(editor)
			if diff := cmp.Diff(tt.value, rec.last(t)); diff != "" {
				t.Fatalf("emitted mapping mismatch (-want +got):\n%s", diff)
			}

			props.Value = tt.value
			if !editor.Update(props) {
				t.Fatalf("expected a replacement mapping to resync")
			}
			if diff := cmp.Diff(tt.want, editor.Entries()); diff != "" {
				t.Fatalf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate_SameSuppliedMapDoesNotResync(t *testing.T) {
	owned := map[string]string{"A": "1"}
	props := keyvalue.Props{Value: owned}
	editor := keyvalue.New(props)

	if editor.Update(props) {
		t.Fatalf("re-rendering with the same mapping must not resync")
	}
}

func TestUpdate_InPlaceMutationResyncs(t *testing.T) {
	owned := map[string]string{"A": "1"}
	editor := keyvalue.New(keyvalue.Props{Value: owned})

	owned["B"] = "2"
	if !editor.Update(keyvalue.Props{Value: owned}) {
		t.Fatalf("expected resync after content change")
	}
	want := []keyvalue.Entry{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}}
	if diff := cmp.Diff(want, editor.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestScenario_EditValue(t *testing.T) {
	rec := &recorder{}
	editor := keyvalue.New(keyvalue.Props{
		Value:    map[string]string{"API_KEY": "abc", "DEBUG": "true"},
		OnChange: rec.onChange,
	})
	if editor.Len() != 2 {
		t.Fatalf("expected two rows, got %d", editor.Len())
	}

	editor.Set(0, keyvalue.PartValue, "xyz")

	want := map[string]string{"API_KEY": "xyz", "DEBUG": "true"}
	if diff := cmp.Diff(want, rec.last(t)); diff != "" {
		t.Fatalf("onChange mismatch (-want +got):\n%s", diff)
	}
}

func TestScenario_SecondRowOnly(t *testing.T) {
	rec := &recorder{}
	editor := keyvalue.New(keyvalue.Props{
		Value:    map[string]string{},
		OnChange: rec.onChange,
	})

	editor.Add()
	editor.Add()
	editor.Set(1, keyvalue.PartKey, "X")
	editor.Set(1, keyvalue.PartValue, "1")

	want := map[string]string{"X": "1"}
	if diff := cmp.Diff(want, rec.last(t)); diff != "" {
		t.Fatalf("onChange mismatch (-want +got):\n%s", diff)
	}
	if len(rec.calls) != 4 {
		t.Fatalf("expected one notification per edit, got %d", len(rec.calls))
	}
}

func TestScenario_DuplicateKeysLastWins(t *testing.T) {
	got := keyvalue.Derive([]keyvalue.Entry{
		{Key: "X", Value: "1"},
		{Key: "X", Value: "2"},
	})
	if diff := cmp.Diff(map[string]string{"X": "2"}, got); diff != "" {
		t.Fatalf("derive mismatch (-want +got):\n%s", diff)
	}
}

func TestInert_BlocksMutationsButResyncs(t *testing.T) {
	for _, props := range []keyvalue.Props{
		{Disabled: true},
		{ReadOnly: true},
	} {
		rec := &recorder{}
		props.Value = map[string]string{"A": "1"}
		props.OnChange = rec.onChange
		editor := keyvalue.New(props)

		if !editor.Inert() {
			t.Fatalf("expected inert editor for %+v", props)
		}
		if editor.Add() || editor.Remove(0) || editor.Set(0, keyvalue.PartValue, "2") {
			t.Fatalf("mutations must be inert")
		}
		if len(rec.calls) != 0 {
			t.Fatalf("inert editor notified the host %d times", len(rec.calls))
		}

		props.Value = map[string]string{"B": "2"}
		if !editor.Update(props) {
			t.Fatalf("inert editor must still resync")
		}
		if diff := cmp.Diff([]keyvalue.Entry{{Key: "B", Value: "2"}}, editor.Entries()); diff != "" {
			t.Fatalf("entries mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRemoveAndSet_OutOfRange(t *testing.T) {
	rec := &recorder{}
	editor := keyvalue.New(keyvalue.Props{
		Value:    map[string]string{"A": "1"},
		OnChange: rec.onChange,
	})
	if editor.Remove(5) || editor.Remove(-1) || editor.Set(3, keyvalue.PartKey, "B") {
		t.Fatalf("out-of-range mutations should report false")
	}
	if editor.Set(0, keyvalue.Part("other"), "x") {
		t.Fatalf("unknown part should report false")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("out-of-range mutations notified the host")
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	editor := keyvalue.New(keyvalue.Props{Value: map[string]string{"A": "1"}})
	entries := editor.Entries()
	entries[0].Key = "mutated"
	if editor.Entries()[0].Key != "A" {
		t.Fatalf("Entries must not expose internal state")
	}
}

func TestElementIDs(t *testing.T) {
	editor := keyvalue.New(keyvalue.Props{ID: "fg-env"})
	if got := editor.LabelID(); got != "fg-env-label" {
		t.Fatalf("label id = %q", got)
	}
	if got := editor.ElementID(keyvalue.PartKey, 2); got != "fg-env-key-2" {
		t.Fatalf("key id = %q", got)
	}
	if got := editor.ElementID(keyvalue.PartValue, 0); got != "fg-env-value-0" {
		t.Fatalf("value id = %q", got)
	}
}
