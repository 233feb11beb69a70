package keyvalue_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-theme/pkg/keyvalue"
)

func TestFieldName(t *testing.T) {
	if got := keyvalue.FieldName("env", 3, keyvalue.PartValue); got != "env[3][value]" {
		t.Fatalf("field name = %q", got)
	}
}

func TestDecodeEntries_OrdersByIndexAndSkipsNoise(t *testing.T) {
	values := url.Values{
		"env[2][key]":   {"B"},
		"env[2][value]": {"2"},
		"env[0][key]":   {"A"},
		"env[0][value]": {"1"},
		"env[5][value]": {"orphan"},
		"env[x][key]":   {"bad index"},
		"env[1][other]": {"bad part"},
		"other[0][key]": {"Z"},
		"environment":   {"unrelated"},
		"env[-1][key]":  {"negative"},
		"env[7][key]":   {},
	}

	want := []keyvalue.Entry{
		{Key: "A", Value: "1"},
		{Key: "B", Value: "2"},
		{Key: "", Value: "orphan"},
	}
	if diff := cmp.Diff(want, keyvalue.DecodeEntries(values, "env")); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeForm_DerivesMapping(t *testing.T) {
	values := url.Values{}
	values.Set(keyvalue.FieldName("env", 0, keyvalue.PartKey), " X ")
	values.Set(keyvalue.FieldName("env", 0, keyvalue.PartValue), "1")
	values.Set(keyvalue.FieldName("env", 1, keyvalue.PartKey), "X")
	values.Set(keyvalue.FieldName("env", 1, keyvalue.PartValue), "2")
	values.Set(keyvalue.FieldName("env", 2, keyvalue.PartKey), "")
	values.Set(keyvalue.FieldName("env", 2, keyvalue.PartValue), "dropped")

	want := map[string]string{"X": "2"}
	if diff := cmp.Diff(want, keyvalue.DecodeForm(values, "env")); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}
