package keyvalue

import (
	"fmt"
	"maps"
	"reflect"
	"sort"
	"strings"
	"unsafe"
)

// Entry is one editable row.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Part selects which side of an entry an update targets.
type Part string

const (
	PartKey   Part = "key"
	PartValue Part = "value"
)

// Props is the field contract a host hands to the editor on every render.
type Props struct {
	// Value is the current mapping. Anything that is not a string-keyed map
	// (including nil) is treated as an empty mapping.
	Value any
	// Disabled and ReadOnly make every mutation inert.
	Disabled bool
	ReadOnly bool
	// ID prefixes the element handles derived for each row.
	ID string
	// OnChange receives the derived mapping after each successful mutation.
	OnChange func(map[string]string)
}

// Editor keeps an ordered entry list in sync with a host-owned mapping.
// An Editor is not safe for concurrent use.
type Editor struct {
	props   Props
	entries []Entry
	// source identifies the map last observed or emitted; observed holds its
	// contents at that moment.
	source   unsafe.Pointer
	observed map[string]string
}

// New constructs an editor and projects props.Value into rows.
func New(props Props) *Editor {
	e := &Editor{props: props}
	e.Resync(props.Value)
	return e
}

// Update replaces the props and resyncs the rows unless the supplied mapping
// is the exact map last observed or emitted, unchanged. Any other map
// replaces the rows, even one with equal contents, so a host reset drops
// draft rows while an echoed value keeps them. It reports whether a resync
// happened.
func (e *Editor) Update(props Props) bool {
	e.props = props
	if identity(props.Value) == e.source {
		incoming, _ := Normalize(props.Value)
		if maps.Equal(incoming, e.observed) {
			return false
		}
	}
	e.Resync(props.Value)
	return true
}

// Resync replaces the rows with a projection of value. It never merges with
// the current rows.
func (e *Editor) Resync(value any) {
	e.source = identity(value)
	e.observed, _ = Normalize(value)
	e.entries = Project(value)
}

// Entries returns a copy of the current rows.
func (e *Editor) Entries() []Entry {
	return append([]Entry(nil), e.entries...)
}

// Len reports the number of rows.
func (e *Editor) Len() int {
	return len(e.entries)
}

// Mapping derives the mapping represented by the current rows.
func (e *Editor) Mapping() map[string]string {
	return Derive(e.entries)
}

// Inert reports whether mutations are disabled.
func (e *Editor) Inert() bool {
	return e.props.Disabled || e.props.ReadOnly
}

// Add appends an empty row. The derived mapping is unchanged but the host is
// still notified.
func (e *Editor) Add() bool {
	if e.Inert() {
		return false
	}
	e.commit(append(e.Entries(), Entry{}))
	return true
}

// Remove deletes the row at index. Out-of-range indexes are ignored.
func (e *Editor) Remove(index int) bool {
	if e.Inert() || index < 0 || index >= len(e.entries) {
		return false
	}
	next := make([]Entry, 0, len(e.entries)-1)
	next = append(next, e.entries[:index]...)
	next = append(next, e.entries[index+1:]...)
	e.commit(next)
	return true
}

// Set writes the key or value of the row at index, leaving the other rows
// untouched.
func (e *Editor) Set(index int, part Part, value string) bool {
	if e.Inert() || index < 0 || index >= len(e.entries) {
		return false
	}
	next := e.Entries()
	switch part {
	case PartKey:
		next[index].Key = value
	case PartValue:
		next[index].Value = value
	default:
		return false
	}
	e.commit(next)
	return true
}

// LabelID returns the handle of the editor label.
func (e *Editor) LabelID() string {
	return e.props.ID + "-label"
}

// ElementID returns the handle of the key or value control of a row.
func (e *Editor) ElementID(part Part, index int) string {
	return fmt.Sprintf("%s-%s-%d", e.props.ID, part, index)
}

func (e *Editor) commit(next []Entry) {
	e.entries = next
	derived := Derive(next)
	emitted := maps.Clone(derived)
	e.source = identity(emitted)
	e.observed = derived
	if e.props.OnChange != nil {
		e.props.OnChange(emitted)
	}
}

// identity returns the backing pointer of a map value, or nil for anything
// else.
func identity(value any) unsafe.Pointer {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.IsNil() {
		return nil
	}
	return rv.UnsafePointer()
}

// Project converts a mapping into rows ordered by key. Values that are not
// string-keyed maps project to no rows.
func Project(value any) []Entry {
	mapping, ok := Normalize(value)
	if !ok || len(mapping) == 0 {
		return nil
	}
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Entry{Key: key, Value: mapping[key]})
	}
	return entries
}

// Derive builds the mapping represented by entries. Rows whose trimmed key is
// empty are skipped; later rows overwrite earlier ones with the same key.
func Derive(entries []Entry) map[string]string {
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			continue
		}
		out[key] = entry.Value
	}
	return out
}

// Normalize coerces a host value into a mapping. It accepts map[string]string
// and map[string]any (non-string values are formatted with fmt.Sprint, nil
// becomes ""). Other inputs yield an empty mapping and false.
func Normalize(value any) (map[string]string, bool) {
	switch typed := value.(type) {
	case map[string]string:
		if typed == nil {
			return map[string]string{}, false
		}
		return maps.Clone(typed), true
	case map[string]any:
		if typed == nil {
			return map[string]string{}, false
		}
		out := make(map[string]string, len(typed))
		for key, raw := range typed {
			switch v := raw.(type) {
			case nil:
				out[key] = ""
			case string:
				out[key] = v
			default:
				out[key] = fmt.Sprint(v)
			}
		}
		return out, true
	default:
		return map[string]string{}, false
	}
}
