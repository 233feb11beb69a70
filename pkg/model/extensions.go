package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// ExtensionNamespace is the vendor extension prefix recognised on schemas.
const ExtensionNamespace = "x-formgen"

var uiHintKeys = map[string]struct{}{
	"cssClass":         {},
	"disabled":         {},
	"field":            {},
	"helpText":         {},
	"hideLabel":        {},
	"keyPlaceholder":   {},
	"label":            {},
	"placeholder":      {},
	"readonly":         {},
	"valuePlaceholder": {},
	"widget":           {},
}

// AllowedUIHintKeys returns the sorted UI hint keys lifted out of extensions.
func AllowedUIHintKeys() []string {
	keys := make([]string, 0, len(uiHintKeys))
	for key := range uiHintKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ParseUIExtensions extracts metadata and UI hints from `x-formgen` (an
// object) and `x-formgen-<key>` (scalar) extensions. Every canonicalised value
// lands in metadata; recognised keys are also copied into UI hints. Nil maps
// are returned when nothing applies.
func ParseUIExtensions(ext map[string]any) (map[string]string, map[string]string) {
	if len(ext) == 0 {
		return nil, nil
	}
	metadata := make(map[string]string)
	hints := make(map[string]string)

	assign := func(key string, value any) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		canonical, ok := CanonicalizeExtensionValue(value)
		if !ok {
			return
		}
		metadata[key] = canonical
		if _, allowed := uiHintKeys[key]; allowed {
			hints[key] = canonical
		}
	}

	if nested, ok := ext[ExtensionNamespace].(map[string]any); ok {
		for key, value := range nested {
			assign(key, value)
		}
	}
	for key, value := range ext {
		if suffix, ok := strings.CutPrefix(key, ExtensionNamespace+"-"); ok {
			assign(suffix, value)
		}
	}

	if len(metadata) == 0 {
		metadata = nil
	}
	if len(hints) == 0 {
		hints = nil
	}
	return metadata, hints
}

// CanonicalizeExtensionValue turns an extension value into a renderer-friendly
// string. Returns false for empty or unsupported values.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case map[string]any, []any:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" {
			return "", false
		}
		return string(payload), true
	default:
		return "", false
	}
}
