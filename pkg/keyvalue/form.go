package keyvalue

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// FieldName returns the submission name of a row control, e.g.
// `env[2][key]`.
func FieldName(name string, index int, part Part) string {
	return fmt.Sprintf("%s[%d][%s]", name, index, part)
}

// DecodeEntries collects the rows submitted under name, ordered by their row
// index. Gaps left by rows removed client-side are closed up.
func DecodeEntries(values url.Values, name string) []Entry {
	prefix := name + "["
	rows := make(map[int]*Entry)
	for field, submitted := range values {
		rest, ok := strings.CutPrefix(field, prefix)
		if !ok || len(submitted) == 0 {
			continue
		}
		index, part, ok := parseRowField(rest)
		if !ok {
			continue
		}
		entry := rows[index]
		if entry == nil {
			entry = &Entry{}
			rows[index] = entry
		}
		value := submitted[len(submitted)-1]
		switch part {
		case PartKey:
			entry.Key = value
		case PartValue:
			entry.Value = value
		}
	}

	indexes := make([]int, 0, len(rows))
	for index := range rows {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	entries := make([]Entry, 0, len(indexes))
	for _, index := range indexes {
		entries = append(entries, *rows[index])
	}
	return entries
}

// DecodeForm decodes submitted rows and derives the resulting mapping.
func DecodeForm(values url.Values, name string) map[string]string {
	return Derive(DecodeEntries(values, name))
}

// parseRowField parses the `<index>][<part>]` suffix of a row control name.
func parseRowField(rest string) (int, Part, bool) {
	rawIndex, tail, ok := strings.Cut(rest, "][")
	if !ok {
		return 0, "", false
	}
	index, err := strconv.Atoi(rawIndex)
	if err != nil || index < 0 {
		return 0, "", false
	}
	part, ok := strings.CutSuffix(tail, "]")
	if !ok {
		return 0, "", false
	}
	switch Part(part) {
	case PartKey, PartValue:
		return index, Part(part), true
	default:
		return 0, "", false
	}
}
