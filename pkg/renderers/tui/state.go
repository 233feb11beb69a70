package tui

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// State tracks collected values and server-provided errors keyed by dotted
// paths. String maps edited through the key/value editor are stored as
// map[string]string.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	return &State{
		values: cloneValues(prefill),
		errors: cloneErrors(errs),
	}
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Errors returns the current errors map (mutable).
func (s *State) Errors() map[string][]string {
	if s == nil {
		return nil
	}
	return s.errors
}

// ErrorsFor returns the errors attached to a dotted path.
func (s *State) ErrorsFor(path string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[path]
}

// GetValue resolves a dotted path into the values map.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return getPath(s.values, path)
}

// SetValue writes a value using a dotted path, creating intermediate maps/slices
// as needed.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return setPath(s.values, path, value)
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func cloneErrors(src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return make(map[string][]string)
	}
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case map[string]string:
		return maps.Clone(typed)
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func setPath(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("tui: root map is nil")
	}
	if path == "" {
		return nil
	}
	_, err := assign(root, strings.Split(path, "."), value)
	return err
}

// assign writes value at segments below container and returns the updated
// container, since slices may grow.
func assign(container any, segments []string, value any) (any, error) {
	segment, rest := segments[0], segments[1:]
	switch node := container.(type) {
	case map[string]any:
		if len(rest) == 0 {
			node[segment] = value
			return node, nil
		}
		child, err := assign(ensureContainer(node[segment], rest[0]), rest, value)
		if err != nil {
			return nil, err
		}
		node[segment] = child
		return node, nil

	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("tui: expected numeric segment, got %q", segment)
		}
		if idx < 0 {
			return nil, fmt.Errorf("tui: negative index %d", idx)
		}
		if len(node) <= idx {
			node = append(node, make([]any, idx+1-len(node))...)
		}
		if len(rest) == 0 {
			node[idx] = value
			return node, nil
		}
		child, err := assign(ensureContainer(node[idx], rest[0]), rest, value)
		if err != nil {
			return nil, err
		}
		node[idx] = child
		return node, nil

	default:
		return nil, fmt.Errorf("tui: unexpected container for segment %q", segment)
	}
}

func ensureContainer(existing any, next string) any {
	if _, err := strconv.Atoi(next); err == nil {
		if slice, ok := existing.([]any); ok {
			return slice
		}
		return []any{}
	}
	if m, ok := existing.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}
