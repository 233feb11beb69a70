package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formgen-theme/pkg/model"
)

// Built-in widget identifiers exposed by the registry. Themes bind renderers
// to these names.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
	WidgetEnvVars  = "env-vars"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority. The latest
// registration of a duplicate name wins only through priority/order.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints are honoured
// before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Resolved names are written to
// UIHints["widget"] unless a hint is already present. Fields carrying a
// UIHints["field"] override are left alone; the field role owns them.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		decorated[idx] = r.decorateField(field)
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	if field.Hint("field") == "" {
		if widget, ok := r.Resolve(field); ok && widget != "" {
			if field.UIHints == nil {
				field.UIHints = make(map[string]string)
			}
			if field.UIHints["widget"] == "" {
				field.UIHints["widget"] = widget
			}
		}
	}

	if field.Items != nil {
		item := r.decorateField(*field.Items)
		field.Items = &item
	}
	if len(field.Nested) > 0 {
		field.Nested = r.decorateFields(field.Nested)
	}
	return field
}

func explicitWidget(field model.Field) string {
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
			return widget
		}
	}
	return field.Hint("widget")
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetEnvVars, 90, func(field model.Field) bool {
		return field.IsMap()
	})

	r.Register(WidgetCheckbox, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		if field.Type == model.FieldTypeArray || field.Type == model.FieldTypeObject {
			return false
		}
		return len(field.Enum) > 0
	})

	r.Register(WidgetTextarea, 60, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		return format == "textarea" || format == "multiline"
	})

	r.Register(WidgetText, 10, func(field model.Field) bool {
		switch field.Type {
		case model.FieldTypeString, model.FieldTypeInteger, model.FieldTypeNumber, "":
			return true
		default:
			return false
		}
	})
}
