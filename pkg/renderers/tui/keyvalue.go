package tui

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-formgen-theme/pkg/keyvalue"
	"github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/widgets"
)

// Menu entries of the key/value editing loop.
const (
	mapActionAdd    = "Add variable"
	mapActionEdit   = "Edit variable"
	mapActionRemove = "Remove variable"
	mapActionReset  = "Reset to initial values"
	mapActionDone   = "Done"
)

func isMapField(field model.Field) bool {
	if field.IsMap() {
		return true
	}
	return strings.EqualFold(field.Hint("widget"), widgets.WidgetEnvVars) ||
		strings.EqualFold(field.Hint("field"), widgets.WidgetEnvVars)
}

// promptMap edits a string map through the key/value editor. The session
// state is the host: every change the editor emits is written back and the
// editor is re-rendered with the stored mapping, so echoed values keep draft
// rows while a reset replaces them.
func (r *Renderer) promptMap(ctx context.Context, field model.Field, path string, s *session) error {
	initial, _ := keyvalue.Normalize(valueOrNil(s.state, path))
	if err := s.state.SetValue(path, maps.Clone(initial)); err != nil {
		return err
	}

	inert := s.inert || field.Inert()
	sink := &mapSink{state: s.state, path: path}
	props := keyvalue.Props{
		Value:    maps.Clone(initial),
		Disabled: inert,
		ID:       path,
	}
	props.OnChange = func(next map[string]string) {
		props.Value = next
		sink.store(next)
	}
	editor := keyvalue.New(props)

	if inert {
		return r.info(ctx, fmt.Sprintf("%s: %s (read-only)", mapLabel(field), formatMapping(editor.Mapping())))
	}

	for {
		if sink.err != nil {
			return sink.err
		}
		editor.Update(props)

		actions := []string{mapActionAdd}
		if editor.Len() > 0 {
			actions = append(actions, mapActionEdit, mapActionRemove)
		}
		actions = append(actions, mapActionReset, mapActionDone)

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      fmt.Sprintf("%s (%s)", mapLabel(field), formatMapping(editor.Mapping())),
			Options:      actions,
			DefaultIndex: len(actions) - 1,
			Help:         displayHelp(field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case mapActionAdd:
			editor.Add()
			if err := r.editRow(ctx, editor, editor.Len()-1); err != nil {
				return err
			}
		case mapActionEdit:
			row, err := r.pickRow(ctx, editor, "Edit which variable?")
			if err != nil {
				return err
			}
			if err := r.editRow(ctx, editor, row); err != nil {
				return err
			}
		case mapActionRemove:
			row, err := r.pickRow(ctx, editor, "Remove which variable?")
			if err != nil {
				return err
			}
			editor.Remove(row)
		case mapActionReset:
			props.Value = maps.Clone(initial)
			if err := s.state.SetValue(path, maps.Clone(initial)); err != nil {
				return err
			}
		case mapActionDone:
			if sink.err != nil {
				return sink.err
			}
			if field.Required && len(editor.Mapping()) == 0 {
				if err := r.warn(ctx, fmt.Sprintf("Invalid %s: required", path)); err != nil {
					return err
				}
				continue
			}
			return s.state.SetValue(path, editor.Mapping())
		}
	}
}

// mapSink writes emitted mappings back to the session state and keeps the
// first write error.
type mapSink struct {
	state *State
	path  string
	err   error
}

func (m *mapSink) store(next map[string]string) {
	if m.err != nil {
		return
	}
	if err := m.state.SetValue(m.path, next); err != nil {
		m.err = fmt.Errorf("tui: store %s: %w", m.path, err)
	}
}

func (r *Renderer) editRow(ctx context.Context, editor *keyvalue.Editor, row int) error {
	entry := editor.Entries()[row]
	key, err := r.driver.Input(ctx, InputConfig{
		Message:     keyvalue.KeyPlaceholder,
		Default:     entry.Key,
		Placeholder: keyvalue.KeyPlaceholder,
	})
	if err != nil {
		return err
	}
	editor.Set(row, keyvalue.PartKey, key)

	value, err := r.driver.Input(ctx, InputConfig{
		Message:     keyvalue.ValuePlaceholder,
		Default:     entry.Value,
		Placeholder: keyvalue.ValuePlaceholder,
	})
	if err != nil {
		return err
	}
	editor.Set(row, keyvalue.PartValue, value)
	return nil
}

func (r *Renderer) pickRow(ctx context.Context, editor *keyvalue.Editor, message string) (int, error) {
	entries := editor.Entries()
	options := make([]string, len(entries))
	for i, entry := range entries {
		key := entry.Key
		if strings.TrimSpace(key) == "" {
			key = "(blank)"
		}
		options[i] = fmt.Sprintf("%d. %s=%s", i+1, key, entry.Value)
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: 0,
		})
		if err != nil {
			return 0, err
		}
		if idx >= 0 && idx < len(options) {
			return idx, nil
		}
	}
}

func mapLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return keyvalue.DefaultTitle
}

func formatMapping(mapping map[string]string) string {
	if len(mapping) == 0 {
		return "none"
	}
	entries := keyvalue.Project(mapping)
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = entry.Key + "=" + entry.Value
	}
	return strings.Join(parts, ", ")
}
