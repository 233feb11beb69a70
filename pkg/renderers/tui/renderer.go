package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-theme/pkg/model"
	"github.com/goliatone/go-formgen-theme/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions. Prompts
// run through a PromptDriver and the collected values are serialized in the
// configured output format.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		r.driver = driver
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// session carries per-Render state.
type session struct {
	state *State
	rules map[string]validationRules
	inert bool
}

// Render prompts for every field in order and serializes the collected
// values. Prefilled values become prompt defaults.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	s := &session{
		state: NewState(opts.Values, opts.Errors),
		rules: make(map[string]validationRules),
		inert: opts.Disabled || opts.ReadOnly,
	}

	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, field.Name, s); err != nil {
			return nil, err
		}
	}

	values := s.state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, path string, s *session) error {
	for _, msg := range s.state.ErrorsFor(path) {
		if err := r.warn(ctx, fmt.Sprintf("%s: %s", path, msg)); err != nil {
			return err
		}
	}

	if isMapField(field) {
		return r.promptMap(ctx, field, path, s)
	}
	if field.Type != model.FieldTypeObject && field.Type != model.FieldTypeArray && (s.inert || field.Inert()) {
		return r.showInert(ctx, field, path, s)
	}

	switch field.Type {
	case model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, path, s)
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return r.promptNumber(ctx, field, path, s)
	case model.FieldTypeArray:
		return r.promptArray(ctx, field, path, s)
	case model.FieldTypeObject:
		return r.promptObject(ctx, field, path, s)
	default:
		if len(field.Enum) > 0 {
			return r.promptEnum(ctx, field, path, s)
		}
		return r.promptString(ctx, field, path, s)
	}
}

func (r *Renderer) showInert(ctx context.Context, field model.Field, path string, s *session) error {
	value, ok := s.state.GetValue(path)
	if !ok {
		value = field.Default
	}
	if value == nil {
		value = ""
	}
	return r.info(ctx, fmt.Sprintf("%s: %v (read-only)", displayLabel(field), value))
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, path string, s *session) error {
	label := displayLabel(field)
	help := displayHelp(field)

	rules := collectValidationRules(field, path, s.rules)
	defaultVal := defaultStringValue(s.state, path, field.Default)

	usePassword := field.Format == "password" || strings.EqualFold(field.Metadata["cli.secret"], "true")
	isTextArea := field.Format == "textarea" || field.Hint("widget") == "textarea"

	for {
		var response string
		var err error
		cfg := InputConfig{
			Message:     label,
			Default:     defaultVal,
			Help:        help,
			Placeholder: field.Placeholder,
		}
		if usePassword {
			response, err = r.driver.Password(ctx, cfg)
		} else if isTextArea {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: defaultVal,
				Help:    help,
			})
		} else {
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		if !rules.required && strings.TrimSpace(response) == "" {
			return s.state.SetValue(path, response)
		}

		if err := rules.validateString(response); err != nil {
			if werr := r.warn(ctx, fmt.Sprintf("Invalid %s: %v", path, err)); werr != nil {
				return werr
			}
			continue
		}

		return s.state.SetValue(path, response)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, path string, s *session) error {
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultBoolValue(s.state, path, field.Default),
		Help:    displayHelp(field),
	})
	if err != nil {
		return err
	}
	return s.state.SetValue(path, resp)
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, path string, s *session) error {
	label := displayLabel(field)
	help := displayHelp(field)
	rules := collectValidationRules(field, path, s.rules)
	defaultVal, hasDefault := defaultNumberValue(s.state, path, field.Default, field.Type == model.FieldTypeInteger)
	defaultStr := ""
	if hasDefault {
		defaultStr = fmt.Sprint(defaultVal)
	}

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: defaultStr,
			Help:    help,
		})
		if err != nil {
			return err
		}

		if strings.TrimSpace(input) == "" {
			if rules.required {
				if werr := r.warn(ctx, fmt.Sprintf("Invalid %s: required", path)); werr != nil {
					return werr
				}
				continue
			}
			return s.state.SetValue(path, nil)
		}

		var parsed any
		if field.Type == model.FieldTypeInteger {
			i, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
			if err != nil {
				if werr := r.warn(ctx, fmt.Sprintf("Invalid %s: %v", path, err)); werr != nil {
					return werr
				}
				continue
			}
			parsed = i
		} else {
			f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
			if err != nil {
				if werr := r.warn(ctx, fmt.Sprintf("Invalid %s: %v", path, err)); werr != nil {
					return werr
				}
				continue
			}
			parsed = f
		}

		if err := rules.validateNumber(parsed); err != nil {
			if werr := r.warn(ctx, fmt.Sprintf("Invalid %s: %v", path, err)); werr != nil {
				return werr
			}
			continue
		}

		return s.state.SetValue(path, parsed)
	}
}

func (r *Renderer) promptEnum(ctx context.Context, field model.Field, path string, s *session) error {
	options := stringifyEnum(field.Enum)
	defaultIdx := -1
	if v, ok := s.state.GetValue(path); ok {
		if found := indicesOf(options, []string{fmt.Sprint(v)}); len(found) > 0 {
			defaultIdx = found[0]
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         displayHelp(field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			if werr := r.warn(ctx, fmt.Sprintf("Invalid %s selection", path)); werr != nil {
				return werr
			}
			continue
		}
		return s.state.SetValue(path, options[idx])
	}
}

func (r *Renderer) promptArray(ctx context.Context, field model.Field, path string, s *session) error {
	rules := collectValidationRules(field, path, s.rules)

	// Enum-backed arrays become a multi-select of the known options.
	if field.Items != nil && len(field.Items.Enum) > 0 {
		options := stringifyEnum(field.Items.Enum)
		defaults := indicesOf(options, stringifySlice(coerceAnySlice(valueOrNil(s.state, path))))

		for {
			indices, err := r.driver.MultiSelect(ctx, SelectConfig{
				Message:  displayLabel(field),
				Options:  options,
				Defaults: defaults,
				Help:     displayHelp(field),
			})
			if err != nil {
				return err
			}
			selected := toAnySlice(valuesFromIndices(options, indices))
			if err := rules.validateArray(selected); err != nil {
				if werr := r.warn(ctx, fmt.Sprintf("Invalid %s: %v", path, err)); werr != nil {
					return werr
				}
				continue
			}
			return s.state.SetValue(path, selected)
		}
	}

	if field.Items == nil {
		return fmt.Errorf("tui: array field %s missing items schema", path)
	}

	existing := coerceAnySlice(valueOrNil(s.state, path))
	if err := s.state.SetValue(path, []any{}); err != nil {
		return err
	}
	if len(existing) == 0 && !rules.required {
		add, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add %s items?", displayLabel(field)),
		})
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
	}

	var items []any
	for idx := 0; ; idx++ {
		itemPath := render.JoinPath(path, strconv.Itoa(idx))
		if idx < len(existing) {
			if err := s.state.SetValue(itemPath, existing[idx]); err != nil {
				return err
			}
		}
		if err := r.promptField(ctx, *field.Items, itemPath, s); err != nil {
			return err
		}
		items = append(items, valueOrNil(s.state, itemPath))

		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add another?",
			Default: idx+1 < len(existing),
		})
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	if err := rules.validateArray(items); err != nil {
		return fmt.Errorf("tui: %s: %w", path, err)
	}
	return s.state.SetValue(path, items)
}

func (r *Renderer) promptObject(ctx context.Context, field model.Field, path string, s *session) error {
	for _, child := range field.Nested {
		if err := r.promptField(ctx, child, render.JoinPath(path, child.Name), s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) warn(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.Metadata["cli.help"]; h != "" {
		return h
	}
	if h := field.Hint("helpText"); h != "" {
		return h
	}
	return field.Description
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func valuesFromIndices(options []string, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}

func stringifySlice(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func coerceAnySlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		return toAnySlice(v)
	default:
		return nil
	}
}

func valueOrNil(state *State, path string) any {
	value, _ := state.GetValue(path)
	return value
}

func defaultStringValue(state *State, path string, def any) string {
	if v, ok := state.GetValue(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if s, ok := def.(string); ok {
		return s
	}
	return ""
}

func defaultBoolValue(state *State, path string, def any) bool {
	if v, ok := state.GetValue(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	if b, ok := def.(bool); ok {
		return b
	}
	return false
}

func defaultNumberValue(state *State, path string, def any, integer bool) (any, bool) {
	if v, ok := state.GetValue(path); ok {
		switch t := v.(type) {
		case int, int64, float64:
			return t, true
		}
	}
	switch t := def.(type) {
	case int, int64, float64:
		if integer {
			switch num := t.(type) {
			case int:
				return int64(num), true
			case int64:
				return num, true
			case float64:
				return int64(num), true
			}
		}
		return t, true
	}
	return nil, false
}
