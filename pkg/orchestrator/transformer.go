package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgen-theme/pkg/model"
)

// Transformer mutates a FormModel before decorators run. Implementations can
// rename fields, inject metadata, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a YAML (or
// JSON) document. Field patches are keyed by dotted path; "items" descends
// into array elements:
//
//	metadata:
//	  endpoint: /services
//	fields:
//	  env:
//	    label: Runtime environment
//	    uiHints:
//	      keyPlaceholder: NAME
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title    string                `yaml:"title"`
	Metadata map[string]string     `yaml:"metadata"`
	Fields   map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Placeholder string            `yaml:"placeholder"`
	Rename      string            `yaml:"rename"`
	Required    *bool             `yaml:"required"`
	ReadOnly    *bool             `yaml:"readOnly"`
	Metadata    map[string]string `yaml:"metadata"`
	UIHints     map[string]string `yaml:"uiHints"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied form.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		form.Title = t.document.Title
	}
	if len(t.document.Metadata) > 0 {
		form.Metadata = mergeStringMap(form.Metadata, t.document.Metadata)
		if endpoint := t.document.Metadata["endpoint"]; endpoint != "" {
			form.Endpoint = endpoint
		}
		if method := t.document.Metadata["method"]; method != "" {
			form.Method = strings.ToUpper(method)
		}
	}

	for path, patch := range t.document.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		field := findFieldByPath(form.Fields, path)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", path)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPatch) {
	if field == nil {
		return
	}
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.ReadOnly != nil {
		field.ReadOnly = *patch.ReadOnly
	}
	if len(patch.Metadata) > 0 {
		field.Metadata = mergeStringMap(field.Metadata, patch.Metadata)
	}
	if len(patch.UIHints) > 0 {
		field.UIHints = mergeStringMap(field.UIHints, patch.UIHints)
	}
	if strings.TrimSpace(patch.Rename) != "" {
		field.Name = strings.TrimSpace(patch.Rename)
	}
}

func findFieldByPath(fields []model.Field, path string) *model.Field {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	segments := strings.Split(path, ".")
	return walkFieldsByPath(fields, segments)
}

func walkFieldsByPath(fields []model.Field, segments []string) *model.Field {
	if len(segments) == 0 {
		return nil
	}
	head := segments[0]
	for idx := range fields {
		field := &fields[idx]
		if field.Name != head {
			continue
		}
		if len(segments) == 1 {
			return field
		}
		if segments[1] == "items" {
			return descendArray(field, segments[2:])
		}
		return walkFieldsByPath(field.Nested, segments[1:])
	}
	return nil
}

func descendArray(field *model.Field, segments []string) *model.Field {
	if field == nil || field.Items == nil {
		return nil
	}
	if len(segments) == 0 {
		return field.Items
	}
	if segments[0] == "items" {
		return descendArray(field.Items, segments[1:])
	}
	return walkFieldsByPath(field.Items.Nested, segments)
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
