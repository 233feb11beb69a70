package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-formgen-theme/pkg/keyvalue"
	"github.com/goliatone/go-formgen-theme/pkg/model"
)

// Default copy of the environment-variable editor. Fields override the title
// through their label and the placeholders through UI hints.
const (
	EnvVarsTitle            = keyvalue.DefaultTitle
	EnvVarsKeyPlaceholder   = keyvalue.KeyPlaceholder
	EnvVarsValuePlaceholder = keyvalue.ValuePlaceholder
	EnvVarsRemoveLabel      = keyvalue.RemoveLabel
	EnvVarsAddLabel         = keyvalue.AddLabel
)

// EnvVarsScript wires the client-side add and remove buttons of every
// rendered env-vars editor. Rows are renumbered after each change so the
// submitted names stay dense.
const EnvVarsScript = `(function(){
  function renumber(root){
    var rows = root.querySelectorAll('[data-kv-row]');
    var id = root.getAttribute('data-kv-id');
    var name = root.getAttribute('data-kv-name');
    rows.forEach(function(row, i){
      ['key','value'].forEach(function(part){
        var input = row.querySelector('[data-kv-part="'+part+'"]');
        if (!input) { return; }
        input.id = id+'-'+part+'-'+i;
        input.name = name+'['+i+']['+part+']';
      });
    });
  }
  document.addEventListener('click', function(event){
    var button = event.target.closest('[data-kv-action]');
    if (!button) { return; }
    var root = button.closest('[data-kv-editor]');
    if (!root || root.hasAttribute('data-kv-inert')) { return; }
    if (button.getAttribute('data-kv-action') === 'add') {
      var tpl = root.querySelector('template[data-kv-template]');
      root.querySelector('[data-kv-rows]').appendChild(tpl.content.cloneNode(true));
    } else {
      button.closest('[data-kv-row]').remove();
    }
    renumber(root);
  });
})();`

// EnvVarsDescriptor builds the env-vars component. The descriptor owns its
// label because the editor is a group of controls, not a single input.
func EnvVarsDescriptor(defaultTemplate string) Descriptor {
	return Descriptor{
		Renderer:  envVarsRenderer(defaultTemplate),
		OwnsLabel: true,
		Scripts:   []Script{{Inline: EnvVarsScript}},
	}
}

func envVarsRenderer(defaultTemplate string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", defaultTemplate)
		}

		editor := keyvalue.New(keyvalue.Props{
			Value:    data.Value,
			Disabled: data.Disabled,
			ReadOnly: data.ReadOnly,
			ID:       data.ID,
		})

		resolved := data.Partial(PartialEnvVars, defaultTemplate)
		rendered, err := data.Template.RenderTemplate(resolved, EnvVarsPayload(field, data, editor))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// EnvVarsPayload exposes the editor rows and copy to a template.
func EnvVarsPayload(field model.Field, data ComponentData, editor *keyvalue.Editor) map[string]any {
	entries := editor.Entries()
	rows := make([]any, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, map[string]any{
			"index":      i,
			"key":        entry.Key,
			"value":      entry.Value,
			"key_id":     editor.ElementID(keyvalue.PartKey, i),
			"value_id":   editor.ElementID(keyvalue.PartValue, i),
			"key_name":   keyvalue.FieldName(data.Path, i, keyvalue.PartKey),
			"value_name": keyvalue.FieldName(data.Path, i, keyvalue.PartValue),
		})
	}

	title := field.Label
	if title == "" {
		title = EnvVarsTitle
	}

	return map[string]any{
		"field":             field,
		"id":                data.ID,
		"name":              data.Path,
		"label":             title,
		"label_id":          editor.LabelID(),
		"description":       field.Description,
		"required":          field.Required,
		"rows":              rows,
		"disabled":          data.Disabled,
		"readonly":          data.ReadOnly,
		"inert":             editor.Inert(),
		"errors":            stringsToAny(data.Errors),
		"classes":           sanitizeClassList(field.Hint("cssClass")),
		"key_placeholder":   firstNonEmpty(field.Hint("keyPlaceholder"), EnvVarsKeyPlaceholder),
		"value_placeholder": firstNonEmpty(field.Hint("valuePlaceholder"), EnvVarsValuePlaceholder),
		"remove_label":      EnvVarsRemoveLabel,
		"add_label":         EnvVarsAddLabel,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
