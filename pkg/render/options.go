package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use to customise their
// output without mutating the form model.
type RenderOptions struct {
	// Values pre-populates controls using dotted field paths (e.g.
	// "service.env"). String-map fields expect a map[string]string or
	// map[string]any value.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field path.
	Errors map[string][]string
	// Theme carries the resolved theme selection: partial overrides, tokens,
	// CSS variables and an asset resolver.
	Theme *theme.RendererConfig
	// Disabled and ReadOnly make every control of the form inert.
	Disabled bool
	ReadOnly bool
}

// Partial returns the theme override for a partial key, or fallback.
func (o RenderOptions) Partial(key, fallback string) string {
	if o.Theme != nil && o.Theme.Partials != nil {
		if candidate := o.Theme.Partials[key]; candidate != "" {
			return candidate
		}
	}
	return fallback
}
