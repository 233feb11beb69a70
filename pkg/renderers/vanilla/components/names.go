package components

// Canonical component names registered by NewDefaultRegistry. They match the
// widget names resolved by pkg/widgets.
const (
	NameText     = "text"
	NameTextarea = "textarea"
	NameSelect   = "select"
	NameCheckbox = "checkbox"
	NameEnvVars  = "env-vars"
)

// Partial keys components look up in theme partial overrides.
const (
	PartialInput    = "forms.input"
	PartialTextarea = "forms.textarea"
	PartialSelect   = "forms.select"
	PartialCheckbox = "forms.checkbox"
	PartialEnvVars  = "forms.env-vars"
)
