package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "formgen-form"
	ClassHeader   ChromeClass = "formgen-header"
	ClassField    ChromeClass = "formgen-field"
	ClassFieldset ChromeClass = "formgen-fieldset"
	ClassActions  ChromeClass = "formgen-actions"
	ClassErrors   ChromeClass = "formgen-errors"
)

// chromeClasses returns the semantic classes exposed to layout templates as
// `chrome.<key>`.
func chromeClasses() map[string]any {
	return map[string]any{
		"form":     string(ClassForm),
		"header":   string(ClassHeader),
		"field":    string(ClassField),
		"fieldset": string(ClassFieldset),
		"actions":  string(ClassActions),
		"errors":   string(ClassErrors),
	}
}
