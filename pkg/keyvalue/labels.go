package keyvalue

// Default copy used by hosts rendering the editor.
const (
	DefaultTitle     = "Environment Variables"
	KeyPlaceholder   = "Variable name"
	ValuePlaceholder = "Variable value"
	RemoveLabel      = "Remove environment variable"
	AddLabel         = "Add Environment Variable"
)
