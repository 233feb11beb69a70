package vanilla

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla/components"
)

// Partial keys of the layout templates. Components use their own keys, see
// the components package.
const (
	PartialForm   = "forms.form"
	PartialField  = "forms.field"
	PartialObject = "forms.object"
	PartialArray  = "forms.array"
)

const (
	defaultFormTemplate   = "templates/form.tmpl"
	defaultFieldTemplate  = "templates/field.tmpl"
	defaultObjectTemplate = "templates/object.tmpl"
	defaultArrayTemplate  = "templates/array.tmpl"
)

var descriptionPolicy = newDescriptionPolicy()

// newDescriptionPolicy allows the inline formatting schema authors commonly
// put in descriptions and strips everything else.
func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("b", "strong", "i", "em", "code", "br", "span")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func sanitizeDescription(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return descriptionPolicy.Sanitize(value)
}

func componentControlID(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return "fg-" + strings.NewReplacer(".", "-", "[", "-", "]", "").Replace(trimmed)
}

func componentLabelID(path string) string {
	controlID := componentControlID(path)
	if controlID == "" {
		return ""
	}
	return controlID + "-label"
}

func shouldRenderLabel(label string, hideLabel string) bool {
	if strings.TrimSpace(label) == "" {
		return false
	}
	return strings.TrimSpace(hideLabel) != "true"
}

func mergePartials(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			if value = strings.TrimSpace(value); value != "" {
				out[key] = value
			}
		}
	}
	return out
}

// DefaultPartials returns the embedded template path of every layout and
// component partial key. Theme selections use it as their fallback layer.
func DefaultPartials() map[string]string {
	partials := components.DefaultPartials()
	partials[PartialForm] = defaultFormTemplate
	partials[PartialField] = defaultFieldTemplate
	partials[PartialObject] = defaultObjectTemplate
	partials[PartialArray] = defaultArrayTemplate
	return partials
}
