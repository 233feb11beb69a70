package render

import (
	"context"

	"github.com/goliatone/go-formgen-theme/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, collected
// terminal answers, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
