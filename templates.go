package formgen

import (
	"io/fs"

	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-theme/pkg/theme/shadcn"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// ThemeTemplates exposes the shadcn template bundle.
func ThemeTemplates() fs.FS {
	return shadcn.TemplatesFS()
}

// ThemeAssetsFS exposes the shadcn stylesheet so applications can serve it
// under the manifest's asset prefix.
//
// Typical mount:
//
//	mux.Handle("/assets/shadcn/",
//	  http.StripPrefix("/assets/shadcn/",
//	    http.FileServerFS(formgen.ThemeAssetsFS()),
//	  ),
//	)
func ThemeAssetsFS() fs.FS {
	return shadcn.AssetsFS()
}
