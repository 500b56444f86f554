package regform

import (
	"io/fs"

	vanilla "github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	fsys := vanilla.TemplatesFS()
	return fsys
}

// AssetsFS exposes the stylesheet the HTML renderer links to, so Go
// applications can serve it without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(regform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
