// Package views holds the embedded HTML templates and the Fiber views engine.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Engine returns the HTML template engine over the embedded templates.
// Template names are the base filenames without extension (e.g. "compressor").
func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// The subtree is embedded at compile time; this cannot fail at runtime.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
