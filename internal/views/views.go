package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

// Layout wraps every page.
const Layout = "layouts/main"

//go:embed templates
var templatesFS embed.FS

// NewEngine returns the fiber view engine backed by the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
