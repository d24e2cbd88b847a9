// Package view renders the small server-side HTML surface: the sign-in
// page, the public blog, and the error pages. Everything else is JSON.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates. It panics on a parse error since the
// templates are compiled into the binary.
func New() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Render writes the named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// LoginData feeds the sign-in page.
type LoginData struct {
	Error string
	Email string
}

// ErrorData feeds the error pages.
type ErrorData struct {
	Status  int
	Message string
}
