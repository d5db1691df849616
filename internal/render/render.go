package render

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer renders a named view with a context mapping.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named view with the given status. The view is executed
// into a buffer first so a template failure can still produce a 500 instead
// of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, view string, data map[string]any) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, view, data); err != nil {
		logger.Log.Errorw("failed to render view", "view", view, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
