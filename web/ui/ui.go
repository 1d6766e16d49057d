// Package ui serves the embedded panel console: a single-page client for
// driving a design conversation through the message endpoint.
package ui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/conclave-hq/conclave/pkg/module"
	"github.com/conclave-hq/conclave/pkg/web"
)

//go:embed index.html styles.css app.js
var staticFS embed.FS

// NewModule creates a module that serves the panel console at basePath.
// apiBase is the mounted API prefix the client posts messages to.
func NewModule(basePath, apiBase string) *module.Module {
	router := buildRouter(apiBase)
	return module.New(basePath, router)
}

func buildRouter(apiBase string) http.Handler {
	mux := http.NewServeMux()

	tmpl := template.Must(template.ParseFS(staticFS, "index.html"))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		tmpl.Execute(w, map[string]string{"ApiBase": apiBase})
	})

	mux.HandleFunc("GET /app.js", web.PublicFile(staticFS, ".", "app.js"))
	mux.HandleFunc("GET /styles.css", web.PublicFile(staticFS, ".", "styles.css"))

	return mux
}
