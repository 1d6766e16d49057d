// Package web provides helpers for serving embedded static assets.
package web

import (
	"bytes"
	"embed"
	"net/http"
	"path"
	"time"
)

// PublicFile returns a handler that serves a single file from an embedded filesystem.
func PublicFile(fsys embed.FS, subdir, filename string) http.HandlerFunc {
	filePath := path.Join(subdir, filename)
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fsys.ReadFile(filePath)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, filename, time.Time{}, bytes.NewReader(data))
	}
}
