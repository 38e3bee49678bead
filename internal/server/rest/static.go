package rest

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/fileshare/internal/filex"
)

// notFound answers unknown routes. With a static directory configured, GET
// requests outside /api are served from it and fall back to index.html so
// client-side routing works.
func notFound(staticDir string) http.HandlerFunc {
	if staticDir == "" {
		return func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "Not found")
		}
	}

	files := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if (r.Method != http.MethodGet && r.Method != http.MethodHead) ||
			r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}

		p := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if filex.Exists(p) {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
