package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the prebuilt frontend bundle, falling back to the
// index document for unmatched paths so client-side routing works.
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a new static file handler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		dir: dir,
	}
}

// Serve handles any non-API path.
func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	requested := strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")

	if requested != "" && requested != "." {
		path := filepath.Join(h.dir, requested)
		// Refuse anything that escapes the bundle directory.
		if strings.HasPrefix(path, h.dir) {
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				http.ServeFile(w, r, path)
				return
			}
		}
	}

	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
