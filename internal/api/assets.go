package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

const assetDir = "assets"

// AssetHandler serves static asset files referenced by documents
// (thumbnails, images). Assets live under <content>/assets, are served
// from the site root at /assets/{filename}, and are read-only over HTTP.
type AssetHandler struct {
	contentRoot string
}

// NewAssetHandler creates a handler rooted at the content directory.
func NewAssetHandler(contentRoot string) *AssetHandler {
	return &AssetHandler{contentRoot: contentRoot}
}

func (h *AssetHandler) assetPath() string {
	return filepath.Join(h.contentRoot, assetDir)
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the absolute path under the assets dir.
func (h *AssetHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.assetPath(), cleaned)
	if !strings.HasPrefix(abs, h.assetPath()+string(os.PathSeparator)) && abs != h.assetPath() {
		return "", fmt.Errorf("path escapes assets directory")
	}
	return abs, nil
}

// ServeFile handles GET /assets/{filename}.
func (h *AssetHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
