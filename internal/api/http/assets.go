package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/subtrainer/subtrainer/internal/storage"
)

// MountImages serves GET /* from the resolver; anything missing gets the
// placeholder with a 200.
func MountImages(r chi.Router, images *storage.ImageResolver) {
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(urlParam(r, "*"), "/")
		serveAsset(w, images.Open(key))
	})
}

func PlaceholderHandler(images *storage.ImageResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveAsset(w, images.Placeholder())
	}
}

func serveAsset(w http.ResponseWriter, a *storage.Asset) {
	defer a.Close()
	w.Header().Set("Content-Type", a.ContentType)
	if a.Placeholder {
		w.Header().Set("X-Image-Placeholder", "1")
		w.Header().Set("Cache-Control", "no-cache")
	}
	_, _ = io.Copy(w, a)
}
