package storage

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"log"
	"mime"
	"os"
	"path"
	"path/filepath"
)

// PlaceholderKey names the shared fallback image every missing asset resolves to.
const PlaceholderKey = "icon.png"

//go:embed placeholder.png
var embeddedPlaceholder []byte

// Asset is an opened image. Placeholder reports whether the requested key
// was replaced by the shared fallback.
type Asset struct {
	io.ReadCloser
	ContentType string
	Placeholder bool
}

type ImageResolver struct {
	store       BlobStore
	placeholder string // file on disk; empty means embedded bytes only
	logger      *log.Logger
}

func NewImageResolver(store BlobStore, placeholderPath string, logger *log.Logger) *ImageResolver {
	if logger == nil {
		logger = log.Default()
	}
	return &ImageResolver{store: store, placeholder: placeholderPath, logger: logger}
}

// Open returns the image for key, or the placeholder when the key is empty,
// invalid or missing.
func (r *ImageResolver) Open(key string) *Asset {
	if key != "" {
		rc, err := r.store.Get(key)
		if err == nil {
			return &Asset{ReadCloser: rc, ContentType: contentType(key)}
		}
		if errors.Is(err, ErrBadKey) {
			r.logger.Printf("images: refused key %q", key)
		}
	}
	return r.Placeholder()
}

func (r *ImageResolver) Placeholder() *Asset {
	if r.placeholder != "" {
		if f, err := os.Open(r.placeholder); err == nil {
			return &Asset{ReadCloser: f, ContentType: contentType(r.placeholder), Placeholder: true}
		}
	}
	return &Asset{
		ReadCloser:  io.NopCloser(bytes.NewReader(embeddedPlaceholder)),
		ContentType: "image/png",
		Placeholder: true,
	}
}

// URL is the public path for an image key, or the placeholder when the key is empty.
func (r *ImageResolver) URL(key string) string {
	if key == "" {
		return "/" + PlaceholderKey
	}
	return r.store.URL(key)
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(filepath.ToSlash(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
