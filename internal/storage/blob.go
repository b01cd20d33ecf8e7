package storage

import (
	"errors"
	"io"
)

var (
	ErrBadKey  = errors.New("invalid blob key")
	ErrNotBlob = errors.New("key does not name a file")
)

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	URL(key string) string // public path the HTTP layer serves the key under
}
