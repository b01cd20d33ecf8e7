package storage

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type FSStore struct {
	base   string
	prefix string
}

// NewFSStore roots the store at base; URLs are built under prefix (e.g. "/images").
func NewFSStore(base, prefix string) (*FSStore, error) {
	if base == "" {
		base = "./public/images"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base, prefix: strings.TrimSuffix(prefix, "/")}, nil
}

// resolve maps a slash-separated key to a path under base, refusing keys
// that would escape it.
func (s *FSStore) resolve(key string) (string, error) {
	if key == "" || strings.ContainsRune(key, 0) {
		return "", ErrBadKey
	}
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if clean == "/" || strings.Contains(key, "..") {
		return "", ErrBadKey
	}
	return filepath.Join(s.base, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, ErrNotBlob
	}
	return f, nil
}

func (s *FSStore) URL(key string) string {
	if key == "" {
		return ""
	}
	u := url.URL{Path: s.prefix + "/" + strings.TrimPrefix(key, "/")}
	return u.EscapedPath()
}
