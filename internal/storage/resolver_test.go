package storage

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newResolver(t *testing.T) (*ImageResolver, *FSStore) {
	t.Helper()
	fs, err := NewFSStore(t.TempDir(), "/images")
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	return NewImageResolver(fs, "", log.New(io.Discard, "", 0)), fs
}

func readAll(t *testing.T, a *Asset) []byte {
	t.Helper()
	defer a.Close()
	b, err := io.ReadAll(a)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return b
}

func TestResolverServesStoredImage(t *testing.T) {
	r, fs := newResolver(t)
	if _, err := fs.Put("subs/Pepe.png", strings.NewReader("pepe")); err != nil {
		t.Fatalf("put: %v", err)
	}
	a := r.Open("subs/Pepe.png")
	if a.Placeholder || a.ContentType != "image/png" {
		t.Fatalf("asset = %+v", a)
	}
	if got := readAll(t, a); string(got) != "pepe" {
		t.Fatalf("body = %q", got)
	}
}

func TestResolverFallsBackToPlaceholder(t *testing.T) {
	r, fs := newResolver(t)
	if _, err := fs.Put("subs/pepe.png", strings.NewReader("pepe")); err != nil {
		t.Fatalf("put: %v", err)
	}
	for _, key := range []string{"", "missing.png", "../secret.txt", "subs/../../x.png", "subs", "subs/"} {
		a := r.Open(key)
		if !a.Placeholder {
			t.Fatalf("key %q: expected placeholder", key)
		}
		if got := readAll(t, a); !bytes.Equal(got, embeddedPlaceholder) {
			t.Fatalf("key %q: placeholder bytes differ", key)
		}
	}
}

func TestResolverPrefersPlaceholderOnDisk(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, PlaceholderKey)
	if err := os.WriteFile(p, []byte("disk-icon"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs, _ := NewFSStore(t.TempDir(), "/images")
	r := NewImageResolver(fs, p, log.New(io.Discard, "", 0))
	if got := readAll(t, r.Open("nope.png")); string(got) != "disk-icon" {
		t.Fatalf("body = %q", got)
	}
}

func TestFSStoreGetRejectsDirectory(t *testing.T) {
	_, fs := newResolver(t)
	if _, err := fs.Put("subs/pepe.png", strings.NewReader("pepe")); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Get("subs"); err != ErrNotBlob {
		t.Fatalf("directory err = %v", err)
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	_, fs := newResolver(t)
	if _, err := fs.Put("../escape.png", strings.NewReader("x")); err != ErrBadKey {
		t.Fatalf("put traversal err = %v", err)
	}
	if _, err := fs.Get("/"); err != ErrBadKey {
		t.Fatalf("get root err = %v", err)
	}
}

func TestURL(t *testing.T) {
	r, _ := newResolver(t)
	if got := r.URL("subs/Big John.png"); got != "/images/subs/Big%20John.png" {
		t.Fatalf("url = %q", got)
	}
	if got := r.URL(""); got != "/icon.png" {
		t.Fatalf("empty url = %q", got)
	}
}
