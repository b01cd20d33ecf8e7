package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DirWriter saves data documents into a local directory, the same one a
// DirSource reads from.
type DirWriter struct{ Dir string }

// Write encodes v as indented JSON and replaces name atomically.
func (d DirWriter) Write(name string, v any) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid document name %q", name)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.Dir, "."+name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(d.Dir, name))
}
