package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Encoding selects how WriteJSON formats a document.
type Encoding int

const (
	// Compact writes JSON without insignificant whitespace.
	Compact Encoding = iota
	// Indented writes two-space indented JSON.
	Indented
)

// Workspace is a directory of artifacts on a filesystem.
type Workspace struct {
	fs  afero.Fs
	dir string
}

// NewWorkspace returns a workspace rooted at dir.
func NewWorkspace(fs afero.Fs, dir string) *Workspace {
	if dir == "" {
		dir = "."
	}
	return &Workspace{fs: fs, dir: dir}
}

// Fs returns the underlying filesystem.
func (w *Workspace) Fs() afero.Fs {
	return w.fs
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of name inside the workspace. Absolute names are
// returned unchanged.
func (w *Workspace) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(w.dir, name)
}

// Exists reports whether name exists as a regular file.
func (w *Workspace) Exists(name string) bool {
	info, err := w.fs.Stat(w.Path(name))
	return err == nil && !info.IsDir()
}

// Size returns the size of name in bytes.
func (w *Workspace) Size(name string) (int64, error) {
	info, err := w.fs.Stat(w.Path(name))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ReadFile returns the contents of name.
func (w *Workspace) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(w.fs, w.Path(name))
}

// WriteFile writes data to name through a temporary file and a rename, so
// readers never observe a partially written artifact.
func (w *Workspace) WriteFile(name string, data []byte) error {
	return WriteAtomic(w.fs, w.Path(name), data)
}

// WriteAtomic writes data to path on fs through a temporary file and a
// rename, creating parent directories.
func WriteAtomic(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// ReadJSON decodes the JSON document name into v.
func (w *Workspace) ReadJSON(name string, v any) error {
	data, err := w.ReadFile(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// WriteJSON encodes v and writes it to name. It returns the encoded bytes.
func (w *Workspace) WriteJSON(name string, v any, enc Encoding) ([]byte, error) {
	data, err := Encode(v, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := w.WriteFile(name, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Copy copies the artifact name to dst, creating parent directories.
func (w *Workspace) Copy(name, dst string) error {
	data, err := w.ReadFile(name)
	if err != nil {
		return err
	}
	return WriteAtomic(w.fs, dst, data)
}

// IsNotExist reports whether err means the artifact is absent.
func IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

// Encode serializes v as JSON. HTML characters are not escaped.
func Encode(v any, enc Encoding) ([]byte, error) {
	var buf bytes.Buffer
	e := json.NewEncoder(&buf)
	e.SetEscapeHTML(false)
	if enc == Indented {
		e.SetIndent("", "  ")
	}
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
