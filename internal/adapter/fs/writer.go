package fs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"pystub/internal/port"
)

// DefaultMarker is the package marker placed in every output directory.
const DefaultMarker = "__init__.py"

// StubWriter places generated stubs under an output root.
type StubWriter struct {
	root   string
	marker string
	force  bool

	mu sync.Mutex
}

// NewStubWriter creates a writer rooted at root. An empty marker disables
// marker files. With force set, existing stubs are overwritten.
func NewStubWriter(root, marker string, force bool) *StubWriter {
	return &StubWriter{
		root:   root,
		marker: marker,
		force:  force,
	}
}

// EnsureDir creates root/relDir and a marker file in the root and in every
// directory between it and relDir. Repeated calls are no-ops.
func (w *StubWriter) EnsureDir(relDir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Join(w.root, relDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create output directory %s", dir)
	}
	if w.marker == "" {
		return nil
	}

	level := w.root
	if err := touch(filepath.Join(level, w.marker)); err != nil {
		return err
	}
	rel := filepath.Clean(relDir)
	if rel == "." {
		return nil
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		level = filepath.Join(level, part)
		if err := touch(filepath.Join(level, w.marker)); err != nil {
			return err
		}
	}
	return nil
}

// OutputPath returns the destination of a stub.
func (w *StubWriter) OutputPath(relDir, name string) string {
	return filepath.Join(w.root, relDir, name)
}

// Write stores content unless a non-empty file is already there and force
// is off. The directory must exist.
func (w *StubWriter) Write(relDir, name, content string) (port.WriteStatus, error) {
	path := w.OutputPath(relDir, name)

	if !w.force {
		info, err := os.Stat(path)
		if err == nil && info.Size() > 0 {
			return port.StatusExists, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return 0, errors.Wrapf(err, "stat %s", path)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return 0, errors.Wrapf(err, "write %s", path)
	}
	return port.StatusWritten, nil
}

// touch creates an empty file if none exists. An existing file is left as is.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return errors.Wrapf(err, "create %s", path)
	}
	return f.Close()
}
