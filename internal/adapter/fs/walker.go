package fs

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"pystub/internal/port"
)

// DefaultIncludes selects Python sources.
var DefaultIncludes = []string{"**/*.py"}

type Walker struct {
	includes []string
	excludes []string
	prune    map[string]bool
	log      *zap.SugaredLogger
}

// NewWalker creates a walker. Excludes are either plain directory names,
// matched against every directory's base name, or doublestar patterns
// matched against the path relative to the root.
func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
		log:      zap.NewNop().Sugar(),
	}
}

// WithLogger sets the logger that reports unreadable entries.
func (w *Walker) WithLogger(log *zap.SugaredLogger) *Walker {
	if log != nil {
		w.log = log
	}
	return w
}

// Prune skips the directories at the given paths relative to the walk root.
// Unlike excludes they match one exact location only.
func (w *Walker) Prune(relDirs ...string) *Walker {
	if w.prune == nil {
		w.prune = make(map[string]bool)
	}
	for _, dir := range relDirs {
		w.prune[filepath.ToSlash(filepath.Clean(dir))] = true
	}
	return w
}

// Walk returns the matching files under root in lexical order. Symbolic
// links are listed, never followed. Entries below root that cannot be read
// are logged and skipped; only a failure on root itself is returned.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "scan root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("scan root %s is not a directory", root)
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.log.Warnw("Cannot read directory entry", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && (w.prune[relPath] || w.shouldExclude(relPath, info.Name())) {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) {
			files = append(files, port.FileInfo{
				Path:   path,
				RelDir: filepath.Dir(filepath.FromSlash(relPath)),
				Name:   info.Name(),
			})
		}

		return nil
	})

	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(relDir, name string) bool {
	for _, pattern := range w.excludes {
		if pattern == name {
			return true
		}
		matched, err := doublestar.Match(pattern, relDir)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// ReadFile returns the contents of a text file such as a stub header.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}
