package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"go.uber.org/zap"

	"pystub/internal/domain"
)

const sourceExt = ".py"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PythonExtractor builds a SourceUnit from the top-level declarations of a
// Python file.
type PythonExtractor struct {
	log *zap.SugaredLogger
}

// NewPythonExtractor creates a new extractor. A nil logger discards diagnostics.
func NewPythonExtractor(log *zap.SugaredLogger) *PythonExtractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PythonExtractor{log: log}
}

// Parse extracts the functions and classes declared at module level in path.
// Files that cannot produce a stub return a nil unit and an error matching
// domain.ErrSkipped; the reason has already been logged.
func (e *PythonExtractor) Parse(path string, includeInternal bool) (*domain.SourceUnit, error) {
	if filepath.Ext(path) != sourceExt {
		return nil, errors.Wrapf(domain.ErrNotSource, "%s", path)
	}

	info, err := os.Lstat(path)
	if err != nil {
		e.log.Warnw("Cannot stat file", "path", path, "error", err)
		return nil, errors.Wrapf(domain.ErrDecode, "%s", path)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		e.log.Infow("Symlink", "path", path)
		return nil, errors.Wrapf(domain.ErrSymlink, "%s", path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		e.log.Warnw("Cannot read file", "path", path, "error", err)
		return nil, errors.Wrapf(domain.ErrDecode, "%s", path)
	}
	src = bytes.TrimPrefix(src, utf8BOM)
	if !utf8.Valid(src) {
		e.log.Warnw("Unicode decode error", "path", path)
		return nil, errors.Wrapf(domain.ErrDecode, "%s", path)
	}

	unit, err := e.ParseSource(src, includeInternal)
	if err != nil {
		e.log.Warnw("Failed to parse", "path", path, "error", err)
		return nil, errors.Wrapf(err, "%s", path)
	}
	if unit.Empty() {
		e.log.Infow(fmt.Sprintf("No classes or functions in %s", path), "path", path)
		return nil, errors.Wrapf(domain.ErrEmpty, "%s", path)
	}

	unit.Path = path
	unit.ModuleName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return unit, nil
}

// ParseSource extracts declarations from Python source text. Syntax errors
// return an error matching domain.ErrSyntax. The returned unit has no module
// name or path.
func (e *PythonExtractor) ParseSource(src []byte, includeInternal bool) (*domain.SourceUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, errors.Wrap(domain.ErrSyntax, err.Error())
	}
	defer tree.Close()

	root := tree.RootNode()
	at := firstError(root)
	if at == nil && root.HasError() {
		at = root
	}
	if at != nil {
		pos := at.StartPoint()
		return nil, errors.Wrapf(domain.ErrSyntax, "line %d column %d", pos.Row+1, pos.Column+1)
	}

	unit := &domain.SourceUnit{}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		kind, def := classify(root.NamedChild(i))
		switch kind {
		case declFunction:
			name := declName(def, src)
			if keep(name, includeInternal) {
				unit.Functions = append(unit.Functions, name)
			}

		case declClass:
			name := declName(def, src)
			if !keep(name, includeInternal) {
				continue
			}
			unit.Classes = append(unit.Classes, domain.ClassUnit{
				Name:    name,
				Methods: methods(def, src, includeInternal),
			})
		}
	}

	return unit, nil
}

// methods collects the functions declared directly in a class body.
func methods(class *sitter.Node, src []byte, includeInternal bool) []domain.DeclName {
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var names []domain.DeclName
	for i := 0; i < int(body.NamedChildCount()); i++ {
		kind, def := classify(body.NamedChild(i))
		if kind != declFunction {
			continue
		}
		if name := declName(def, src); keep(name, includeInternal) {
			names = append(names, name)
		}
	}
	return names
}

func keep(name domain.DeclName, includeInternal bool) bool {
	return name != "" && (includeInternal || !name.IsInternal())
}

func declName(def *sitter.Node, src []byte) domain.DeclName {
	name := def.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return domain.DeclName(name.Content(src))
}

// firstError returns the first node in document order that Python 3 rejects:
// ERROR and MISSING nodes, Python 2 print and exec statements, and blocks
// without statements, which the grammar produces for unindented bodies.
func firstError(n *sitter.Node) *sitter.Node {
	switch n.Type() {
	case "ERROR", "print_statement", "exec_statement":
		return n
	case "block":
		if n.NamedChildCount() == 0 {
			return n
		}
	}
	if n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}
