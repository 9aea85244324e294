package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"pystub/internal/domain"
)

const samplePython = `"""Module docstring."""

import os

CONSTANT = 1


def foo():
    pass


async def fetch(url):
    return url


def _private():
    pass


@decorator
def decorated(x):
    return x


class Bar:
    """A class."""

    attr = 3

    def baz(self):
        pass

    def _hidden(self):
        pass

    @staticmethod
    def make():
        return Bar()

    def __repr__(self):
        return "Bar"

    class Inner:
        def inner_method(self):
            pass

    def qux(self):
        def closure():
            pass
        return closure


class _Internal:
    def method(self):
        pass


if __name__ == "__main__":
    foo()
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPythonExtractor_Parse(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sample.py", samplePython)
	e := NewPythonExtractor(zaptest.NewLogger(t).Sugar())

	unit, err := e.Parse(path, false)
	require.NoError(t, err)
	require.NotNil(t, unit)

	assert.Equal(t, "sample", unit.ModuleName)
	assert.Equal(t, path, unit.Path)
	assert.Equal(t, []domain.DeclName{"foo", "fetch", "decorated"}, unit.Functions)
	require.Len(t, unit.Classes, 1)
	assert.Equal(t, domain.DeclName("Bar"), unit.Classes[0].Name)
	assert.Equal(t, []domain.DeclName{"baz", "make", "qux"}, unit.Classes[0].Methods)
}

func TestPythonExtractor_Parse_IncludeInternal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sample.py", samplePython)
	e := NewPythonExtractor(nil)

	unit, err := e.Parse(path, true)
	require.NoError(t, err)

	assert.Equal(t, []domain.DeclName{"foo", "fetch", "_private", "decorated"}, unit.Functions)
	require.Len(t, unit.Classes, 2)
	assert.Equal(t, []domain.DeclName{"baz", "_hidden", "make", "__repr__", "qux"}, unit.Classes[0].Methods)
	assert.Equal(t, domain.DeclName("_Internal"), unit.Classes[1].Name)
	assert.Equal(t, []domain.DeclName{"method"}, unit.Classes[1].Methods)
}

func TestPythonExtractor_MethodOrderAndVisibility(t *testing.T) {
	src := "class K:\n    def a(self): pass\n    def _b(self): pass\n    def c(self): pass\n"
	path := writeFile(t, t.TempDir(), "k.py", src)
	e := NewPythonExtractor(nil)

	unit, err := e.Parse(path, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.DeclName{"a", "c"}, unit.Classes[0].Methods)

	unit, err = e.Parse(path, true)
	require.NoError(t, err)
	assert.Equal(t, []domain.DeclName{"a", "_b", "c"}, unit.Classes[0].Methods)
}

func TestPythonExtractor_ClassWithoutMethods(t *testing.T) {
	path := writeFile(t, t.TempDir(), "model.py", "class Empty:\n    pass\n")

	unit, err := NewPythonExtractor(nil).Parse(path, false)
	require.NoError(t, err)
	require.Len(t, unit.Classes, 1)
	assert.Empty(t, unit.Classes[0].Methods)
}

func TestPythonExtractor_Skips(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		path   func() string
		reason error
		logMsg string
	}{
		{
			name:   "non-source extension",
			path:   func() string { return writeFile(t, dir, "notes.txt", "def foo(): pass\n") },
			reason: domain.ErrNotSource,
		},
		{
			name:   "syntax error",
			path:   func() string { return writeFile(t, dir, "broken.py", "def foo(:\n    pass\n") },
			reason: domain.ErrSyntax,
			logMsg: "Failed to parse",
		},
		{
			name:   "python 2 print",
			path:   func() string { return writeFile(t, dir, "print2.py", "print 'x'\ndef f(): pass\n") },
			reason: domain.ErrSyntax,
			logMsg: "Failed to parse",
		},
		{
			name:   "python 2 exec",
			path:   func() string { return writeFile(t, dir, "exec2.py", "exec 'x'\ndef f(): pass\n") },
			reason: domain.ErrSyntax,
		},
		{
			name:   "unindented body",
			path:   func() string { return writeFile(t, dir, "dedent.py", "def f():\nreturn 1\n") },
			reason: domain.ErrSyntax,
		},
		{
			name:   "invalid utf-8",
			path:   func() string { return writeFile(t, dir, "latin.py", "def caf\xe9(): pass\n") },
			reason: domain.ErrDecode,
			logMsg: "Unicode decode error",
		},
		{
			name:   "no declarations",
			path:   func() string { return writeFile(t, dir, "consts.py", "A = 1\nB = 2\n") },
			reason: domain.ErrEmpty,
		},
		{
			name:   "empty file",
			path:   func() string { return writeFile(t, dir, "__init__.py", "") },
			reason: domain.ErrEmpty,
		},
		{
			name:   "only internal names",
			path:   func() string { return writeFile(t, dir, "internal.py", "def _a(): pass\nclass _B: pass\n") },
			reason: domain.ErrEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			e := NewPythonExtractor(zap.New(core).Sugar())

			var unit *domain.SourceUnit
			var err error
			require.NotPanics(t, func() { unit, err = e.Parse(tt.path(), false) })

			assert.Nil(t, unit)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrSkipped))
			assert.True(t, errors.Is(err, tt.reason), "got %v", err)
			if tt.logMsg != "" {
				assert.Equal(t, 1, logs.FilterMessage(tt.logMsg).Len())
			}
		})
	}
}

func TestPythonExtractor_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "real.py", "def foo(): pass\n")
	link := filepath.Join(dir, "link.py")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	core, logs := observer.New(zap.InfoLevel)
	unit, err := NewPythonExtractor(zap.New(core).Sugar()).Parse(link, false)

	assert.Nil(t, unit)
	assert.True(t, errors.Is(err, domain.ErrSymlink))
	entries := logs.FilterMessage("Symlink").All()
	require.Len(t, entries, 1)
	assert.Equal(t, link, entries[0].ContextMap()["path"])
}

func TestPythonExtractor_EmptyLogsPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "consts.py", "A = 1\n")
	core, logs := observer.New(zap.InfoLevel)

	_, err := NewPythonExtractor(zap.New(core).Sugar()).Parse(path, false)
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("No classes or functions in "+path).Len())
}

func TestPythonExtractor_ByteOrderMark(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.py", "\xEF\xBB\xBFdef foo():\n    pass\n")

	unit, err := NewPythonExtractor(nil).Parse(path, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.DeclName{"foo"}, unit.Functions)
}

func TestPythonExtractor_ParseSource_SyntaxPosition(t *testing.T) {
	_, err := NewPythonExtractor(nil).ParseSource([]byte("def ok():\n    pass\n\nclass (:\n"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSyntax))
	assert.Contains(t, err.Error(), "line ")
}

func TestPythonExtractor_ParseSource_PrintCall(t *testing.T) {
	unit, err := NewPythonExtractor(nil).ParseSource([]byte("print('x')\n\ndef f():\n    # body\n    pass\n"), false)
	require.NoError(t, err)
	assert.Equal(t, []domain.DeclName{"f"}, unit.Functions)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "function", declFunction.String())
	assert.Equal(t, "class", declClass.String())
	assert.Equal(t, "other", declOther.String())

	kind, def := classify(nil)
	assert.Equal(t, declOther, kind)
	assert.Nil(t, def)
}
