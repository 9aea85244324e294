package render

import (
	"fmt"
	"strings"

	"pystub/internal/domain"
)

// Options controls the naming and scaffolding of a rendered stub.
type Options struct {
	// ImportPrefix is the dotted package the module is imported from. Empty
	// means a plain "import <module>".
	ImportPrefix   string
	ClassFormat    NameFormat
	FunctionFormat NameFormat
	// ClassMethods adds setUpClass/tearDownClass to every class group.
	ClassMethods bool
}

// DefaultOptions returns options using the default naming templates.
func DefaultOptions() Options {
	return Options{
		ClassFormat:    MustNameFormat(DefaultClassFormat),
		FunctionFormat: MustNameFormat(DefaultFunctionFormat),
	}
}

// StubRenderer renders a SourceUnit into a unittest stub file.
type StubRenderer struct{}

// NewStubRenderer creates a new renderer.
func NewStubRenderer() *StubRenderer {
	return &StubRenderer{}
}

// Render returns the stub file text for unit. Output depends only on the
// arguments.
func (r *StubRenderer) Render(unit *domain.SourceUnit, opts Options) string {
	var groups []string

	if len(unit.Functions) > 0 {
		comment := fmt.Sprintf("Tests for functions in the %s module.", unit.ModuleName)
		groups = append(groups, renderGroup(unit.ModuleName, comment, "", r.tests(unit.Functions, opts, false)))
	}

	for _, class := range unit.Classes {
		comment := fmt.Sprintf("Tests for methods in the %s class.", class.Name)
		setup := ""
		if opts.ClassMethods {
			setup = classMethodsTemplate
		}
		name := opts.ClassFormat.Apply(class.Name.String())
		groups = append(groups, renderGroup(name, comment, setup, r.tests(class.Methods, opts, true)))
	}

	var nonEmpty []string
	for _, g := range groups {
		if g != "" {
			nonEmpty = append(nonEmpty, g)
		}
	}

	body := ""
	if len(nonEmpty) > 0 {
		body = "\n\n" + strings.Join(nonEmpty, "\n\n")
	}

	return fmt.Sprintf(fileTemplate, importStatement(opts.ImportPrefix, unit.ModuleName), body)
}

// tests renders one placeholder per name. Methods are always re-filtered:
// underscore names never get a test inside a class group.
func (r *StubRenderer) tests(names []domain.DeclName, opts Options, methods bool) string {
	var b strings.Builder
	for _, name := range names {
		if methods && name.IsInternal() {
			continue
		}
		fmt.Fprintf(&b, testTemplate, opts.FunctionFormat.Apply(name.String()), name)
	}
	return b.String()
}

func renderGroup(name, comment, setup, tests string) string {
	return fmt.Sprintf(groupTemplate, name, comment, setup+tests)
}

func importStatement(prefix, module string) string {
	if prefix == "" {
		return "import " + module
	}
	return fmt.Sprintf("from %s import %s", prefix, module)
}
