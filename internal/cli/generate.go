package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"pystub/config"
	"pystub/internal/adapter/extractor"
	"pystub/internal/adapter/fs"
	"pystub/internal/usecase"
)

// generateFlags mirror config.GenerateConfig. A flag only overrides the
// config file when it is set on the command line.
type generateFlags struct {
	header       string
	footer       string
	force        bool
	testModule   string
	testPrefix   string
	tabWidth     int
	excludes     []string
	internal     bool
	classFmt     string
	functionFmt  string
	classMethods bool
	importPrefix string
	progress     bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	defaults := config.DefaultConfig().Generate

	flags := cmd.Flags()
	flags.StringVarP(&f.header, "header", "H", "", "file to use as a header")
	flags.StringVarP(&f.footer, "footer", "F", "", "file to use as a footer")
	flags.BoolVarP(&f.force, "force", "f", false, "overwrite stubs that already exist")
	flags.StringVarP(&f.testModule, "test-module", "m", defaults.TestModule, "directory of the test package to generate")
	flags.StringVarP(&f.testPrefix, "test-prefix", "p", defaults.TestPrefix, "prefix for test file names")
	flags.IntVarP(&f.tabWidth, "tab-width", "t", 0, "width of a tab in spaces (default keeps tabs)")
	flags.StringArrayVarP(&f.excludes, "exclude", "X", nil, "directory name or glob to skip (repeatable)")
	flags.BoolVarP(&f.internal, "internal", "i", false, "include internal names starting with _")
	flags.StringVar(&f.classFmt, "class-fmt", defaults.ClassFormat, "template for test class names")
	flags.StringVar(&f.functionFmt, "function-fmt", defaults.FunctionFormat, "template for test method names")
	flags.BoolVar(&f.classMethods, "classmethods", false, "write setUpClass and tearDownClass")
	flags.StringVar(&f.importPrefix, "import-prefix", "", "dotted package to import modules from (default derived from <module>)")
	flags.BoolVar(&f.progress, "progress", false, "show a progress bar on stderr")
}

// apply copies the flags set on the command line into cfg.
func (f *generateFlags) apply(cmd *cobra.Command, cfg *config.GenerateConfig) {
	flags := cmd.Flags()
	if flags.Changed("header") {
		cfg.Header = f.header
	}
	if flags.Changed("footer") {
		cfg.Footer = f.footer
	}
	if flags.Changed("force") {
		cfg.Force = f.force
	}
	if flags.Changed("test-module") {
		cfg.TestModule = f.testModule
	}
	if flags.Changed("test-prefix") {
		cfg.TestPrefix = f.testPrefix
	}
	if flags.Changed("tab-width") {
		width := f.tabWidth
		cfg.TabWidth = &width
	}
	if flags.Changed("exclude") {
		cfg.Excludes = append(cfg.Excludes, f.excludes...)
	}
	if flags.Changed("internal") {
		cfg.Internal = f.internal
	}
	if flags.Changed("class-fmt") {
		cfg.ClassFormat = f.classFmt
	}
	if flags.Changed("function-fmt") {
		cfg.FunctionFormat = f.functionFmt
	}
	if flags.Changed("classmethods") {
		cfg.ClassMethods = f.classMethods
	}
	if flags.Changed("import-prefix") {
		cfg.ImportPrefix = f.importPrefix
	}
}

func runGenerate(cmd *cobra.Command, g *globalOptions, f *generateFlags, module string) error {
	cfg := g.cfg
	f.apply(cmd, &cfg.Generate)
	if err := cfg.Validate(); err != nil {
		return err
	}

	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	header, footer, err := readHeaderFooter(cfg.Generate)
	if err != nil {
		return err
	}

	importRoot := cfg.Generate.ImportPrefix
	if importRoot == "" {
		importRoot = module
	}

	out := cmd.OutOrStdout()
	opts := usecase.GenerateOptions{
		Header:          header,
		Footer:          footer,
		TabWidth:        cfg.TabWidthOrDefault(),
		TestPrefix:      cfg.Generate.TestPrefix,
		IncludeInternal: cfg.Generate.Internal,
		ImportRoot:      importRoot,
		Render:          renderOpts,
		Out:             out,
	}

	generateUC := usecase.NewGenerateUseCase(
		extractor.NewPythonExtractor(g.log),
		fs.NewWalker(cfg.Generate.Includes, cfg.Generate.Excludes).
			WithLogger(g.log).
			Prune(outputWithin(module, cfg.Generate.TestModule)...),
		fs.NewStubWriter(cfg.Generate.TestModule, cfg.Generate.MarkerFile, cfg.Generate.Force),
		g.log,
	)

	var progress usecase.ProgressFunc
	if f.progress {
		bar := newProgress(cmd.ErrOrStderr())
		progress = bar.update
	}

	result, err := generateUC.Generate(module, opts, progress)
	if err != nil {
		return errors.Wrap(err, "generation failed")
	}

	fmt.Fprintf(out, "\nGeneration complete:\n")
	fmt.Fprintf(out, "  Files scanned:  %d\n", result.FilesScanned)
	fmt.Fprintf(out, "  Stubs written:  %d\n", result.FilesWritten)
	fmt.Fprintf(out, "  Already exist:  %d\n", result.FilesExisting)
	fmt.Fprintf(out, "  Files skipped:  %d\n", result.FilesSkipped)
	return nil
}

// readHeaderFooter loads the optional header and footer files. A missing
// file is a configuration error.
func readHeaderFooter(cfg config.GenerateConfig) (string, string, error) {
	var header, footer string
	var err error
	if cfg.Header != "" {
		if header, err = fs.ReadFile(cfg.Header); err != nil {
			return "", "", errors.Wrap(err, "header")
		}
	}
	if cfg.Footer != "" {
		if footer, err = fs.ReadFile(cfg.Footer); err != nil {
			return "", "", errors.Wrap(err, "footer")
		}
	}
	return header, footer, nil
}

// outputWithin returns the output root relative to the scan root when it lies
// inside it, so a rerun does not stub the generated tests.
func outputWithin(root, out string) []string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(absRoot, absOut)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{rel}
}
