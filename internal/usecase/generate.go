package usecase

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"pystub/internal/adapter/render"
	"pystub/internal/domain"
	"pystub/internal/port"
)

// GenerateUseCase turns a source tree into stub test files.
type GenerateUseCase struct {
	parser   port.SourceParser
	walker   port.FileWalker
	writer   port.StubWriter
	renderer *render.StubRenderer
	log      *zap.SugaredLogger
}

// NewGenerateUseCase creates a new generate use case.
func NewGenerateUseCase(
	parser port.SourceParser,
	walker port.FileWalker,
	writer port.StubWriter,
	log *zap.SugaredLogger,
) *GenerateUseCase {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &GenerateUseCase{
		parser:   parser,
		walker:   walker,
		writer:   writer,
		renderer: render.NewStubRenderer(),
		log:      log,
	}
}

// GenerateOptions configures a run.
type GenerateOptions struct {
	Header string
	Footer string
	// TabWidth replaces each tab with that many spaces; negative keeps tabs.
	TabWidth        int
	TestPrefix      string
	IncludeInternal bool
	// ImportRoot is the dotted or slash-separated package of the scan root.
	ImportRoot string
	// Render carries the naming options; its ImportPrefix is computed per file.
	Render render.Options
	// Out receives one progress line per written or existing stub.
	Out io.Writer
}

// GenerateResult contains the results of a generate run.
type GenerateResult struct {
	FilesScanned  int
	FilesWritten  int
	FilesExisting int
	FilesSkipped  int
	Outputs       []string
}

// ProgressFunc is called after each scanned file.
type ProgressFunc func(processed, total int, currentFile string)

// Generate writes one stub per source file under root. Files that cannot be
// parsed are skipped; write failures abort the run.
func (u *GenerateUseCase) Generate(root string, opts GenerateOptions, progress ProgressFunc) (*GenerateResult, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk directory")
	}

	result := &GenerateResult{}
	for i, file := range files {
		result.FilesScanned++
		if err := u.generateFile(file, opts, result); err != nil {
			return result, err
		}
		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	return result, nil
}

// generateFile handles a single source file.
func (u *GenerateUseCase) generateFile(file port.FileInfo, opts GenerateOptions, result *GenerateResult) error {
	unit, err := u.parser.Parse(file.Path, opts.IncludeInternal)
	if err != nil {
		if errors.Is(err, domain.ErrSkipped) {
			u.log.Debugw("Skipped", "path", file.Path, "reason", err.Error())
			result.FilesSkipped++
			return nil
		}
		return errors.Wrapf(err, "parse %s", file.Path)
	}
	if unit.Empty() {
		result.FilesSkipped++
		return nil
	}

	renderOpts := opts.Render
	renderOpts.ImportPrefix = render.ImportPrefix(opts.ImportRoot, file.RelDir)

	stub := u.renderer.Render(unit, renderOpts)
	stub = render.ExpandTabs(stub, opts.TabWidth)
	stub = opts.Header + stub + opts.Footer

	if err := u.writer.EnsureDir(file.RelDir); err != nil {
		return err
	}

	name := opts.TestPrefix + file.Name
	outPath := u.writer.OutputPath(file.RelDir, name)
	status, err := u.writer.Write(file.RelDir, name, stub)
	if err != nil {
		return err
	}

	switch status {
	case port.StatusWritten:
		fmt.Fprintf(opts.Out, "[%s] Writing...\n", outPath)
		result.FilesWritten++
		result.Outputs = append(result.Outputs, outPath)
	case port.StatusExists:
		fmt.Fprintf(opts.Out, "[%s] Already exists\n", outPath)
		result.FilesExisting++
	}

	return nil
}
