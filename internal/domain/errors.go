package domain

import "github.com/cockroachdb/errors"

// ErrSkipped marks a file that was passed over without producing a stub.
// Every reason below matches it under errors.Is.
var ErrSkipped = errors.New("skipped")

var (
	ErrNotSource = errors.Wrap(ErrSkipped, "not a source file")
	ErrSymlink   = errors.Wrap(ErrSkipped, "symbolic link")
	ErrDecode    = errors.Wrap(ErrSkipped, "cannot decode")
	ErrSyntax    = errors.Wrap(ErrSkipped, "syntax error")
	ErrEmpty     = errors.Wrap(ErrSkipped, "no classes or functions")
)
