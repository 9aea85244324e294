package port

import "pystub/internal/domain"

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=parser.go -destination=mocks/parser.gen.go -package=mocks

// SourceParser extracts the testable declarations of one source file. A file
// that cannot produce a stub yields a nil unit and an error matching
// domain.ErrSkipped.
type SourceParser interface {
	Parse(path string, includeInternal bool) (*domain.SourceUnit, error)
}
