package port

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

// FileInfo is a source file found under a scan root. RelDir is relative to
// the root and is "." for files directly inside it.
type FileInfo struct {
	Path   string
	RelDir string
	Name   string
}
