package port

type WriteStatus int

const (
	StatusWritten WriteStatus = iota
	StatusExists
)

type StubWriter interface {
	EnsureDir(relDir string) error

	Write(relDir, name, content string) (WriteStatus, error)

	// OutputPath returns where Write places the file.
	OutputPath(relDir, name string) string
}
