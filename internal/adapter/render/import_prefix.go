package render

import (
	"path/filepath"
	"strings"
)

// ImportPrefix builds the dotted package path of a module found in relDir
// under root. root is the scan root as given on the command line; relDir
// is "." for files directly inside it.
func ImportPrefix(root, relDir string) string {
	var parts []string
	for _, p := range []string{root, relDir} {
		p = filepath.ToSlash(filepath.Clean(p))
		for _, seg := range strings.Split(p, "/") {
			if seg == "" || seg == "." || seg == ".." {
				continue
			}
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, ".")
}
