package render

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const placeholder = "%s"

const (
	DefaultClassFormat    = "%sTest"
	DefaultFunctionFormat = "test_%s"
)

// NameFormat is a naming template with exactly one placeholder. The zero
// value leaves names unchanged.
type NameFormat struct {
	prefix string
	suffix string
	raw    string
}

// ParseNameFormat parses a template such as "test_%s". It must contain
// exactly one %s; %% stands for a literal percent sign.
func ParseNameFormat(s string) (NameFormat, error) {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			cur.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			return NameFormat{}, errors.Newf("name format %q: trailing %%", s)
		}
		i++
		switch s[i] {
		case '%':
			cur.WriteByte('%')
		case 's':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			return NameFormat{}, errors.Newf("name format %q: unsupported verb %%%c", s, s[i])
		}
	}
	parts = append(parts, cur.String())

	if len(parts) != 2 {
		return NameFormat{}, errors.WithHint(
			errors.Newf("name format %q: want exactly one %s, found %d", s, placeholder, len(parts)-1),
			"use a template like "+DefaultFunctionFormat,
		)
	}
	return NameFormat{prefix: parts[0], suffix: parts[1], raw: s}, nil
}

// MustNameFormat is like ParseNameFormat but panics on error.
func MustNameFormat(s string) NameFormat {
	f, err := ParseNameFormat(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Apply substitutes name into the template.
func (f NameFormat) Apply(name string) string {
	return f.prefix + name + f.suffix
}

func (f NameFormat) String() string {
	if f.raw == "" {
		return placeholder
	}
	return f.raw
}
