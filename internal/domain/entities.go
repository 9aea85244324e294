package domain

import "strings"

// DeclName is a declared identifier. Names starting with an underscore are
// internal by convention.
type DeclName string

// IsInternal reports whether the name is marked private with a leading underscore.
func (n DeclName) IsInternal() bool {
	return strings.HasPrefix(string(n), "_")
}

func (n DeclName) String() string {
	return string(n)
}

// ClassUnit is a top-level class and the methods declared directly in its body.
type ClassUnit struct {
	Name    DeclName   `yaml:"name"`
	Methods []DeclName `yaml:"methods,omitempty"`
}

// SourceUnit is the inventory of testable declarations of one source file,
// in declaration order.
type SourceUnit struct {
	ModuleName string      `yaml:"module"`
	Path       string      `yaml:"path"`
	Functions  []DeclName  `yaml:"functions,omitempty"`
	Classes    []ClassUnit `yaml:"classes,omitempty"`
}

// Empty reports whether the unit has nothing to test.
func (u *SourceUnit) Empty() bool {
	return u == nil || (len(u.Functions) == 0 && len(u.Classes) == 0)
}
