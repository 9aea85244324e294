package extractor

import sitter "github.com/smacker/go-tree-sitter"

// declKind is the closed set of statement kinds the extractor cares about.
type declKind int

const (
	declOther declKind = iota
	declFunction
	declClass
)

func (k declKind) String() string {
	switch k {
	case declFunction:
		return "function"
	case declClass:
		return "class"
	default:
		return "other"
	}
}

// classify maps a statement node to its declaration kind and the definition
// node that carries the name. Decorators are looked through; async functions
// count as functions.
func classify(n *sitter.Node) (declKind, *sitter.Node) {
	if n == nil {
		return declOther, nil
	}

	if n.Type() == "decorated_definition" {
		def := n.ChildByFieldName("definition")
		if def == nil {
			return declOther, nil
		}
		n = def
	}

	switch n.Type() {
	case "function_definition":
		return declFunction, n
	case "class_definition":
		return declClass, n
	default:
		return declOther, nil
	}
}
