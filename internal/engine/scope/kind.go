package scope

import "inscope/internal/engine/syntax"

// ImportKind is the closed four-way classification of an import declaration.
type ImportKind int

const (
	ClassSingle ImportKind = iota
	ClassOnDemand
	StaticSingle
	StaticOnDemand
)

func (k ImportKind) IsStatic() bool {
	return k == StaticSingle || k == StaticOnDemand
}

func (k ImportKind) IsOnDemand() bool {
	return k == ClassOnDemand || k == StaticOnDemand
}

func (k ImportKind) String() string {
	switch k {
	case ClassSingle:
		return "class"
	case ClassOnDemand:
		return "class_on_demand"
	case StaticSingle:
		return "static"
	case StaticOnDemand:
		return "static_on_demand"
	default:
		return "unknown"
	}
}

func (k ImportKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClassifiedImport carries only the fields relevant to its kind:
// ImportedName and Alias are empty for on-demand kinds.
type ClassifiedImport struct {
	Kind         ImportKind
	Reference    string
	ImportedName string
	Alias        string
}

// Classify derives the variant once so the resolution branches can switch
// exhaustively instead of re-reading raw flags. A malformed declaration
// classifies with an empty Reference, which every branch treats as
// "contributes nothing".
func Classify(decl *syntax.ImportDeclaration) ClassifiedImport {
	ci := ClassifiedImport{Reference: decl.ReferenceText()}
	switch {
	case decl.IsOnDemand() && decl.IsStatic():
		ci.Kind = StaticOnDemand
	case decl.IsOnDemand():
		ci.Kind = ClassOnDemand
	case decl.IsStatic():
		ci.Kind = StaticSingle
	default:
		ci.Kind = ClassSingle
	}
	if !ci.Kind.IsOnDemand() {
		ci.ImportedName = decl.ImportedName()
		ci.Alias = decl.AliasName()
	}
	return ci
}
