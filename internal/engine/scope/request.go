package scope

import (
	"inscope/internal/engine/symbols"
	"inscope/internal/engine/syntax"
)

// Binding tells the visitor how an entity entered scope, so diagnostics can
// trace a resolution back to the import that produced it.
type Binding struct {
	Import *syntax.ImportDeclaration
}

// Visitor receives each candidate declaration during a lookup walk. Returning
// false stops all further visitation: it is cooperative cancellation, not an
// error.
type Visitor func(entity symbols.Entity, binding Binding) bool

// SubRequest is one name-hinted sub-lookup of a fanned-out request, such as a
// simultaneous variable + method lookup sharing one walk.
type SubRequest struct {
	Name  string // empty = no name hint
	Visit Visitor
}

// Request is one scope lookup. The zero Kinds set accepts every declaration
// kind, and an empty Name accepts every name.
type Request struct {
	Kinds symbols.KindSet
	Name  string
	Visit Visitor

	// Origin is the byte offset of the use site issuing the lookup, or a
	// negative value when the lookup has no position. An import never
	// resolves against a use site inside its own reference.
	Origin int

	// FromImport is set by the scope walker when the lookup ascended from a
	// sibling import statement; static imports must not feed names back into
	// the import list itself.
	FromImport bool

	// Subs fans the request out into several name-hinted sub-lookups. When
	// empty, the request acts as a single sub-lookup with Name and Visit.
	Subs []SubRequest
}

func (r *Request) fanOut() []SubRequest {
	if len(r.Subs) > 0 {
		return r.Subs
	}
	return []SubRequest{{Name: r.Name, Visit: r.Visit}}
}

// shouldProcess is the fast-reject gate: an import can only ever contribute
// classes, methods, fields, or enum constants.
func shouldProcess(req *Request) bool {
	if req.Kinds.Empty() {
		return true
	}
	return req.Kinds.Has(symbols.KindClass) ||
		req.Kinds.Has(symbols.KindMethod) ||
		req.Kinds.Has(symbols.KindField) ||
		req.Kinds.Has(symbols.KindEnumConst)
}

func shouldProcessClasses(req *Request) bool {
	return req.Kinds.Accepts(symbols.KindClass)
}
