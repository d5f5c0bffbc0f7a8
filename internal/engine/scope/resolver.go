package scope

import (
	"inscope/internal/engine/symbols"
	"inscope/internal/engine/syntax"
)

// Resolver evaluates what each import declaration contributes to name lookup.
// Resolution failure is never an error: an import whose reference does not
// resolve simply contributes nothing, and the walk continues. The only signal
// that propagates is the visitor's early-stop boolean.
type Resolver struct {
	source symbols.Source
}

func NewResolver(source symbols.Source) *Resolver {
	return &Resolver{source: source}
}

// ProcessDeclarations feeds the declarations this import contributes into the
// request's visitors. It returns false only when a visitor requested an early
// stop; every other outcome, including unresolved references, returns true so
// the caller keeps walking other declarations in scope.
func (r *Resolver) ProcessDeclarations(decl *syntax.ImportDeclaration, req *Request) bool {
	if !shouldProcess(req) {
		return true
	}
	if decl.ReferenceSpan().Contains(req.Origin) {
		return true
	}

	ci := Classify(decl)
	if ci.Kind.IsStatic() && req.FromImport {
		return true
	}

	switch ci.Kind {
	case ClassSingle:
		return r.processSingleClass(decl, ci, req)
	case StaticSingle:
		return r.processSingleStatic(decl, ci, req)
	case ClassOnDemand:
		return r.processOnDemandClass(decl, req)
	case StaticOnDemand:
		return r.processOnDemandStatic(decl, req)
	}
	return true
}

func (r *Resolver) processSingleClass(decl *syntax.ImportDeclaration, ci ClassifiedImport, req *Request) bool {
	if ci.ImportedName == "" {
		return true
	}
	if req.Name != "" && req.Name != ci.ImportedName {
		return true
	}
	if !shouldProcessClasses(req) {
		return true
	}
	if ci.Reference == "" {
		return true
	}
	class, ok := r.source.ResolveClass(ci.Reference)
	if !ok {
		return true
	}
	// Same-package imports without an alias are ignored by the compiler, so
	// they must not contribute to lookup either.
	if ci.Alias == "" && isFromSamePackage(decl.File(), class) {
		return true
	}
	return req.Visit(class, Binding{Import: decl})
}

// isFromSamePackage compares textually, and deliberately not at all for the
// default package: files without a package declaration never suppress.
func isFromSamePackage(file *syntax.File, class symbols.Class) bool {
	packageName := file.PackageName()
	if packageName == "" {
		return false
	}
	return packageName+"."+class.DeclaredName() == class.QualifiedName()
}

func (r *Resolver) processSingleStatic(decl *syntax.ImportDeclaration, ci ClassifiedImport, req *Request) bool {
	if ci.ImportedName == "" || ci.Reference == "" {
		return true
	}
	qualifier, ok := decl.ResolveQualifier(r.source)
	if !ok {
		return true
	}
	referenceName := decl.ReferenceName()
	if referenceName == "" {
		return true
	}

	pairs := accessorPairs(ci.ImportedName, referenceName)
	for _, sub := range req.fanOut() {
		for _, pair := range pairs {
			if sub.Name != "" && sub.Name != pair.requested {
				continue
			}
			cont := qualifier.ProcessMembers(func(m *symbols.Member) bool {
				return sub.Visit(m, Binding{Import: decl})
			}, symbols.MemberFilter{StaticOnly: true, Name: pair.actual, Kinds: req.Kinds})
			if !cont {
				return false
			}
		}
	}
	return true
}

func (r *Resolver) processOnDemandClass(decl *syntax.ImportDeclaration, req *Request) bool {
	if !shouldProcessClasses(req) {
		return true
	}
	qualifiedName := decl.ReferenceText()
	if qualifiedName == "" {
		return true
	}
	pkg, ok := r.source.ResolvePackage(qualifiedName)
	if !ok {
		return true
	}
	// A wildcard import of the file's own package is a no-op.
	if pkg.QualifiedName() == decl.File().PackageName() {
		return true
	}
	return pkg.ProcessClasses(func(c symbols.Class) bool {
		return req.Visit(c, Binding{Import: decl})
	}, req.Name)
}

func (r *Resolver) processOnDemandStatic(decl *syntax.ImportDeclaration, req *Request) bool {
	reference := decl.ReferenceText()
	if reference == "" {
		return true
	}
	class, ok := r.source.ResolveClass(reference)
	if !ok {
		return true
	}
	for _, sub := range req.fanOut() {
		cont := class.ProcessMembers(func(m *symbols.Member) bool {
			return sub.Visit(m, Binding{Import: decl})
		}, symbols.MemberFilter{StaticOnly: true, Name: sub.Name, Kinds: req.Kinds})
		if !cont {
			return false
		}
	}
	return true
}

// ProcessFile runs the request through every import of the file in source
// order, stopping at the first early stop. FromImport is derived from the
// request's origin so a lookup issued inside the import list cannot resolve
// through a sibling static import.
func (r *Resolver) ProcessFile(file *syntax.File, req *Request) bool {
	walk := *req
	walk.FromImport = req.FromImport || originInImports(file, req.Origin)
	for _, decl := range file.Imports() {
		if !r.ProcessDeclarations(decl, &walk) {
			return false
		}
	}
	return true
}

func originInImports(file *syntax.File, origin int) bool {
	if origin < 0 {
		return false
	}
	for _, decl := range file.Imports() {
		if decl.Span().Contains(origin) {
			return true
		}
	}
	return false
}

// ResolveTargetClass is the introspection hook used by diagnostics: the class
// an import is "about". For a static single import that is the qualifier; for
// everything else, the reference itself.
func (r *Resolver) ResolveTargetClass(decl *syntax.ImportDeclaration) (symbols.Class, bool) {
	if decl.ReferenceText() == "" {
		return nil, false
	}
	if decl.IsStatic() && !decl.IsOnDemand() {
		return decl.ResolveQualifier(r.source)
	}
	return r.source.ResolveClass(decl.ReferenceText())
}
