package app

import (
	"inscope/internal/engine/scope"
	"inscope/internal/engine/symbols"
	"inscope/internal/engine/syntax"
)

type UnusedImport struct {
	File       string
	Reference  string
	Alias      string
	Kind       scope.ImportKind
	Confidence string
}

type UnresolvedImport struct {
	File      string
	Reference string
	Kind      scope.ImportKind
}

// AnalyzeUnusedImports reports imports no reference in their file appears to
// use. Static single imports are probed through their accessor synonyms, so
// a property-style use of a statically imported field still counts.
func (a *App) AnalyzeUnusedImports() []UnusedImport {
	unused := make([]UnusedImport, 0)
	for _, path := range a.filePaths() {
		file, ok := a.File(path)
		if !ok {
			continue
		}
		a.mu.RLock()
		refs := a.refsByFile[path]
		a.mu.RUnlock()
		unused = append(unused, a.findUnusedInFile(file, refs)...)
	}
	return unused
}

func (a *App) findUnusedInFile(file *syntax.File, refs map[string]int) []UnusedImport {
	unused := make([]UnusedImport, 0)
	for _, decl := range file.Imports() {
		ci := scope.Classify(decl)
		if ci.Reference == "" || a.isExcludedImport(ci.Reference) {
			continue
		}

		switch ci.Kind {
		case scope.ClassSingle:
			if refs[ci.ImportedName] == 0 {
				unused = append(unused, UnusedImport{
					File:       file.Path,
					Reference:  ci.Reference,
					Alias:      ci.Alias,
					Kind:       ci.Kind,
					Confidence: "high",
				})
			}
		case scope.StaticSingle:
			if !anyAccessorUsed(refs, ci.ImportedName) {
				unused = append(unused, UnusedImport{
					File:       file.Path,
					Reference:  ci.Reference,
					Alias:      ci.Alias,
					Kind:       ci.Kind,
					Confidence: "high",
				})
			}
		case scope.ClassOnDemand:
			// Wildcards cannot be verified without a full resolution pass
			// over every reference, so only an obviously idle one is flagged.
			if pkg, ok := a.source.ResolvePackage(ci.Reference); ok && !anyPackageClassUsed(refs, pkg) {
				unused = append(unused, UnusedImport{
					File:       file.Path,
					Reference:  ci.Reference,
					Kind:       ci.Kind,
					Confidence: "low",
				})
			}
		case scope.StaticOnDemand:
			if class, ok := a.source.ResolveClass(ci.Reference); ok && !anyStaticMemberUsed(refs, class) {
				unused = append(unused, UnusedImport{
					File:       file.Path,
					Reference:  ci.Reference,
					Kind:       ci.Kind,
					Confidence: "low",
				})
			}
		}
	}
	return unused
}

// AnalyzeUnresolvedImports reports imports whose reference does not resolve
// to anything in the symbol source. Resolution misses are diagnostics here,
// never lookup errors.
func (a *App) AnalyzeUnresolvedImports() []UnresolvedImport {
	unresolved := make([]UnresolvedImport, 0)
	for _, path := range a.filePaths() {
		file, ok := a.File(path)
		if !ok {
			continue
		}
		for _, decl := range file.Imports() {
			ci := scope.Classify(decl)
			if ci.Reference == "" || a.isExcludedImport(ci.Reference) {
				continue
			}
			resolved := false
			if ci.Kind == scope.ClassOnDemand {
				_, resolved = a.source.ResolvePackage(ci.Reference)
			} else {
				_, resolved = a.Resolver.ResolveTargetClass(decl)
			}
			if !resolved {
				unresolved = append(unresolved, UnresolvedImport{
					File:      file.Path,
					Reference: ci.Reference,
					Kind:      ci.Kind,
				})
			}
		}
	}
	return unresolved
}

func (a *App) isExcludedImport(reference string) bool {
	for _, excluded := range a.Config.Exclude.Imports {
		if excluded == reference {
			return true
		}
	}
	return false
}

func anyAccessorUsed(refs map[string]int, name string) bool {
	for _, variant := range scope.AccessorNames(name) {
		if refs[variant] > 0 {
			return true
		}
	}
	// A statically imported accessor is also reachable through its property
	// form: "import static Constants.getLimit" is used by a bare "limit".
	if property := scope.PropertyName(name); property != "" && refs[property] > 0 {
		return true
	}
	return false
}

func anyPackageClassUsed(refs map[string]int, pkg symbols.Package) bool {
	used := false
	pkg.ProcessClasses(func(c symbols.Class) bool {
		if refs[c.DeclaredName()] > 0 {
			used = true
			return false
		}
		return true
	}, "")
	return used
}

func anyStaticMemberUsed(refs map[string]int, class symbols.Class) bool {
	used := false
	class.ProcessMembers(func(m *symbols.Member) bool {
		if refs[m.Name] > 0 {
			used = true
			return false
		}
		return true
	}, symbols.MemberFilter{StaticOnly: true})
	return used
}
