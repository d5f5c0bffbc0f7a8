package syntax

import "sync"

// File is the syntax-level view of one source file: its package name and
// import declarations, plus the structure-version tracker that invalidates
// per-declaration caches.
type File struct {
	Path string

	mu          sync.RWMutex
	packageName string
	imports     []*ImportDeclaration
	tracker     ModificationTracker
}

func NewFile(path string) *File {
	return &File{Path: path}
}

// FileFromSource scans source text and builds the file with stub-backed
// import declarations.
func FileFromSource(path string, source []byte) *File {
	f := NewFile(path)
	f.Reload(source)
	return f
}

// Reload rescans source and replaces the file's declarations, advancing the
// structure version so stale qualifier caches are thrown away.
func (f *File) Reload(source []byte) {
	scanned := ScanSource(source)

	f.mu.Lock()
	f.packageName = scanned.PackageName
	f.imports = f.imports[:0]
	for _, imp := range scanned.Imports {
		f.imports = append(f.imports, NewImport(f, imp.Stub, imp.Span, imp.RefSpan))
	}
	f.mu.Unlock()
	f.tracker.Bump()
}

func (f *File) PackageName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.packageName
}

func (f *File) SetPackageName(name string) {
	f.mu.Lock()
	f.packageName = name
	f.mu.Unlock()
}

// AddImport appends a declaration built elsewhere (tests, tree fallback).
func (f *File) AddImport(d *ImportDeclaration) {
	f.mu.Lock()
	f.imports = append(f.imports, d)
	f.mu.Unlock()
}

// Imports returns the declarations in source order.
func (f *File) Imports() []*ImportDeclaration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*ImportDeclaration, len(f.imports))
	copy(out, f.imports)
	return out
}

func (f *File) StructureVersion() int64 {
	return f.tracker.Count()
}

// MarkStructureChange advances the version without a rescan, used when an
// external editor model reports a structural edit.
func (f *File) MarkStructureChange() {
	f.tracker.Bump()
}
