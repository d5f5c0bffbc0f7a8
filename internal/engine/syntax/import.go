package syntax

import (
	"strings"
	"sync"

	"inscope/internal/engine/symbols"
)

// ImportDeclaration is one import statement of a source file. It is immutable
// per source edit: the containing file rebuilds its declarations whenever its
// structure changes. Textual pieces come from a precomputed stub when one is
// available, and are lazily re-derived from the raw statement text otherwise.
type ImportDeclaration struct {
	file *File
	span Span
	ref  Span

	stub *ImportStub

	// Fallback path when no stub was indexed.
	raw      string
	parseOne sync.Once
	parsed   ImportStub
	parsedOK bool

	// Qualifier resolution cache, keyed by the file's structure version.
	qualMu    sync.Mutex
	qualVer   int64
	qualValid bool
	qualClass symbols.Class
	qualFound bool
}

// NewImport builds a stub-backed declaration.
func NewImport(file *File, stub ImportStub, span, refSpan Span) *ImportDeclaration {
	s := stub
	return &ImportDeclaration{file: file, stub: &s, span: span, ref: refSpan}
}

// NewImportFromText builds a declaration that derives its pieces from raw
// statement text on demand, mirroring the tree-fallback path used when no
// index entry exists.
func NewImportFromText(file *File, raw string, span, refSpan Span) *ImportDeclaration {
	return &ImportDeclaration{file: file, raw: raw, span: span, ref: refSpan}
}

func (d *ImportDeclaration) File() *File { return d.file }

// Span is the byte range of the whole statement.
func (d *ImportDeclaration) Span() Span { return d.span }

// ReferenceSpan is the byte range of the dotted reference inside the statement.
func (d *ImportDeclaration) ReferenceSpan() Span { return d.ref }

func (d *ImportDeclaration) pieces() (ImportStub, bool) {
	if d.stub != nil {
		return *d.stub, true
	}
	d.parseOne.Do(func() {
		rest, ok := cutKeyword(strings.TrimSpace(d.raw), "import")
		if !ok {
			return
		}
		stub, _, _, ok := parseImportClause(rest)
		if !ok {
			return
		}
		d.parsed = stub
		d.parsedOK = true
	})
	return d.parsed, d.parsedOK
}

// ReferenceText is the dotted reference, without any ".*" suffix. Empty when
// the statement is malformed.
func (d *ImportDeclaration) ReferenceText() string {
	p, ok := d.pieces()
	if !ok {
		return ""
	}
	return p.ReferenceText
}

// ReferenceName is the last segment of the reference: for a static single
// import this is the imported member's declared name.
func (d *ImportDeclaration) ReferenceName() string {
	return lastSegment(d.ReferenceText())
}

func (d *ImportDeclaration) IsStatic() bool {
	p, _ := d.pieces()
	return p.IsStatic
}

func (d *ImportDeclaration) IsOnDemand() bool {
	p, _ := d.pieces()
	return p.IsOnDemand
}

func (d *ImportDeclaration) IsAliased() bool {
	p, _ := d.pieces()
	return p.AliasName != ""
}

func (d *ImportDeclaration) AliasName() string {
	p, _ := d.pieces()
	return p.AliasName
}

// ImportedName is the name this declaration binds in scope: the alias when
// present, otherwise the reference's last segment. On-demand imports bind no
// single name and return "".
func (d *ImportDeclaration) ImportedName() string {
	p, ok := d.pieces()
	if !ok || p.IsOnDemand {
		return ""
	}
	if p.AliasName != "" {
		return p.AliasName
	}
	return lastSegment(p.ReferenceText)
}

// QualifierName is the reference minus its last segment: for
// "import static pkg.Foo.bar" this is "pkg.Foo". Empty when the reference
// has a single segment.
func (d *ImportDeclaration) QualifierName() string {
	ref := d.ReferenceText()
	i := strings.LastIndexByte(ref, '.')
	if i < 0 {
		return ""
	}
	return ref[:i]
}

// ResolveQualifier resolves the qualifier portion against source, memoized
// per structure version of the containing file. Recomputation after an
// invalidation is idempotent, so a racing reader at worst resolves twice.
func (d *ImportDeclaration) ResolveQualifier(source symbols.Source) (symbols.Class, bool) {
	version := d.file.StructureVersion()

	d.qualMu.Lock()
	defer d.qualMu.Unlock()
	if d.qualValid && d.qualVer == version {
		return d.qualClass, d.qualFound
	}

	d.qualClass, d.qualFound = nil, false
	if q := d.QualifierName(); q != "" {
		d.qualClass, d.qualFound = source.ResolveClass(q)
	}
	d.qualVer = version
	d.qualValid = true
	return d.qualClass, d.qualFound
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
