package syntax

import (
	"testing"

	"inscope/internal/engine/symbols"
)

type countingSource struct {
	table *symbols.Table
	calls int
}

func (s *countingSource) ResolveClass(qualifiedName string) (symbols.Class, bool) {
	s.calls++
	return s.table.ResolveClass(qualifiedName)
}

func (s *countingSource) ResolvePackage(qualifiedName string) (symbols.Package, bool) {
	return s.table.ResolvePackage(qualifiedName)
}

func TestImportDeclaration_Pieces(t *testing.T) {
	file := FileFromSource("a.groovy", []byte(`package p

import com.acme.Alpha
import com.acme.Beta as Gamma
import com.acme.util.*
import static com.acme.Constants.limit as cap
`))
	imports := file.Imports()
	if len(imports) != 4 {
		t.Fatalf("expected 4 imports, got %d", len(imports))
	}

	plain := imports[0]
	if plain.ImportedName() != "Alpha" || plain.IsAliased() || plain.QualifierName() != "com.acme" {
		t.Fatalf("unexpected plain import pieces: %+v", plain)
	}

	aliased := imports[1]
	if aliased.ImportedName() != "Gamma" || !aliased.IsAliased() || aliased.ReferenceName() != "Beta" {
		t.Fatalf("unexpected aliased import pieces")
	}

	onDemand := imports[2]
	if onDemand.ImportedName() != "" || !onDemand.IsOnDemand() || onDemand.ReferenceText() != "com.acme.util" {
		t.Fatalf("unexpected on-demand import pieces")
	}

	static := imports[3]
	if !static.IsStatic() || static.ImportedName() != "cap" ||
		static.ReferenceName() != "limit" || static.QualifierName() != "com.acme.Constants" {
		t.Fatalf("unexpected static import pieces")
	}
}

func TestNewImportFromText_DerivesPiecesLazily(t *testing.T) {
	file := NewFile("a.groovy")
	decl := NewImportFromText(file, "import static com.acme.Constants.limit as cap", Span{}, Span{})

	if !decl.IsStatic() || decl.AliasName() != "cap" || decl.ReferenceText() != "com.acme.Constants.limit" {
		t.Fatalf("unexpected derived pieces")
	}
}

func TestNewImportFromText_MalformedYieldsEmptyPieces(t *testing.T) {
	file := NewFile("a.groovy")
	decl := NewImportFromText(file, "import com.acme.* as Alias", Span{}, Span{})

	if decl.ReferenceText() != "" || decl.ImportedName() != "" {
		t.Fatalf("malformed statement must yield empty pieces")
	}
}

func TestResolveQualifier_CachedPerStructureVersion(t *testing.T) {
	table := symbols.NewTable()
	table.AddClass("com.acme", "Constants")
	source := &countingSource{table: table}

	file := FileFromSource("a.groovy", []byte("package p\nimport static com.acme.Constants.limit\n"))
	decl := file.Imports()[0]

	class, ok := decl.ResolveQualifier(source)
	if !ok || class.QualifiedName() != "com.acme.Constants" {
		t.Fatalf("expected qualifier to resolve, got %v %v", class, ok)
	}
	if _, ok := decl.ResolveQualifier(source); !ok {
		t.Fatal("expected cached qualifier to resolve")
	}
	if source.calls != 1 {
		t.Fatalf("expected one source call, got %d", source.calls)
	}

	file.MarkStructureChange()
	if _, ok := decl.ResolveQualifier(source); !ok {
		t.Fatal("expected qualifier to resolve after invalidation")
	}
	if source.calls != 2 {
		t.Fatalf("expected recomputation after structure change, got %d calls", source.calls)
	}
}

func TestResolveQualifier_MissReconsultedAfterChange(t *testing.T) {
	table := symbols.NewTable()
	source := &countingSource{table: table}

	file := FileFromSource("a.groovy", []byte("package p\nimport static com.acme.Constants.limit\n"))
	decl := file.Imports()[0]

	if _, ok := decl.ResolveQualifier(source); ok {
		t.Fatal("expected qualifier miss")
	}
	// The class appears, but the cache still answers until invalidation.
	table.AddClass("com.acme", "Constants")
	if _, ok := decl.ResolveQualifier(source); ok {
		t.Fatal("expected cached miss before structure change")
	}

	file.MarkStructureChange()
	if _, ok := decl.ResolveQualifier(source); !ok {
		t.Fatal("expected hit after structure change")
	}
}

func TestFileReload_ReplacesImportsAndBumpsVersion(t *testing.T) {
	file := FileFromSource("a.groovy", []byte("package p\nimport com.acme.Alpha\n"))
	v1 := file.StructureVersion()

	file.Reload([]byte("package q\nimport com.acme.Beta\nimport com.acme.util.*\n"))
	if file.PackageName() != "q" {
		t.Fatalf("unexpected package: %q", file.PackageName())
	}
	imports := file.Imports()
	if len(imports) != 2 || imports[0].ReferenceText() != "com.acme.Beta" {
		t.Fatalf("unexpected imports after reload: %+v", imports)
	}
	if file.StructureVersion() <= v1 {
		t.Fatal("expected structure version to advance")
	}
}
