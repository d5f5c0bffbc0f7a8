package parser

import (
	"testing"

	"inscope/internal/core/errors"
	"inscope/internal/engine/symbols"
)

const javaFixture = `package com.acme;

import com.other.Util;

public class Constants {
    public static final int MAX_SIZE = 10;
    private String name;

    public static int maxSize() {
        return MAX_SIZE;
    }

    public String getName() {
        return name;
    }
}
`

func newTestParser() *Parser {
	return NewParser(NewGrammarLoader())
}

func TestParseFile_ClassesAndMembers(t *testing.T) {
	parsed, err := newTestParser().ParseFile("Constants.java", []byte(javaFixture))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if parsed.Syntax.PackageName() != "com.acme" {
		t.Fatalf("unexpected package: %q", parsed.Syntax.PackageName())
	}
	if len(parsed.Syntax.Imports()) != 1 {
		t.Fatalf("expected 1 import, got %d", len(parsed.Syntax.Imports()))
	}

	if len(parsed.Classes) != 1 {
		t.Fatalf("expected 1 class, got %+v", parsed.Classes)
	}
	class := parsed.Classes[0]
	if class.Name != "Constants" || class.QualifiedName() != "com.acme.Constants" {
		t.Fatalf("unexpected class: %+v", class)
	}

	members := make(map[string]MemberDecl)
	for _, m := range class.Members {
		members[m.Name] = m
	}
	if m, ok := members["MAX_SIZE"]; !ok || m.Kind != symbols.KindField || !m.Static {
		t.Fatalf("unexpected MAX_SIZE member: %+v", members)
	}
	if m, ok := members["name"]; !ok || m.Kind != symbols.KindField || m.Static {
		t.Fatalf("unexpected name member: %+v", members)
	}
	if m, ok := members["maxSize"]; !ok || m.Kind != symbols.KindMethod || !m.Static {
		t.Fatalf("unexpected maxSize member: %+v", members)
	}
	if m, ok := members["getName"]; !ok || m.Kind != symbols.KindMethod || m.Static {
		t.Fatalf("unexpected getName member: %+v", members)
	}
}

func TestParseFile_ReferencesSkipImportList(t *testing.T) {
	parsed, err := newTestParser().ParseFile("Constants.java", []byte(javaFixture))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if parsed.References["Util"] != 0 {
		t.Fatalf("import-only identifier must not count as a reference, got %d", parsed.References["Util"])
	}
	if parsed.References["MAX_SIZE"] == 0 {
		t.Fatal("expected body reference to MAX_SIZE")
	}
}

func TestParseFile_NestedClassFlattened(t *testing.T) {
	source := []byte(`package p;

public class Outer {
    public static class Inner {
        public static int VALUE = 1;
    }
}
`)
	parsed, err := newTestParser().ParseFile("Outer.java", source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	names := make(map[string]bool)
	for _, c := range parsed.Classes {
		names[c.Name] = true
	}
	if !names["Outer"] || !names["Outer.Inner"] {
		t.Fatalf("expected flattened nested class names, got %+v", parsed.Classes)
	}
}

func TestParseFile_EnumConstants(t *testing.T) {
	source := []byte(`package p;

public enum Color {
    RED, GREEN;
}
`)
	parsed, err := newTestParser().ParseFile("Color.java", source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.Classes) != 1 {
		t.Fatalf("expected 1 class, got %+v", parsed.Classes)
	}

	consts := make(map[string]bool)
	for _, m := range parsed.Classes[0].Members {
		if m.Kind == symbols.KindEnumConst {
			if !m.Static {
				t.Fatalf("enum constants are implicitly static: %+v", m)
			}
			consts[m.Name] = true
		}
	}
	if !consts["RED"] || !consts["GREEN"] {
		t.Fatalf("expected enum constants, got %+v", parsed.Classes[0].Members)
	}
}

func TestParseFile_GroovyAliasImportsViaHeaderScan(t *testing.T) {
	source := []byte(`package com.app

import com.acme.Beta as Gamma
`)
	parsed, err := newTestParser().ParseFile("script.groovy", source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	imports := parsed.Syntax.Imports()
	if len(imports) != 1 || imports[0].AliasName() != "Gamma" {
		t.Fatalf("expected aliased import from header scan, got %+v", imports)
	}
}

func TestParseFile_HeaderOnlyWhenGrammarMissing(t *testing.T) {
	p := newTestParser()
	p.SetExtensions(map[string]string{".kt": "kotlin"})

	parsed, err := p.ParseFile("a.kt", []byte("package p\nimport com.acme.Alpha\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Syntax == nil || len(parsed.Syntax.Imports()) != 1 {
		t.Fatal("expected header scan result")
	}
	if len(parsed.Classes) != 0 {
		t.Fatalf("expected no classes without a grammar, got %+v", parsed.Classes)
	}
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	_, err := newTestParser().ParseFile("a.txt", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.CodeNotSupported) {
		t.Fatalf("expected not-supported code, got %v", err)
	}
}

func TestSupports(t *testing.T) {
	p := newTestParser()
	if !p.Supports("A.java") || !p.Supports("b.GROOVY") {
		t.Fatal("expected default extensions to be supported")
	}
	if p.Supports("c.txt") {
		t.Fatal("unexpected support for .txt")
	}
}
