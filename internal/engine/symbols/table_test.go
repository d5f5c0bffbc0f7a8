package symbols

import (
	"testing"
)

func TestTable_ResolveClass(t *testing.T) {
	table := NewTable()
	table.AddClass("com.acme", "Alpha")
	table.AddClass("", "Plain")

	class, ok := table.ResolveClass("com.acme.Alpha")
	if !ok || class.DeclaredName() != "Alpha" || class.PackageName() != "com.acme" {
		t.Fatalf("unexpected class: %v %v", class, ok)
	}

	class, ok = table.ResolveClass("Plain")
	if !ok || class.QualifiedName() != "Plain" {
		t.Fatalf("default-package class must resolve by simple name: %v %v", class, ok)
	}

	if _, ok := table.ResolveClass("com.acme.Missing"); ok {
		t.Fatal("expected miss for unknown class")
	}
}

func TestTable_RemoveClass(t *testing.T) {
	table := NewTable()
	table.AddClass("com.acme", "Alpha")
	table.RemoveClass("com.acme.Alpha")

	if _, ok := table.ResolveClass("com.acme.Alpha"); ok {
		t.Fatal("expected class to be removed")
	}
	if table.ClassCount() != 0 {
		t.Fatalf("expected empty table, got %d", table.ClassCount())
	}
}

func TestTable_ResolvePackage_DirectChildrenOnly(t *testing.T) {
	table := NewTable()
	table.AddClass("com.acme", "Alpha")
	table.AddClass("com.acme", "Beta")
	table.AddClass("com.acme.util", "Helper")

	pkg, ok := table.ResolvePackage("com.acme")
	if !ok || pkg.QualifiedName() != "com.acme" {
		t.Fatalf("unexpected package: %v %v", pkg, ok)
	}

	var names []string
	pkg.ProcessClasses(func(c Class) bool {
		names = append(names, c.DeclaredName())
		return true
	}, "")
	if len(names) != 2 {
		t.Fatalf("nested-package classes must not enumerate as direct children: %v", names)
	}

	if _, ok := table.ResolvePackage("com.missing"); ok {
		t.Fatal("expected miss for unknown package")
	}
}

func TestTable_ResolvePackage_NameFilter(t *testing.T) {
	table := NewTable()
	table.AddClass("com.acme", "Alpha")
	table.AddClass("com.acme", "Beta")

	pkg, _ := table.ResolvePackage("com.acme")
	var names []string
	pkg.ProcessClasses(func(c Class) bool {
		names = append(names, c.DeclaredName())
		return true
	}, "Beta")
	if len(names) != 1 || names[0] != "Beta" {
		t.Fatalf("expected filtered enumeration, got %v", names)
	}
}

func TestProcessMembers_Filter(t *testing.T) {
	table := NewTable()
	class := table.AddClass("com.acme", "Constants")
	class.AddMember("limit", KindField, true)
	class.AddMember("getLimit", KindMethod, true)
	class.AddMember("instance", KindField, false)

	var names []string
	class.ProcessMembers(func(m *Member) bool {
		names = append(names, m.Name)
		return true
	}, MemberFilter{StaticOnly: true})
	if len(names) != 2 {
		t.Fatalf("expected only static members, got %v", names)
	}

	names = nil
	class.ProcessMembers(func(m *Member) bool {
		names = append(names, m.Name)
		return true
	}, MemberFilter{Name: "limit"})
	if len(names) != 1 || names[0] != "limit" {
		t.Fatalf("expected name-filtered members, got %v", names)
	}

	names = nil
	class.ProcessMembers(func(m *Member) bool {
		names = append(names, m.Name)
		return true
	}, MemberFilter{Kinds: Kinds(KindMethod)})
	if len(names) != 1 || names[0] != "getLimit" {
		t.Fatalf("expected kind-filtered members, got %v", names)
	}
}

func TestProcessMembers_EarlyStop(t *testing.T) {
	table := NewTable()
	class := table.AddClass("com.acme", "Constants")
	class.AddMember("a", KindField, true)
	class.AddMember("b", KindField, true)

	seen := 0
	cont := class.ProcessMembers(func(m *Member) bool {
		seen++
		return false
	}, MemberFilter{})
	if cont {
		t.Fatal("expected early stop to propagate")
	}
	if seen != 1 {
		t.Fatalf("expected one visit, got %d", seen)
	}
}

func TestKindSet(t *testing.T) {
	var empty KindSet
	if !empty.Accepts(KindClass) || !empty.Accepts(KindVariable) {
		t.Fatal("empty set must accept every kind")
	}

	set := Kinds(KindClass, KindField)
	if !set.Has(KindClass) || !set.Has(KindField) || set.Has(KindMethod) {
		t.Fatalf("unexpected membership: %v", set)
	}
	if set.Accepts(KindMethod) {
		t.Fatal("non-empty set must reject absent kinds")
	}
}

func TestClasses_Sorted(t *testing.T) {
	table := NewTable()
	table.AddClass("com.b", "Zed")
	table.AddClass("com.a", "Alpha")

	got := table.Classes()
	if len(got) != 2 || got[0] != "com.a.Alpha" || got[1] != "com.b.Zed" {
		t.Fatalf("expected sorted qualified names, got %v", got)
	}
}
