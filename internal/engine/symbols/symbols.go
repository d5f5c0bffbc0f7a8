package symbols

// Kind classifies a declaration that can participate in name lookup.
type Kind int

const (
	KindClass Kind = iota
	KindMethod
	KindField
	KindEnumConst
	// Kinds below are never produced by an import contribution but may
	// appear in a scope walker's request hints.
	KindVariable
	KindPackage
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindEnumConst:
		return "enum_const"
	case KindVariable:
		return "variable"
	case KindPackage:
		return "package"
	default:
		return "unknown"
	}
}

// KindSet is a bitset of declaration kinds. The zero value is the empty set,
// which lookup requests interpret as "accept any kind".
type KindSet uint16

func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

func (s KindSet) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

func (s KindSet) Empty() bool {
	return s == 0
}

// Accepts reports whether a declaration of kind k satisfies the hint:
// the empty set accepts everything.
func (s KindSet) Accepts(k Kind) bool {
	return s.Empty() || s.Has(k)
}

// Entity is any declaration a lookup visitor can receive: a Class or a *Member.
type Entity interface {
	DeclaredName() string
	DeclaredKind() Kind
}

// Member is a class-level declaration (method, field, enum constant, or a
// nested class) owned by a class.
type Member struct {
	Owner  string // qualified name of the declaring class
	Name   string
	Kind   Kind
	Static bool
}

func (m *Member) DeclaredName() string { return m.Name }

func (m *Member) DeclaredKind() Kind { return m.Kind }

// MemberFilter narrows a member enumeration. The zero value matches every
// member.
type MemberFilter struct {
	StaticOnly bool
	Name       string // empty = any name
	Kinds      KindSet
}

// Matches reports whether the member passes the filter.
func (f MemberFilter) Matches(m *Member) bool {
	if f.StaticOnly && !m.Static {
		return false
	}
	if f.Name != "" && f.Name != m.Name {
		return false
	}
	return f.Kinds.Accepts(m.Kind)
}

// Class is an opaque handle to a resolved class declaration.
type Class interface {
	Entity
	QualifiedName() string
	PackageName() string
	// ProcessMembers feeds matching members to visit in declaration order.
	// It returns false as soon as visit returns false.
	ProcessMembers(visit func(*Member) bool, filter MemberFilter) bool
}

// Package is an opaque handle to a resolved package.
type Package interface {
	QualifiedName() string
	// ProcessClasses feeds the package's classes to visit. A non-empty name
	// restricts the enumeration to classes with that simple name. It returns
	// false as soon as visit returns false.
	ProcessClasses(visit func(Class) bool, name string) bool
}

// Source resolves qualified names against a symbol table. Resolution failure
// is reported through the boolean, never as an error.
type Source interface {
	ResolveClass(qualifiedName string) (Class, bool)
	ResolvePackage(qualifiedName string) (Package, bool)
}
