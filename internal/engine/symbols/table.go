package symbols

import (
	"sort"
	"strings"
	"sync"
)

// Table is the in-memory symbol table backing resolution. Classes are keyed by
// qualified name; packages are derived from class registrations.
type Table struct {
	mu      sync.RWMutex
	classes map[string]*TableClass
}

func NewTable() *Table {
	return &Table{classes: make(map[string]*TableClass)}
}

// AddClass registers (or replaces) a class and returns a handle for member
// registration.
func (t *Table) AddClass(packageName, simpleName string) *TableClass {
	qualified := simpleName
	if packageName != "" {
		qualified = packageName + "." + simpleName
	}
	c := &TableClass{
		name:      simpleName,
		qualified: qualified,
		pkg:       packageName,
	}
	t.mu.Lock()
	t.classes[qualified] = c
	t.mu.Unlock()
	return c
}

// RemoveClass drops a class registration, used when a source file is reparsed.
func (t *Table) RemoveClass(qualifiedName string) {
	t.mu.Lock()
	delete(t.classes, qualifiedName)
	t.mu.Unlock()
}

func (t *Table) ClassCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.classes)
}

// Classes returns the qualified names of all registered classes, sorted.
func (t *Table) Classes() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.classes))
	for qn := range t.classes {
		names = append(names, qn)
	}
	t.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (t *Table) ResolveClass(qualifiedName string) (Class, bool) {
	t.mu.RLock()
	c, ok := t.classes[qualifiedName]
	t.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return c, true
}

func (t *Table) ResolvePackage(qualifiedName string) (Package, bool) {
	if qualifiedName == "" {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	prefix := qualifiedName + "."
	members := make([]*TableClass, 0)
	for qn, c := range t.classes {
		if strings.HasPrefix(qn, prefix) && !strings.Contains(qn[len(prefix):], ".") {
			members = append(members, c)
		}
	}
	if len(members) == 0 {
		return nil, false
	}
	sort.Slice(members, func(i, j int) bool { return members[i].qualified < members[j].qualified })
	return &tablePackage{qualified: qualifiedName, classes: members}, true
}

var _ Source = (*Table)(nil)

// TableClass is the Table's Class implementation.
type TableClass struct {
	name      string
	qualified string
	pkg       string

	mu      sync.RWMutex
	members []*Member
}

func (c *TableClass) DeclaredName() string { return c.name }

func (c *TableClass) DeclaredKind() Kind { return KindClass }

func (c *TableClass) QualifiedName() string { return c.qualified }

func (c *TableClass) PackageName() string { return c.pkg }

func (c *TableClass) AddMember(name string, kind Kind, static bool) *Member {
	m := &Member{Owner: c.qualified, Name: name, Kind: kind, Static: static}
	c.mu.Lock()
	c.members = append(c.members, m)
	c.mu.Unlock()
	return m
}

func (c *TableClass) ProcessMembers(visit func(*Member) bool, filter MemberFilter) bool {
	c.mu.RLock()
	members := make([]*Member, len(c.members))
	copy(members, c.members)
	c.mu.RUnlock()

	for _, m := range members {
		if !filter.Matches(m) {
			continue
		}
		if !visit(m) {
			return false
		}
	}
	return true
}

var _ Class = (*TableClass)(nil)

type tablePackage struct {
	qualified string
	classes   []*TableClass
}

func (p *tablePackage) QualifiedName() string { return p.qualified }

func (p *tablePackage) ProcessClasses(visit func(Class) bool, name string) bool {
	for _, c := range p.classes {
		if name != "" && c.name != name {
			continue
		}
		if !visit(c) {
			return false
		}
	}
	return true
}

var _ Package = (*tablePackage)(nil)
