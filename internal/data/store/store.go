package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"inscope/internal/engine/symbols"
)

const sqliteDriverName = "sqlite"

// SQLiteSymbolStore persists the symbol table and serves resolution directly
// from disk, so a large indexed project survives process restarts. It
// implements symbols.Source.
type SQLiteSymbolStore struct {
	db         *sql.DB
	projectKey string

	classStmt   *sql.Stmt
	memberStmt  *sql.Stmt
	packageStmt *sql.Stmt

	cacheMu     sync.RWMutex
	memberCache map[string][]*symbols.Member
}

func Open(path, projectKey string) (*SQLiteSymbolStore, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("symbol store path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("symbol store path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create symbol store directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite symbol store %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite symbol store %q: %w", cleanPath, err)
	}

	if err := migrateSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	key := strings.TrimSpace(projectKey)
	if key == "" {
		key = "default"
	}

	classStmt, err := db.Prepare(`SELECT simple_name, package_name FROM classes
 WHERE project_key = ? AND qualified_name = ?`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare class lookup: %w", err)
	}
	memberStmt, err := db.Prepare(`SELECT name, kind, is_static FROM members
 WHERE project_key = ? AND class_qualified_name = ? ORDER BY rowid`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare member lookup: %w", err)
	}
	// Nested classes carry dotted simple names (Outer.Inner) and are not
	// direct package children, matching the in-memory table's enumeration.
	packageStmt, err := db.Prepare(`SELECT qualified_name, simple_name FROM classes
 WHERE project_key = ? AND package_name = ? AND instr(simple_name, '.') = 0 ORDER BY qualified_name`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare package lookup: %w", err)
	}

	return &SQLiteSymbolStore{
		db:          db,
		projectKey:  key,
		classStmt:   classStmt,
		memberStmt:  memberStmt,
		packageStmt: packageStmt,
		memberCache: make(map[string][]*symbols.Member),
	}, nil
}

func migrateSchema(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS classes (
  project_key    TEXT NOT NULL,
  qualified_name TEXT NOT NULL,
  simple_name    TEXT NOT NULL,
  package_name   TEXT NOT NULL,
  PRIMARY KEY (project_key, qualified_name)
)`,
		`CREATE TABLE IF NOT EXISTS members (
  project_key          TEXT NOT NULL,
  class_qualified_name TEXT NOT NULL,
  name                 TEXT NOT NULL,
  kind                 INTEGER NOT NULL,
  is_static            INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_members_class ON members (project_key, class_qualified_name)`,
		`CREATE INDEX IF NOT EXISTS idx_classes_package ON classes (project_key, package_name)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate symbol schema: %w", err)
		}
	}
	return nil
}

// SyncFromTable replaces this project's stored symbols with the current
// contents of the in-memory table.
func (s *SQLiteSymbolStore) SyncFromTable(table *symbols.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin symbol sync: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM classes WHERE project_key = ?`, s.projectKey); err != nil {
		return fmt.Errorf("clear classes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM members WHERE project_key = ?`, s.projectKey); err != nil {
		return fmt.Errorf("clear members: %w", err)
	}

	insertClass, err := tx.Prepare(`INSERT INTO classes (project_key, qualified_name, simple_name, package_name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare class insert: %w", err)
	}
	defer insertClass.Close()
	insertMember, err := tx.Prepare(`INSERT INTO members (project_key, class_qualified_name, name, kind, is_static) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare member insert: %w", err)
	}
	defer insertMember.Close()

	for _, qn := range table.Classes() {
		class, ok := table.ResolveClass(qn)
		if !ok {
			continue
		}
		if _, err := insertClass.Exec(s.projectKey, class.QualifiedName(), class.DeclaredName(), class.PackageName()); err != nil {
			return fmt.Errorf("insert class %s: %w", qn, err)
		}
		var insertErr error
		class.ProcessMembers(func(m *symbols.Member) bool {
			_, insertErr = insertMember.Exec(s.projectKey, m.Owner, m.Name, int(m.Kind), boolToInt(m.Static))
			return insertErr == nil
		}, symbols.MemberFilter{})
		if insertErr != nil {
			return fmt.Errorf("insert members of %s: %w", qn, insertErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit symbol sync: %w", err)
	}

	s.cacheMu.Lock()
	s.memberCache = make(map[string][]*symbols.Member)
	s.cacheMu.Unlock()
	return nil
}

func (s *SQLiteSymbolStore) ResolveClass(qualifiedName string) (symbols.Class, bool) {
	var simple, pkg string
	err := s.classStmt.QueryRow(s.projectKey, qualifiedName).Scan(&simple, &pkg)
	if err != nil {
		return nil, false
	}
	return &storeClass{store: s, name: simple, qualified: qualifiedName, pkg: pkg}, true
}

func (s *SQLiteSymbolStore) ResolvePackage(qualifiedName string) (symbols.Package, bool) {
	if qualifiedName == "" {
		return nil, false
	}
	rows, err := s.packageStmt.Query(s.projectKey, qualifiedName)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var classes []*storeClass
	for rows.Next() {
		var qn, simple string
		if err := rows.Scan(&qn, &simple); err != nil {
			return nil, false
		}
		classes = append(classes, &storeClass{store: s, name: simple, qualified: qn, pkg: qualifiedName})
	}
	if rows.Err() != nil || len(classes) == 0 {
		return nil, false
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].qualified < classes[j].qualified })
	return &storePackage{qualified: qualifiedName, classes: classes}, true
}

var _ symbols.Source = (*SQLiteSymbolStore)(nil)

func (s *SQLiteSymbolStore) members(classQN string) []*symbols.Member {
	s.cacheMu.RLock()
	cached, ok := s.memberCache[classQN]
	s.cacheMu.RUnlock()
	if ok {
		return cached
	}

	rows, err := s.memberStmt.Query(s.projectKey, classQN)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var members []*symbols.Member
	for rows.Next() {
		var name string
		var kind, static int
		if err := rows.Scan(&name, &kind, &static); err != nil {
			return nil
		}
		members = append(members, &symbols.Member{
			Owner:  classQN,
			Name:   name,
			Kind:   symbols.Kind(kind),
			Static: static != 0,
		})
	}
	if rows.Err() != nil {
		return nil
	}

	s.cacheMu.Lock()
	s.memberCache[classQN] = members
	s.cacheMu.Unlock()
	return members
}

func (s *SQLiteSymbolStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.classStmt, s.memberStmt, s.packageStmt} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	return s.db.Close()
}

type storeClass struct {
	store     *SQLiteSymbolStore
	name      string
	qualified string
	pkg       string
}

func (c *storeClass) DeclaredName() string { return c.name }

func (c *storeClass) DeclaredKind() symbols.Kind { return symbols.KindClass }

func (c *storeClass) QualifiedName() string { return c.qualified }

func (c *storeClass) PackageName() string { return c.pkg }

func (c *storeClass) ProcessMembers(visit func(*symbols.Member) bool, filter symbols.MemberFilter) bool {
	for _, m := range c.store.members(c.qualified) {
		if !filter.Matches(m) {
			continue
		}
		if !visit(m) {
			return false
		}
	}
	return true
}

var _ symbols.Class = (*storeClass)(nil)

type storePackage struct {
	qualified string
	classes   []*storeClass
}

func (p *storePackage) QualifiedName() string { return p.qualified }

func (p *storePackage) ProcessClasses(visit func(symbols.Class) bool, name string) bool {
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

var _ symbols.Package = (*storePackage)(nil)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
