package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"inscope/internal/core/config"
	"inscope/internal/core/errors"
	"inscope/internal/core/watcher"
	"inscope/internal/data/store"
	"inscope/internal/engine/parser"
	"inscope/internal/engine/scope"
	"inscope/internal/engine/symbols"
	"inscope/internal/engine/syntax"
	"inscope/internal/shared/observability"
	"inscope/internal/shared/util"
)

// Update is pushed to the UI after every (re)scan.
type Update struct {
	Unresolved []UnresolvedImport
	Unused     []UnusedImport
	FileCount  int
	ClassCount int
}

// App wires the parser, the symbol table, and the scope resolver over one
// project tree.
type App struct {
	Config   *config.Config
	Parser   *parser.Parser
	Table    *symbols.Table
	Resolver *scope.Resolver

	source  symbols.Source
	store   *store.SQLiteSymbolStore
	limiter *util.Limiter
	watch   *watcher.Watcher

	mu            sync.RWMutex
	files         map[string]*syntax.File
	refsByFile    map[string]map[string]int
	classesByFile map[string][]string

	updateMu sync.RWMutex
	onUpdate func(Update)
	current  Update
}

func New(cfg *config.Config) (*App, error) {
	p := parser.NewParser(parser.NewGrammarLoader())
	p.SetExtensions(cfg.Extensions)

	table := symbols.NewTable()
	a := &App{
		Config:        cfg,
		Parser:        p,
		Table:         table,
		source:        table,
		limiter:       util.NewLimiter(cfg.Watch.RescansPerSec, cfg.Watch.RescanBurst),
		files:         make(map[string]*syntax.File),
		refsByFile:    make(map[string]map[string]int),
		classesByFile: make(map[string][]string),
	}

	if cfg.DB.Enabled {
		s, err := store.Open(cfg.DB.Path, cfg.DB.ProjectKey)
		if err != nil {
			slog.Warn("symbol store unavailable, falling back to in-memory table", "path", cfg.DB.Path, "error", err)
		} else {
			a.store = s
			a.source = s
		}
	}

	a.Resolver = scope.NewResolver(a.source)
	return a, nil
}

func (a *App) Close() error {
	if a.watch != nil {
		_ = a.watch.Close()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Source is the symbol source lookups run against: the SQLite store when one
// is open, the in-memory table otherwise.
func (a *App) Source() symbols.Source {
	return a.source
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	a.onUpdate = handler
	a.updateMu.Unlock()
}

func (a *App) CurrentUpdate() Update {
	a.updateMu.RLock()
	defer a.updateMu.RUnlock()
	return a.current
}

// InitialScan walks the configured source directories and indexes every
// supported file.
func (a *App) InitialScan() error {
	paths := make([]string, 0, len(a.Config.SourceDirs))
	for _, dir := range a.Config.SourceDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(a.Config.ProjectRoot, dir)
		}
		paths = append(paths, dir)
	}

	files, err := a.ScanDirectories(paths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return errors.AddContext(err, errors.CtxOperation, "initial_scan")
	}
	for _, path := range files {
		if err := a.ProcessFile(path); err != nil {
			slog.Warn("failed to process file", "path", path, "error", err)
		}
	}

	if a.store != nil {
		if err := a.store.SyncFromTable(a.Table); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "sync symbol store")
		}
	}

	a.refreshDiagnostics()
	return nil
}

// ScanDirectories lists supported source files under paths, honoring the
// exclusion globs.
func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	dirGlobs, err := compileGlobs(excludeDirs, "exclude dir")
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(excludeFiles, "exclude file")
	if err != nil {
		return nil, err
	}

	var out []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			normalized := filepath.ToSlash(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(normalized) || g.Match(d.Name()) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !a.Parser.Supports(path) {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(normalized) || g.Match(d.Name()) {
					return nil
				}
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func compileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(util.NormalizePatternPath(pattern))
		if err != nil {
			return nil, fmt.Errorf("compile %s pattern %q: %w", label, pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ProcessFile parses one file and folds its declarations into the workspace
// and the symbol table.
func (a *App) ProcessFile(path string) error {
	started := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeNotFound, "read source file")
	}

	parsed, err := a.Parser.ParseFile(path, content)
	if err != nil {
		return err
	}
	observability.ParsingDuration.Observe(time.Since(started).Seconds())

	a.mu.Lock()
	defer a.mu.Unlock()

	// Drop classes the previous version of this file contributed.
	for _, qn := range a.classesByFile[path] {
		a.Table.RemoveClass(qn)
	}

	registered := make([]string, 0, len(parsed.Classes))
	for _, decl := range parsed.Classes {
		class := a.Table.AddClass(decl.PackageName, decl.Name)
		for _, m := range decl.Members {
			class.AddMember(m.Name, m.Kind, m.Static)
		}
		registered = append(registered, decl.QualifiedName())
	}
	a.classesByFile[path] = registered

	if existing, ok := a.files[path]; ok {
		existing.Reload(content)
	} else {
		a.files[path] = parsed.Syntax
	}
	a.refsByFile[path] = parsed.References

	observability.SymbolTableClasses.Set(float64(a.Table.ClassCount()))
	return nil
}

// File returns the workspace's syntax view of path.
func (a *App) File(path string) (*syntax.File, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	f, ok := a.files[path]
	return f, ok
}

func (a *App) FileCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.files)
}

func (a *App) filePaths() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return util.SortedStringKeys(a.files)
}

// StartWatcher begins monitoring the source directories, reindexing changed
// files and advancing their structure versions.
func (a *App) StartWatcher() error {
	extensions := make([]string, 0, len(a.Config.Extensions))
	for ext := range a.Config.Extensions {
		extensions = append(extensions, ext)
	}

	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		extensions,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	a.watch = w

	paths := make([]string, 0, len(a.Config.SourceDirs))
	for _, dir := range a.Config.SourceDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(a.Config.ProjectRoot, dir)
		}
		paths = append(paths, dir)
	}
	return w.Watch(paths)
}

// HandleChanges reindexes edited files. Storm edits are throttled so lookup
// traffic is not starved by reparses.
func (a *App) HandleChanges(paths []string) {
	if !a.limiter.Allow(1) {
		observability.RescansThrottledTotal.Inc()
		_ = a.limiter.Wait(context.Background(), 1)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			a.removeFile(path)
			continue
		}
		if err := a.ProcessFile(path); err != nil {
			slog.Warn("failed to reprocess file", "path", path, "error", err)
		}
	}

	if a.store != nil {
		if err := a.store.SyncFromTable(a.Table); err != nil {
			slog.Warn("symbol store sync failed", "error", err)
		}
	}
	a.refreshDiagnostics()
}

func (a *App) removeFile(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, qn := range a.classesByFile[path] {
		a.Table.RemoveClass(qn)
	}
	delete(a.classesByFile, path)
	delete(a.files, path)
	delete(a.refsByFile, path)
	observability.SymbolTableClasses.Set(float64(a.Table.ClassCount()))
}

func (a *App) refreshDiagnostics() {
	update := Update{
		Unresolved: a.AnalyzeUnresolvedImports(),
		Unused:     a.AnalyzeUnusedImports(),
		FileCount:  a.FileCount(),
		ClassCount: a.Table.ClassCount(),
	}
	observability.UnresolvedImportsFound.Set(float64(len(update.Unresolved)))
	observability.UnusedImportsFound.Set(float64(len(update.Unused)))

	a.updateMu.Lock()
	a.current = update
	handler := a.onUpdate
	a.updateMu.Unlock()

	if handler != nil {
		handler(update)
	}
}

// Resolution is one entity a name lookup bound, with the import that
// produced it.
type Resolution struct {
	Entity symbols.Entity
	Via    *syntax.ImportDeclaration
}

// ResolveName resolves an unqualified name at a use site in the given file
// through its imports, in declaration order.
func (a *App) ResolveName(path, name string, kinds symbols.KindSet, origin int) ([]Resolution, error) {
	file, ok := a.File(path)
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "file not indexed: "+path)
	}

	started := time.Now()
	defer func() {
		observability.LookupDuration.Observe(time.Since(started).Seconds())
	}()
	for _, decl := range file.Imports() {
		observability.ImportsProcessedTotal.WithLabelValues(scope.Classify(decl).Kind.String()).Inc()
	}

	var results []Resolution
	req := &scope.Request{
		Kinds:  kinds,
		Name:   name,
		Origin: origin,
		Visit: func(entity symbols.Entity, binding scope.Binding) bool {
			results = append(results, Resolution{Entity: entity, Via: binding.Import})
			return true
		},
	}
	a.Resolver.ProcessFile(file, req)
	return results, nil
}
