package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"inscope/internal/core/errors"
	"inscope/internal/engine/symbols"
	"inscope/internal/engine/syntax"
)

// ClassDecl is one class-like declaration extracted from a source file,
// destined for the symbol table.
type ClassDecl struct {
	PackageName string
	Name        string // dotted for nested declarations: Outer.Inner
	Members     []MemberDecl
}

func (c ClassDecl) QualifiedName() string {
	if c.PackageName == "" {
		return c.Name
	}
	return c.PackageName + "." + c.Name
}

type MemberDecl struct {
	Name   string
	Kind   symbols.Kind
	Static bool
}

// ParsedFile is the indexer's output for one source file: the syntax-level
// view (package + import stubs) plus the declarations it contributes to the
// symbol table.
type ParsedFile struct {
	Syntax  *syntax.File
	Classes []ClassDecl
	// References counts identifier occurrences outside the import list,
	// feeding the unused-import analysis.
	References map[string]int
}

// Parser turns source files into ParsedFiles. Imports always come from the
// header scanner (it understands aliased Groovy-style imports the Java
// grammar cannot parse); class declarations come from the tree-sitter pass.
type Parser struct {
	loader     *GrammarLoader
	extensions map[string]string
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{
		loader: loader,
		extensions: map[string]string{
			".java":   "java",
			".groovy": "java",
			".gvy":    "java",
		},
	}
}

// SetExtensions replaces the extension-to-grammar mapping from configuration.
func (p *Parser) SetExtensions(ext map[string]string) {
	if len(ext) == 0 {
		return
	}
	p.extensions = make(map[string]string, len(ext))
	for k, v := range ext {
		p.extensions[strings.ToLower(k)] = v
	}
}

func (p *Parser) Supports(path string) bool {
	_, ok := p.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (p *Parser) ParseFile(path string, content []byte) (*ParsedFile, error) {
	lang, ok := p.extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported file: %s", path))
	}

	res := &ParsedFile{Syntax: syntax.FileFromSource(path, content)}

	grammar, ok := p.loader.Get(lang)
	if !ok {
		// Header-only scan still yields a usable importing-file view.
		return res, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "set grammar")
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "parse failed")
	}
	defer tree.Close()

	res.Classes = extractClasses(tree.RootNode(), content, res.Syntax.PackageName())
	res.References = collectReferences(tree.RootNode(), content)
	return res, nil
}
