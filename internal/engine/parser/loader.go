package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// GrammarLoader owns the tree-sitter grammars the indexer understands. The
// engine fronts a JVM language family, so only the Java grammar is loaded;
// Groovy-style sources are parsed with it best-effort, and anything the
// grammar cannot express degrades to header scanning.
type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{
		languages: map[string]*sitter.Language{
			"java": sitter.NewLanguage(tree_sitter_java.Language()),
		},
	}
}

func (gl *GrammarLoader) Get(lang string) (*sitter.Language, bool) {
	l, ok := gl.languages[lang]
	return l, ok
}

func (gl *GrammarLoader) Has(lang string) bool {
	_, ok := gl.languages[lang]
	return ok
}
