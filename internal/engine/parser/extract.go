package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"inscope/internal/engine/symbols"
)

// extractClasses walks the AST collecting class-like declarations and their
// members. Nested declarations are flattened into dotted names.
func extractClasses(root *sitter.Node, source []byte, packageName string) []ClassDecl {
	if root == nil {
		return nil
	}
	var out []ClassDecl
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if isClassLike(child.Kind()) {
			out = appendClass(out, child, source, packageName, "")
		}
	}
	return out
}

func isClassLike(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return true
	default:
		return false
	}
}

func appendClass(out []ClassDecl, node *sitter.Node, source []byte, packageName, outer string) []ClassDecl {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return out
	}
	name := text(nameNode, source)
	if outer != "" {
		name = outer + "." + name
	}

	decl := ClassDecl{PackageName: packageName, Name: name}
	// Interface and enum members are implicitly static.
	implicitStatic := node.Kind() == "interface_declaration" || node.Kind() == "enum_declaration"

	body := node.ChildByFieldName("body")
	if body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			member := body.Child(i)
			switch member.Kind() {
			case "field_declaration":
				static := implicitStatic || hasStaticModifier(member, source)
				for _, fieldName := range declaratorNames(member, source) {
					decl.Members = append(decl.Members, MemberDecl{Name: fieldName, Kind: symbols.KindField, Static: static})
				}
			case "method_declaration":
				if n := member.ChildByFieldName("name"); n != nil {
					decl.Members = append(decl.Members, MemberDecl{
						Name:   text(n, source),
						Kind:   symbols.KindMethod,
						Static: implicitStatic || hasStaticModifier(member, source),
					})
				}
			case "enum_constant":
				if n := member.ChildByFieldName("name"); n != nil {
					decl.Members = append(decl.Members, MemberDecl{Name: text(n, source), Kind: symbols.KindEnumConst, Static: true})
				}
			case "enum_body_declarations":
				for j := uint(0); j < member.ChildCount(); j++ {
					inner := member.Child(j)
					switch inner.Kind() {
					case "field_declaration":
						static := hasStaticModifier(inner, source)
						for _, fieldName := range declaratorNames(inner, source) {
							decl.Members = append(decl.Members, MemberDecl{Name: fieldName, Kind: symbols.KindField, Static: static})
						}
					case "method_declaration":
						if n := inner.ChildByFieldName("name"); n != nil {
							decl.Members = append(decl.Members, MemberDecl{
								Name:   text(n, source),
								Kind:   symbols.KindMethod,
								Static: hasStaticModifier(inner, source),
							})
						}
					}
				}
			default:
				if isClassLike(member.Kind()) {
					if n := member.ChildByFieldName("name"); n != nil {
						decl.Members = append(decl.Members, MemberDecl{
							Name:   text(n, source),
							Kind:   symbols.KindClass,
							Static: implicitStatic || hasStaticModifier(member, source),
						})
					}
					out = appendClass(out, member, source, packageName, name)
				}
			}
		}
	}
	return append(out, decl)
}

func hasStaticModifier(node *sitter.Node, source []byte) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "modifiers" {
			continue
		}
		for _, mod := range strings.Fields(text(child, source)) {
			if mod == "static" {
				return true
			}
		}
	}
	return false
}

func declaratorNames(field *sitter.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < field.ChildCount(); i++ {
		child := field.Child(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		if n := child.ChildByFieldName("name"); n != nil {
			names = append(names, text(n, source))
		}
	}
	return names
}

// collectReferences counts identifier occurrences outside the package and
// import declarations.
func collectReferences(root *sitter.Node, source []byte) map[string]int {
	refs := make(map[string]int)
	if root == nil {
		return refs
	}
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		switch node.Kind() {
		case "import_declaration", "package_declaration":
			return
		case "identifier", "type_identifier":
			refs[text(node, source)]++
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}
	walk(root)
	return refs
}

func text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

