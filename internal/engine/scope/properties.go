package scope

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Property-accessor naming. A statically imported field is reachable by its
// own name and by its getter/setter forms, so lookups for any of the four
// must probe the qualifier class.

// capitalizeProperty follows the bean convention: a name whose second letter
// is already upper case keeps its original casing ("uRL" stays "uRL").
func capitalizeProperty(name string) string {
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	if len(name) > size {
		second, _ := utf8.DecodeRuneInString(name[size:])
		if unicode.IsUpper(second) {
			return name
		}
	}
	return string(unicode.ToUpper(first)) + name[size:]
}

func GetterName(name string) string {
	return "get" + capitalizeProperty(name)
}

func BoolGetterName(name string) string {
	return "is" + capitalizeProperty(name)
}

func SetterName(name string) string {
	return "set" + capitalizeProperty(name)
}

// AccessorNames expands a name into the four forms a property-style reference
// might use, in a fixed order: the name itself, the plain getter, the boolean
// getter, and the setter.
func AccessorNames(name string) []string {
	return []string{
		name,
		GetterName(name),
		BoolGetterName(name),
		SetterName(name),
	}
}

// PropertyName inverts an accessor name back to its property, or returns ""
// when name is not an accessor form.
func PropertyName(accessor string) string {
	var body string
	switch {
	case strings.HasPrefix(accessor, "get"), strings.HasPrefix(accessor, "set"):
		body = accessor[3:]
	case strings.HasPrefix(accessor, "is"):
		body = accessor[2:]
	default:
		return ""
	}
	if body == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(body)
	if !unicode.IsUpper(first) {
		return ""
	}
	if len(body) > size {
		second, _ := utf8.DecodeRuneInString(body[size:])
		if unicode.IsUpper(second) {
			return body
		}
	}
	return string(unicode.ToLower(first)) + body[size:]
}

type namePair struct {
	requested string // the variant a caller may ask for
	actual    string // the member name variant to probe on the qualifier
}

// accessorPairs pairs requested-name variants against actual member-name
// variants, positionally. When the import is not aliased both sides derive
// from the same root, so the pairing is the identity. Under an alias, a
// caller asking for the alias's accessor form must be matched against the
// original member's corresponding accessor form: "import static Foo.bar as
// baz" lets a getBaz lookup reach the real getBar member.
func accessorPairs(importedName, referenceName string) []namePair {
	requested := AccessorNames(importedName)
	actual := requested
	if importedName != referenceName {
		actual = AccessorNames(referenceName)
	}
	pairs := make([]namePair, len(requested))
	for i := range requested {
		pairs[i] = namePair{requested: requested[i], actual: actual[i]}
	}
	return pairs
}
