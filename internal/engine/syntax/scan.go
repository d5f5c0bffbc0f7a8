package syntax

import (
	"strings"
	"unicode"
)

// ImportStub is the precomputed index entry for one import declaration: the
// fast path that avoids re-deriving the declaration's pieces from raw text.
type ImportStub struct {
	ReferenceText string
	AliasName     string
	IsStatic      bool
	IsOnDemand    bool
}

// ScannedImport pairs a stub with the spans the declaration occupies in the
// source: the whole statement and the dotted reference inside it.
type ScannedImport struct {
	Stub    ImportStub
	Raw     string
	Span    Span
	RefSpan Span
}

// ScanResult is the header information extracted from one source file.
type ScanResult struct {
	PackageName string
	Imports     []ScannedImport
}

// ScanSource extracts the package declaration and all import declarations
// from source text. Malformed statements are skipped rather than reported:
// a half-typed import must not break scanning of the rest of the file.
func ScanSource(source []byte) ScanResult {
	var res ScanResult

	text := string(source)
	offset := 0
	inBlockComment := false
	for len(text) > 0 {
		line := text
		next := ""
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line = text[:i]
			next = text[i+1:]
		}
		lineOffset := offset
		offset += len(line) + 1
		text = next

		trimmed, lead := trimIndent(line)
		if inBlockComment {
			if i := strings.Index(trimmed, "*/"); i >= 0 {
				trimmed = strings.TrimSpace(trimmed[i+2:])
			} else {
				continue
			}
		}
		if i := strings.Index(trimmed, "/*"); i >= 0 && !strings.Contains(trimmed[:i], "//") {
			if !strings.Contains(trimmed[i:], "*/") {
				inBlockComment = true
			}
			trimmed = strings.TrimSpace(trimmed[:i])
		}
		if i := strings.Index(trimmed, "//"); i >= 0 {
			trimmed = strings.TrimRight(trimmed[:i], " \t")
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "@") {
			continue
		}

		if res.PackageName == "" {
			if rest, ok := cutKeyword(trimmed, "package"); ok {
				name, _ := scanDottedName(rest)
				res.PackageName = name
				continue
			}
		}

		rest, ok := cutKeyword(trimmed, "import")
		if !ok {
			continue
		}
		stub, refStart, refLen, ok := parseImportClause(rest)
		if !ok {
			continue
		}
		stmtStart := lineOffset + lead
		stmtEnd := stmtStart + len(strings.TrimRight(trimmed, " \t"))
		// refStart is relative to rest; rebase onto the line.
		refBase := stmtStart + (len(trimmed) - len(rest))
		res.Imports = append(res.Imports, ScannedImport{
			Stub:    stub,
			Raw:     strings.TrimRight(trimmed, " \t;"),
			Span:    Span{Start: stmtStart, End: stmtEnd},
			RefSpan: Span{Start: refBase + refStart, End: refBase + refStart + refLen},
		})
	}
	return res
}

// parseImportClause parses everything after the "import" keyword. It returns
// the stub plus the offset and length of the dotted reference within rest.
func parseImportClause(rest string) (stub ImportStub, refStart, refLen int, ok bool) {
	consumed := 0
	if after, found := cutKeyword(strings.TrimLeft(rest, " \t"), "static"); found {
		stub.IsStatic = true
		consumed = len(rest) - len(after)
		rest = after
	}

	lead := len(rest) - len(strings.TrimLeft(rest, " \t"))
	rest = strings.TrimLeft(rest, " \t")
	consumed += lead

	name, n := scanDottedName(rest)
	if name == "" {
		return ImportStub{}, 0, 0, false
	}
	refStart = consumed
	if strings.HasSuffix(name, ".*") {
		stub.IsOnDemand = true
		name = strings.TrimSuffix(name, ".*")
		if name == "" {
			return ImportStub{}, 0, 0, false
		}
	}
	stub.ReferenceText = name
	refLen = len(name)

	tail := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest[n:]), ";"))
	if after, found := cutKeyword(tail, "as"); found {
		alias, _ := scanDottedName(strings.TrimSpace(after))
		if alias == "" || strings.Contains(alias, ".") || stub.IsOnDemand {
			return ImportStub{}, 0, 0, false
		}
		stub.AliasName = alias
	} else if tail != "" {
		return ImportStub{}, 0, 0, false
	}
	return stub, refStart, refLen, true
}

// cutKeyword strips a leading keyword followed by whitespace.
func cutKeyword(s, keyword string) (string, bool) {
	if !strings.HasPrefix(s, keyword) {
		return s, false
	}
	rest := s[len(keyword):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return s, false
	}
	return strings.TrimLeft(rest, " \t"), true
}

// scanDottedName consumes a leading dotted identifier chain, allowing a
// trailing ".*" segment. Returns the chain and the number of bytes consumed.
func scanDottedName(s string) (string, int) {
	end := 0
	for end < len(s) {
		r := rune(s[end])
		if r == '*' || r == '.' || r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			end++
			continue
		}
		break
	}
	name := strings.TrimRight(s[:end], ".")
	return name, end
}

func trimIndent(line string) (string, int) {
	trimmed := strings.TrimLeft(line, " \t")
	return trimmed, len(line) - len(trimmed)
}
