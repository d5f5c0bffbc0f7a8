package syntax

// Span is a half-open byte range [Start, End) within a source file.
type Span struct {
	Start int
	End   int
}

// Contains reports whether byte offset pos falls inside the span. Negative
// offsets never match, so callers can pass -1 to mean "no position".
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

func (s Span) Empty() bool {
	return s.End <= s.Start
}
