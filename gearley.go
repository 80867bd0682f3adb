package gearley

import "fmt"

// Span is a small type for capturing a length of input token run.
// For every terminal and non-terminal, a parse forest will track which
// input positions this symbol covers. A span denotes a start position and
// an end position (exclusive), both counted in tokens.
//
// A span with From() == To() covers no input. This is the span of
// non-terminals deriving ε.
type Span [2]int

// MakeSpan returns a span covering the tokens from…to-1.
func MakeSpan(from, to int) Span {
	return Span{from, to}
}

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the number of tokens a span covers.
func (s Span) Len() int {
	return s[1] - s[0]
}

// IsEmpty is a predicate: does this span cover no input at all?
func (s Span) IsEmpty() bool {
	return s[0] == s[1]
}

// Contains is a predicate: is position pos covered by this span?
func (s Span) Contains(pos int) bool {
	return pos >= s[0] && pos < s[1]
}

// Extend returns a span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
