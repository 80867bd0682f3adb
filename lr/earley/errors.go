package earley

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/sppf"
)

// ErrCancelled is returned (wrapped) if a parse has been cancelled by its context.
var ErrCancelled = sppf.ErrCancelled

// SyntaxError describes an unmet expectation: at input position Position,
// terminal Expected would have allowed the parse to continue, but the input
// held token Got instead. Got is nil at the end of input.
type SyntaxError struct {
	Expected lr.Symbol
	Got      *lr.Token
	Position int
}

func (e SyntaxError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("expected %v, got end of input at %d", e.Expected, e.Position)
	}
	return fmt.Sprintf("expected %v, got %v", e.Expected, *e.Got)
}

// ParseError is returned for input which is not part of the grammar's language.
// It holds the syntax errors recorded at the furthest input position
// the parser has been able to reach, sorted by expected symbol.
type ParseError struct {
	Position int
	Errors   []SyntaxError
}

func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("syntax error at %d: no derivation for input", e.Position)
	}
	msgs := make([]string, len(e.Errors))
	for i, se := range e.Errors {
		msgs[i] = se.Error()
	}
	return fmt.Sprintf("syntax error at %d: %s", e.Position, strings.Join(msgs, "; "))
}

// Expected returns the terminals which would have been accepted at the error position.
func (e *ParseError) Expected() []lr.Symbol {
	syms := make([]lr.Symbol, len(e.Errors))
	for i, se := range e.Errors {
		syms[i] = se.Expected
	}
	return syms
}
