package lr

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// SymbolKind distinguishes terminals from non-terminals.
type SymbolKind uint8

// Kinds of grammar symbols. The zero value is not a valid kind.
const (
	TerminalKind SymbolKind = iota + 1
	NonTerminalKind
)

func (k SymbolKind) String() string {
	switch k {
	case TerminalKind:
		return "terminal"
	case NonTerminalKind:
		return "non-terminal"
	}
	return "invalid"
}

// Symbol is a grammar symbol. Symbols are values and may be used as map keys.
// Two symbols are equal if and only if they have the same kind and label.
type Symbol struct {
	Kind  SymbolKind
	Label string
}

// T creates a terminal symbol.
func T(label string) Symbol {
	return Symbol{Kind: TerminalKind, Label: label}
}

// N creates a non-terminal symbol.
func N(label string) Symbol {
	return Symbol{Kind: NonTerminalKind, Label: label}
}

// EOF is a pseudo terminal denoting the end of input. It never occurs in a
// grammar, but is reported as an expected symbol for input which continues
// after a complete derivation of the start symbol.
var EOF = Symbol{Kind: TerminalKind, Label: "$eof"}

// IsTerminal returns true if A is a terminal symbol.
func (A Symbol) IsTerminal() bool {
	return A.Kind == TerminalKind
}

// IsNonTerminal returns true if A is a non-terminal symbol.
func (A Symbol) IsNonTerminal() bool {
	return A.Kind == NonTerminalKind
}

// IsValid is false for the zero symbol.
func (A Symbol) IsValid() bool {
	return A.Kind == TerminalKind || A.Kind == NonTerminalKind
}

// Terminals are rendered in quotes, non-terminals as plain labels.
func (A Symbol) String() string {
	if A == EOF {
		return "end of input"
	}
	switch A.Kind {
	case TerminalKind:
		return "'" + A.Label + "'"
	case NonTerminalKind:
		return A.Label
	}
	return "<none>"
}

// --- Words -----------------------------------------------------------------

// Word is a sequence of grammar symbols.
type Word []Symbol

// Epsilon is the empty word.
var Epsilon = Word{}

// Equal compares two words symbol by symbol.
func (w Word) Equal(other Word) bool {
	return slices.Equal(w, other)
}

// IsEmpty is true for ε.
func (w Word) IsEmpty() bool {
	return len(w) == 0
}

func (w Word) String() string {
	if len(w) == 0 {
		return "ε"
	}
	var b strings.Builder
	for i, A := range w {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(A.String())
	}
	return b.String()
}

// --- Productions -----------------------------------------------------------

// Production is a rule LHS -> RHS of a grammar. Productions are compared
// structurally; use Key to get a comparable representation.
type Production struct {
	LHS Symbol
	RHS Word
}

// P is a shortcut for creating a production.
func P(lhs Symbol, rhs ...Symbol) Production {
	if rhs == nil {
		rhs = Epsilon
	}
	return Production{LHS: lhs, RHS: rhs}
}

// ProductionKey is a comparable rendering of a production, suitable for
// hashing.
type ProductionKey string

// Key returns the structural key of p. Productions have equal keys if and
// only if they are structurally equal.
func (p Production) Key() ProductionKey {
	var b strings.Builder
	writeKeySymbol(&b, p.LHS)
	for _, A := range p.RHS {
		writeKeySymbol(&b, A)
	}
	return ProductionKey(b.String())
}

func writeKeySymbol(b *strings.Builder, A Symbol) {
	fmt.Fprintf(b, "%d%d:%s", A.Kind, len(A.Label), A.Label)
}

// Equal compares two productions structurally.
func (p Production) Equal(other Production) bool {
	return p.LHS == other.LHS && p.RHS.Equal(other.RHS)
}

func (p Production) String() string {
	return p.LHS.String() + " -> " + p.RHS.String()
}
