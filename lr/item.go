package lr

import (
	"strings"
)

// Item is a dotted LR(0) item, i.e. a production together with a marker
// how much of its right hand side has already been recognized:
//
//	S -> a • S a
//
// Items are values and may be used as map keys. Items are only meaningful
// in the context of the grammar they have been created from.
type Item struct {
	rule   *Production
	serial int
	dot    int
}

// StartItem returns the item for production number serial of grammar g,
// with the dot in front of the right hand side.
// If serial is out of range, the zero item is returned.
func StartItem(g *Grammar, serial int) Item {
	p := g.Production(serial)
	if p == nil {
		return Item{}
	}
	return Item{rule: p, serial: serial}
}

// IsValid is false for the zero item.
func (i Item) IsValid() bool {
	return i.rule != nil
}

// Rule returns the production of an item.
func (i Item) Rule() *Production {
	return i.rule
}

// Serial returns the serial number of the item's production.
func (i Item) Serial() int {
	return i.serial
}

// Dot returns the position of the dot, i.e. the number of symbols
// recognized so far.
func (i Item) Dot() int {
	return i.dot
}

// IsFinished is a predicate: is the dot at the end of the right hand side?
func (i Item) IsFinished() bool {
	return i.rule == nil || i.dot >= len(i.rule.RHS)
}

// PeekSymbol returns the symbol after the dot. For finished items it
// returns the zero symbol and false.
func (i Item) PeekSymbol() (Symbol, bool) {
	if i.IsFinished() {
		return Symbol{}, false
	}
	return i.rule.RHS[i.dot], true
}

// Advance returns a new item with the dot moved one symbol to the right.
// Advancing a finished item returns it unchanged.
func (i Item) Advance() Item {
	if i.IsFinished() {
		return i
	}
	i.dot++
	return i
}

// Prefix returns the part of the right hand side before the dot.
func (i Item) Prefix() Word {
	if i.rule == nil {
		return Epsilon
	}
	return i.rule.RHS[:i.dot]
}

// Rest returns the part of the right hand side after the dot.
func (i Item) Rest() Word {
	if i.rule == nil {
		return Epsilon
	}
	return i.rule.RHS[i.dot:]
}

func (i Item) String() string {
	if i.rule == nil {
		return "<no item>"
	}
	var b strings.Builder
	b.WriteString(i.rule.LHS.String())
	b.WriteString(" ->")
	for n, A := range i.rule.RHS {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	if i.IsFinished() {
		b.WriteString(" •")
	}
	return b.String()
}
