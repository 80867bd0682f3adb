package sppf

import (
	"strings"

	"github.com/npillmayer/gearley/lr"
)

// Tree is a generic parse tree, built by the reducers returned from
// TreeReducers. Inner nodes carry a production, leaves carry a token.
// With ambiguity policy PackAmbiguity, ambiguous non-terminals are
// represented by nodes holding Alternatives.
type Tree struct {
	Production   *lr.Production
	Token        *lr.Token
	Children     []*Tree
	Alternatives []*Tree
}

// TreeReducers returns a reducer registry building parse trees for every
// production of g.
func TreeReducers(g *lr.Grammar) *Reducers[*Tree] {
	r := NewReducers[*Tree](g)
	for serial := range g.Productions() {
		p := g.Production(serial)
		r.On(*p, func(children []Value[*Tree]) (*Tree, error) {
			node := &Tree{Production: p, Children: make([]*Tree, 0, len(children))}
			for _, ch := range children {
				node.Children = append(node.Children, treeOf(ch))
			}
			return node, nil
		})
	}
	return r
}

func treeOf(v Value[*Tree]) *Tree {
	switch v.Kind() {
	case TokenValue:
		tok, _ := v.Token()
		return &Tree{Token: &tok}
	case ReducedValue:
		t, _ := v.Reduced()
		return t
	}
	return &Tree{Alternatives: v.Alternatives()}
}

// IsLeaf is true for nodes representing an input token.
func (t *Tree) IsLeaf() bool {
	return t.Token != nil
}

// IsAmbiguous is true for nodes holding alternative sub-trees.
func (t *Tree) IsAmbiguous() bool {
	return len(t.Alternatives) > 0
}

// Symbol returns the grammar symbol of a node: the token's terminal for leaves,
// the LHS of the production for inner nodes.
func (t *Tree) Symbol() lr.Symbol {
	switch {
	case t.Token != nil:
		return t.Token.Symbol
	case t.Production != nil:
		return t.Production.LHS
	case len(t.Alternatives) > 0:
		return t.Alternatives[0].Symbol()
	}
	return lr.Symbol{}
}

// Leaves returns the input tokens covered by a tree, in input order.
// For ambiguous nodes, the first alternative is used.
func (t *Tree) Leaves() []lr.Token {
	var leaves []lr.Token
	t.collect(&leaves)
	return leaves
}

func (t *Tree) collect(leaves *[]lr.Token) {
	switch {
	case t.Token != nil:
		*leaves = append(*leaves, *t.Token)
	case len(t.Alternatives) > 0:
		t.Alternatives[0].collect(leaves)
	default:
		for _, ch := range t.Children {
			ch.collect(leaves)
		}
	}
}

// String renders a tree as an s-expression, e.g.
//
//	(S a (S b (S) b) a)
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *strings.Builder) {
	switch {
	case t.Token != nil:
		b.WriteString(t.Token.Value)
	case len(t.Alternatives) > 0:
		b.WriteString("(ambiguous")
		for _, alt := range t.Alternatives {
			b.WriteByte(' ')
			alt.write(b)
		}
		b.WriteByte(')')
	case t.Production != nil:
		b.WriteByte('(')
		b.WriteString(t.Production.LHS.Label)
		for _, ch := range t.Children {
			b.WriteByte(' ')
			ch.write(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString("()")
	}
}
