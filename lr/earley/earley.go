/*
Package earley implements an Earley parser building a shared packed parse forest.

Earley parsing is a general context-free parsing technique: it handles every
context-free grammar, including ambiguous, left- and right-recursive,
ε-heavy and cyclic ones. Our recognizer follows

	Elizabeth Scott: "SPPF-Style Parsing From Earley Recognisers",
	Electronic Notes in Theoretical Computer Science 203 (2008)

It builds a binarized parse forest (see package sppf) while recognizing the
input, which holds every derivation of the input in at most cubic space.

# Usage

For recognition only, call Recognize with a grammar and a token sequence.
For most clients it will be more convenient to use a Parser, which
reduces the parse forest to client values by calling reducer functions
for every production instance:

	reducers := sppf.NewReducers[int](g).On(…)
	parser, err := earley.NewParser(g, reducers)
	result, err := parser.Parse(ctx, tokens)

Input not in the language of the grammar will result in a *ParseError,
holding the syntax errors recorded at the furthest position reached.

Parsing may be cancelled with the context handed to Recognize or Parse.
Cancelled parses return an error for which errors.Is(err, ErrCancelled) holds.

# Configuration

If the global configuration flag "earley-dump-states" is set, the item sets
are traced after each input position has been processed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package earley

import (
	"context"
	"errors"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/sppf"
)

// tracer traces with key 'gearley.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gearley.lr")
}

// Recognize runs the Earley recognizer for tokens with grammar g.
// On success it returns a parse forest with every derivation of the input.
// If the input is not in the language of g, a *ParseError is returned.
//
// ctx is checked once per input position and once per item processed.
func Recognize(ctx context.Context, g *lr.Grammar, tokens []lr.Token) (*sppf.Forest, error) {
	if g == nil {
		return nil, errors.New("earley: no grammar to recognize with")
	}
	r := newRecognizer(g, tokens)
	r.dump = lr.ConfigFlag("earley-dump-states")
	return r.run(ctx)
}

type recognizer struct {
	g      *lr.Grammar
	tokens []lr.Token
	forest *sppf.Forest
	E      []*itemSet // E[i] holds the items for input position i
	errors *errorCollector
	dump   bool
}

func newRecognizer(g *lr.Grammar, tokens []lr.Token) *recognizer {
	r := &recognizer{
		g:      g,
		tokens: tokens,
		forest: sppf.NewForest(g, tokens),
		E:      make([]*itemSet, len(tokens)+1),
		errors: newErrorCollector(),
	}
	for i := range r.E {
		r.E[i] = newItemSet()
	}
	return r
}

func (r *recognizer) run(ctx context.Context) (*sppf.Forest, error) {
	n := len(r.tokens)
	tracer().Debugf("recognizing %d tokens with grammar %s", n, r.g.Name)
	qnext := newItemSet() // Q'
	for _, serial := range r.g.ProductionsFor(r.g.Start()) {
		r.add(item{lr0: lr.StartItem(r.g, serial), origin: 0, node: sppf.NoNode}, 0, qnext)
	}
	for i := 0; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, sppf.Cancelled(err)
		}
		H := make(map[lr.Symbol]sppf.NodeID)
		Q := qnext
		qnext = newItemSet()
		for k := 0; k < r.E[i].size(); k++ { // E[i] grows while processing
			if err := ctx.Err(); err != nil {
				return nil, sppf.Cancelled(err)
			}
			if it := r.E[i].at(k); it.lr0.IsFinished() {
				if err := r.complete(ctx, it, i, H, Q); err != nil {
					return nil, err
				}
			} else {
				r.predict(it, i, H, Q)
			}
		}
		if i < n && r.accepting(i) != nil { // complete derivation, but input continues
			r.errors.record(lr.EOF, &r.tokens[i], i)
		}
		if i < n {
			v := r.forest.Terminal(i)
			for k := 0; k < Q.size(); k++ {
				if err := ctx.Err(); err != nil {
					return nil, sppf.Cancelled(err)
				}
				it := Q.at(k)
				next := it.lr0.Advance()
				y := r.makeNode(next, it.origin, i+1, it.node, v)
				r.add(item{lr0: next, origin: it.origin, node: y}, i+1, qnext)
			}
		}
		tracer().Debugf("position %d: %d items, %d scanned", i, r.E[i].size(), Q.size())
		if r.dump {
			dumpState(r.E, i)
		}
	}
	return r.accept()
}

// add places it into E[pos] if it is finished or expects a non-terminal,
// and into queue Q if it expects the terminal at pos. Other items are
// dead ends, for which a syntax error is recorded.
func (r *recognizer) add(it item, pos int, Q *itemSet) {
	if it.inSigmaN() {
		r.E[pos].add(it)
		return
	}
	a, _ := it.lr0.PeekSymbol()
	if pos < len(r.tokens) && r.tokens[pos].Symbol == a {
		Q.add(it)
		return
	}
	var got *lr.Token
	if pos < len(r.tokens) {
		got = &r.tokens[pos]
	}
	r.errors.record(a, got, pos)
}

func (r *recognizer) predict(it item, i int, H map[lr.Symbol]sppf.NodeID, Q *itemSet) {
	C, _ := it.lr0.PeekSymbol()
	for _, serial := range r.g.ProductionsFor(C) {
		r.add(item{lr0: lr.StartItem(r.g, serial), origin: i, node: sppf.NoNode}, i, Q)
	}
	if v, ok := H[C]; ok { // C has already been completed with an empty span
		next := it.lr0.Advance()
		y := r.makeNode(next, it.origin, i, it.node, v)
		r.add(item{lr0: next, origin: it.origin, node: y}, i, Q)
	}
}

func (r *recognizer) complete(ctx context.Context, it item, i int, H map[lr.Symbol]sppf.NodeID, Q *itemSet) error {
	D := it.lr0.Rule().LHS
	w := it.node
	if w == sppf.NoNode { // ε-production
		w, _ = r.forest.NonTerminal(D, i, i)
		r.forest.AddPack(w, it.lr0.Serial(), sppf.NoNode, sppf.NoNode)
	}
	if it.origin == i {
		H[D] = w
	}
	Eh := r.E[it.origin]
	for k, size := 0, Eh.size(); k < size; k++ {
		if err := ctx.Err(); err != nil {
			return sppf.Cancelled(err)
		}
		waiting := Eh.at(k)
		if A, ok := waiting.lr0.PeekSymbol(); !ok || A != D {
			continue
		}
		next := waiting.lr0.Advance()
		y := r.makeNode(next, waiting.origin, i, waiting.node, w)
		r.add(item{lr0: next, origin: waiting.origin, node: y}, i, Q)
	}
	return nil
}

// makeNode returns the forest node for item next, recognized from j to i,
// with children w (the node for the prefix before the last symbol) and v
// (the node for the last symbol recognized).
func (r *recognizer) makeNode(next lr.Item, j, i int, w, v sppf.NodeID) sppf.NodeID {
	if next.Dot() == 1 && !next.IsFinished() {
		return v
	}
	var y sppf.NodeID
	if next.IsFinished() {
		y, _ = r.forest.NonTerminal(next.Rule().LHS, j, i)
	} else {
		y, _ = r.forest.Intermediate(next, j, i)
	}
	r.forest.AddPack(y, next.Serial(), w, v)
	return y
}

// accepting returns a finished item for the start symbol with origin 0 in
// E[i], or nil.
func (r *recognizer) accepting(i int) *item {
	S := r.g.Start()
	for k := 0; k < r.E[i].size(); k++ {
		it := r.E[i].at(k)
		if it.origin == 0 && it.lr0.IsFinished() && it.lr0.Rule().LHS == S {
			return &it
		}
	}
	return nil
}

func (r *recognizer) accept() (*sppf.Forest, error) {
	n := len(r.tokens)
	S := r.g.Start()
	if it := r.accepting(n); it != nil {
		root := it.node
		if root == sppf.NoNode { // empty input, derived by an ε-production
			root, _ = r.forest.NonTerminal(S, 0, n)
		}
		r.forest.SetRoot(root)
		tracer().Debugf("accepted input, forest has %d nodes", r.forest.NodeCount())
		return r.forest, nil
	}
	err := r.errors.parseError(n)
	tracer().Infof("%v", err)
	return nil, err
}

// --- Syntax errors ---------------------------------------------------------

// errorCollector keeps the syntax errors for the furthest input position
// at which errors occurred.
type errorCollector struct {
	position int
	errors   *treeset.Set
}

func newErrorCollector() *errorCollector {
	return &errorCollector{
		position: -1,
		errors:   treeset.NewWith(compareSyntaxErrors),
	}
}

func compareSyntaxErrors(a, b interface{}) int {
	e1, e2 := a.(SyntaxError), b.(SyntaxError)
	if e1.Expected.Kind != e2.Expected.Kind {
		return utils.IntComparator(int(e1.Expected.Kind), int(e2.Expected.Kind))
	}
	return utils.StringComparator(e1.Expected.Label, e2.Expected.Label)
}

func (c *errorCollector) record(expected lr.Symbol, got *lr.Token, pos int) {
	switch {
	case pos < c.position:
		return
	case pos > c.position:
		c.errors.Clear()
		c.position = pos
	}
	c.errors.Add(SyntaxError{Expected: expected, Got: got, Position: pos})
}

func (c *errorCollector) parseError(n int) *ParseError {
	if c.position < 0 {
		return &ParseError{Position: n}
	}
	perr := &ParseError{Position: c.position, Errors: make([]SyntaxError, 0, c.errors.Size())}
	for _, e := range c.errors.Values() {
		perr.Errors = append(perr.Errors, e.(SyntaxError))
	}
	return perr
}
