/*
Package lr implements the grammar model for the parsers of this module.

Grammars consist of productions over terminal and non-terminal symbols.
Symbols are small comparable values; a terminal and a non-terminal with
the same label are different symbols. Grammars are immutable after
construction and may be shared between goroutines.

# Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions. The LHS of the first rule is the start symbol.

Example:

	b := lr.NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a").End()  // S  ->  A a
	b.LHS("A").N("B").N("D").End()  // A  ->  B D
	b.LHS("B").T("b").End()         // B  ->  b
	b.LHS("B").Epsilon()            // B  ->
	b.LHS("D").T("d").End()         // D  ->  d
	b.LHS("D").Epsilon()            // D  ->

This results in the following trivial grammar:

	g, _ := b.Grammar()
	g.Dump()

	0: S -> A 'a'
	1: A -> B D
	2: B -> 'b'
	3: B -> ε
	4: D -> 'd'
	5: D -> ε

Alternatively, grammars may be created from explicit sets of variables,
terminals and productions with NewGrammar, or from productions alone with
NewGrammarFromProductions, which infers the symbol sets.

# Items and Tokens

Parsers operate on dotted items (type Item), i.e. productions with a marker
for how much of the right hand side has already been recognized. Input is
presented to parsers as a sequence of Tokens, each carrying a terminal
symbol, the matched text and its position in the source.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gearley.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gearley.lr")
}
