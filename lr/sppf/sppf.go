/*
Package sppf implements a "Shared Packed Parse Forest".

A packed parse forest re-uses existing parse tree nodes between different
parse trees. For a conventional non-ambiguous parse, a parse forest degrades
to a single tree. Ambiguous grammars, on the other hand, may result in parse
runs where more than one parse tree is created. To save space these parse
trees will share common nodes.

The forest used here is binarized, following

	Elizabeth Scott & Adrian Johnstone:
	"Recognition is not parsing: SPPF-style parsing from cubic recognisers",
	Science of Computer Programming 75 (2010)

Nodes live in an arena and are referenced by integer handles (NodeID).
There are four kinds of nodes:

■ Terminal nodes are leaves, representing an input token.

■ Non-terminal nodes represent a grammar variable spanning a range of input.

■ Intermediate nodes represent a partially recognized production, labelled by
a dotted item. They appear between non-terminal nodes and their children and
keep the forest binarized.

■ Pack nodes are the alternatives of non-terminal and intermediate nodes. Every
pack node belongs to exactly one production and has at most two children, left
and right. A branch node with more than one pack node is ambiguous.

Branch nodes are interned by their label, i.e. their symbol or item together
with the span they cover. Pack nodes are de-duplicated per parent.
The forest may contain cycles if the grammar is cyclic (A ⇒+ A).

# Walking a Forest

Forests are traversed with Walk, calling the hooks of a Visitor for each node.
Walk copes with cyclic forests: back-edges are reported to the visitor instead
of being followed.

# Transforming a Forest

Clients usually are not interested in the forest itself, but rather in values
computed from the derivations it holds. Transform reduces a forest bottom-up
by calling a user-supplied reducer function for every production
instance found. Reducers are registered with a Reducers registry.
Ambiguities are handled according to an AmbiguityPolicy: by default, the
alternatives of an ambiguous non-terminal are bundled into a single
AmbiguousValue for the reducer of its parent, keeping the work proportional
to the size of the forest. Option EnumerateAll yields a separate value for
every distinct derivation instead.

	reducers := sppf.NewReducers[int](g).
	    On(sum, func(ch []sppf.Value[int]) (int, error) { … }).
	    On(number, func(ch []sppf.Value[int]) (int, error) { … })
	result, err := sppf.Transform(ctx, forest, reducers)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sppf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gearley.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gearley.lr")
}
