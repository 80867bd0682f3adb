/*
Package gearley is a general context-free parsing engine.

Gearley recognizes token streams for arbitrary context-free grammars,
including ambiguous, left-recursive, right-recursive and cyclic ones.
Recognition builds a shared packed parse forest (SPPF) holding every
derivation of the input, which may then be reduced into client values by
per-production callbacks. Package structure is as follows:

■ lr: Package lr holds the grammar model: symbols, productions, dotted items
and tokens, together with a grammar builder.

■ lr/earley: Package earley implements an Earley recognizer which builds a
binarized SPPF, and a parser façade on top of it.

■ lr/sppf: Package sppf implements the parse forest, a cycle-safe forest
visitor and a transformer reducing forests to values.

■ lr/scanner: Package scanner adapts existing tokenizers to produce token
sequences for the parser.

The base package contains data types which are used throughout all the other packages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package gearley
