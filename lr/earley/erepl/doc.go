/*
Package erepl/main provides an interactive command line tool (E.REPL)
for experimenting with the Earley parser. Users select one of a few demo
grammars and enter input lines, which are parsed and displayed as parse
trees. Ambiguous input results in more than one tree, depending on the
selected ambiguity policy. Parse forests may be exported to Graphviz.

Usage:

    erepl [-grammar palindrome|catalan|pp|expr] [-trace Debug|Info|Error] [input]

Within the REPL, lines starting with a colon are commands:

    :grammars          list the demo grammars
    :grammar <name>    switch to a demo grammar
    :show              display the rules of the current grammar
    :policy <policy>   set ambiguity policy (surface, pack or first)
    :dot <file>        export the last parse forest in Graphviz format
    :quit              leave the REPL

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gearley.repl'
func tracer() tracing.Trace {
	return tracing.Select("gearley.repl")
}
