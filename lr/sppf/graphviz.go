package sppf

import (
	"fmt"
	"io"
	"strings"
)

// ToGraphViz exports a forest to the Graphviz Dot format.
//
// Non-terminal nodes are drawn as ellipses, intermediate nodes as boxes,
// terminals as plain text and pack nodes as small dots. Edges from pack
// nodes are labelled 'L' and 'R' for the left and right child.
func ToGraphViz(f *Forest, w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph sppf {\n")
	b.WriteString("node [fontname=\"Helvetica\",fontsize=10];\n")
	for i := 0; i < f.NodeCount(); i++ {
		id := NodeID(i)
		switch f.Kind(id) {
		case TerminalNode:
			fmt.Fprintf(&b, "n%d [shape=plaintext,label=%q];\n", id, f.String(id))
		case NonTerminalNode:
			style := ""
			if id == f.Root() {
				style = ",style=bold"
			}
			fmt.Fprintf(&b, "n%d [shape=ellipse,label=%q%s];\n", id, f.String(id), style)
		case IntermediateNode:
			fmt.Fprintf(&b, "n%d [shape=box,label=%q];\n", id, f.String(id))
		case PackNode:
			parent, _, left, right := f.Pack(id)
			fmt.Fprintf(&b, "n%d [shape=point];\n", id)
			fmt.Fprintf(&b, "n%d -> n%d;\n", parent, id)
			if left != NoNode {
				fmt.Fprintf(&b, "n%d -> n%d [label=\"L\"];\n", id, left)
			}
			if right != NoNode {
				fmt.Fprintf(&b, "n%d -> n%d [label=\"R\"];\n", id, right)
			}
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
