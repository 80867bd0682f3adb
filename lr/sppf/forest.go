package sppf

import (
	"fmt"

	"github.com/npillmayer/gearley"
	"github.com/npillmayer/gearley/lr"
)

// NodeID is a handle for a node of a forest.
type NodeID int32

// NoNode denotes the absence of a node.
const NoNode NodeID = -1

// NodeKind is the kind of a forest node.
type NodeKind uint8

// Kinds of forest nodes.
const (
	TerminalNode NodeKind = iota
	NonTerminalNode
	IntermediateNode
	PackNode
)

func (k NodeKind) String() string {
	switch k {
	case TerminalNode:
		return "terminal"
	case NonTerminalNode:
		return "non-terminal"
	case IntermediateNode:
		return "intermediate"
	case PackNode:
		return "pack"
	}
	return "<invalid>"
}

// IsBranch is true for non-terminal and intermediate nodes.
func (k NodeKind) IsBranch() bool {
	return k == NonTerminalNode || k == IntermediateNode
}

// node is the single record type for all kinds of nodes. Fields unused by a
// kind stay at their zero values.
type node struct {
	kind   NodeKind
	span   gearley.Span
	symbol lr.Symbol // terminal or non-terminal
	item   lr.Item   // intermediate nodes
	token  int       // terminal nodes: index into the token sequence, or -1
	parent NodeID    // pack nodes
	rule   int       // pack nodes: production serial
	left   NodeID    // pack nodes
	right  NodeID    // pack nodes
	packs  []NodeID  // branch nodes
}

// label identifies terminal and branch nodes within a forest.
type label struct {
	kind       NodeKind
	symbol     lr.Symbol
	item       lr.Item
	start, end int
}

type packKey struct {
	parent      NodeID
	rule        int
	left, right NodeID
}

// Forest is a shared packed parse forest. A forest is created for a single
// parse run and is not safe for concurrent modification. After construction
// has finished, it may be read concurrently.
type Forest struct {
	g        *lr.Grammar
	tokens   []lr.Token
	nodes    []node
	labels   map[label]NodeID
	packs    map[packKey]NodeID
	root     NodeID
	branches int
}

// NewForest creates an empty forest for a parse of tokens with grammar g.
func NewForest(g *lr.Grammar, tokens []lr.Token) *Forest {
	return &Forest{
		g:      g,
		tokens: tokens,
		nodes:  make([]node, 0, 4*len(tokens)+16),
		labels: make(map[label]NodeID),
		packs:  make(map[packKey]NodeID),
		root:   NoNode,
	}
}

// Grammar returns the grammar the forest has been built for.
func (f *Forest) Grammar() *lr.Grammar {
	return f.g
}

// Tokens returns the input tokens of the parse.
func (f *Forest) Tokens() []lr.Token {
	return f.tokens
}

func (f *Forest) add(n node) NodeID {
	id := NodeID(len(f.nodes))
	f.nodes = append(f.nodes, n)
	return id
}

func (f *Forest) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(f.nodes)
}

// --- Construction ----------------------------------------------------------

// Terminal returns the leaf node for the input token at position pos.
// Positions beyond the end of input yield a leaf without a token.
func (f *Forest) Terminal(pos int) NodeID {
	var sym lr.Symbol
	tokinx := -1
	if pos >= 0 && pos < len(f.tokens) {
		sym, tokinx = f.tokens[pos].Symbol, pos
	}
	l := label{kind: TerminalNode, symbol: sym, start: pos, end: pos + 1}
	if id, ok := f.labels[l]; ok {
		return id
	}
	id := f.add(node{
		kind:   TerminalNode,
		span:   gearley.MakeSpan(pos, pos+1),
		symbol: sym,
		token:  tokinx,
		parent: NoNode, left: NoNode, right: NoNode,
	})
	f.labels[l] = id
	return id
}

// NonTerminal returns the node for non-terminal A spanning start…end,
// creating it if not present. It reports whether the node has been created.
func (f *Forest) NonTerminal(A lr.Symbol, start, end int) (NodeID, bool) {
	return f.branch(label{kind: NonTerminalNode, symbol: A, start: start, end: end})
}

// Intermediate returns the node for item spanning start…end,
// creating it if not present. It reports whether the node has been created.
func (f *Forest) Intermediate(item lr.Item, start, end int) (NodeID, bool) {
	return f.branch(label{kind: IntermediateNode, item: item, start: start, end: end})
}

func (f *Forest) branch(l label) (NodeID, bool) {
	if id, ok := f.labels[l]; ok {
		return id, false
	}
	id := f.add(node{
		kind:   l.kind,
		span:   gearley.MakeSpan(l.start, l.end),
		symbol: l.symbol,
		item:   l.item,
		token:  -1,
		parent: NoNode, left: NoNode, right: NoNode,
	})
	f.labels[l] = id
	f.branches++
	return id, true
}

// AddPack attaches a pack node for production number serial with children
// left and right to branch node parent, unless an identical pack node
// already exists. Either child may be NoNode. Returns the pack node.
func (f *Forest) AddPack(parent NodeID, serial int, left, right NodeID) NodeID {
	key := packKey{parent: parent, rule: serial, left: left, right: right}
	if id, ok := f.packs[key]; ok {
		return id
	}
	if !f.valid(parent) || !f.nodes[parent].kind.IsBranch() {
		panic(fmt.Sprintf("sppf: cannot add pack node to %d", parent))
	}
	id := f.add(node{
		kind:   PackNode,
		span:   f.nodes[parent].span,
		token:  -1,
		parent: parent,
		rule:   serial,
		left:   left,
		right:  right,
	})
	f.packs[key] = id
	f.nodes[parent].packs = append(f.nodes[parent].packs, id)
	return id
}

// SetRoot sets the root node of the forest.
func (f *Forest) SetRoot(id NodeID) {
	f.root = id
}

// --- Accessors -------------------------------------------------------------

// Root returns the root node of the forest, or NoNode.
func (f *Forest) Root() NodeID {
	if f == nil {
		return NoNode
	}
	return f.root
}

// Kind returns the kind of node id.
func (f *Forest) Kind(id NodeID) NodeKind {
	return f.nodes[id].kind
}

// Span returns the input span covered by node id.
func (f *Forest) Span(id NodeID) gearley.Span {
	return f.nodes[id].span
}

// Symbol returns the grammar symbol of a terminal or non-terminal node.
// For intermediate nodes and pack nodes, the LHS of the production is returned.
func (f *Forest) Symbol(id NodeID) lr.Symbol {
	n := &f.nodes[id]
	switch n.kind {
	case IntermediateNode:
		return n.item.Rule().LHS
	case PackNode:
		return f.g.Production(n.rule).LHS
	}
	return n.symbol
}

// Item returns the dotted item of an intermediate node.
func (f *Forest) Item(id NodeID) (lr.Item, bool) {
	n := &f.nodes[id]
	return n.item, n.kind == IntermediateNode
}

// Token returns the input token of a terminal node.
func (f *Forest) Token(id NodeID) (lr.Token, bool) {
	n := &f.nodes[id]
	if n.kind != TerminalNode || n.token < 0 {
		return lr.Token{}, false
	}
	return f.tokens[n.token], true
}

// Packs returns the pack nodes of a branch node, in order of creation.
// Clients must not modify the returned slice.
func (f *Forest) Packs(id NodeID) []NodeID {
	return f.nodes[id].packs
}

// IsAmbiguous is true for branch nodes with more than one pack node.
func (f *Forest) IsAmbiguous(id NodeID) bool {
	return len(f.nodes[id].packs) > 1
}

// Pack returns the parent, the production serial and the children of a pack node.
func (f *Forest) Pack(id NodeID) (parent NodeID, serial int, left, right NodeID) {
	n := &f.nodes[id]
	return n.parent, n.rule, n.left, n.right
}

// Children returns the non-null children of a pack node, left first.
func (f *Forest) Children(id NodeID) []NodeID {
	n := &f.nodes[id]
	children := make([]NodeID, 0, 2)
	if n.left != NoNode {
		children = append(children, n.left)
	}
	if n.right != NoNode {
		children = append(children, n.right)
	}
	return children
}

// BranchCount returns the number of distinct non-terminal and intermediate nodes.
func (f *Forest) BranchCount() int {
	return f.branches
}

// PackCount returns the number of pack nodes.
func (f *Forest) PackCount() int {
	return len(f.packs)
}

// NodeCount returns the number of nodes of all kinds.
func (f *Forest) NodeCount() int {
	return len(f.nodes)
}

// String renders node id for debugging.
func (f *Forest) String(id NodeID) string {
	if !f.valid(id) {
		return "<no node>"
	}
	n := &f.nodes[id]
	switch n.kind {
	case TerminalNode:
		if n.token < 0 {
			return fmt.Sprintf("$%v", n.span)
		}
		return fmt.Sprintf("%v%v", n.symbol, n.span)
	case NonTerminalNode:
		return fmt.Sprintf("%v%v", n.symbol, n.span)
	case IntermediateNode:
		return fmt.Sprintf("[%v]%v", n.item, n.span)
	}
	return fmt.Sprintf("pack{%v}%v", f.g.Production(n.rule), n.span)
}
