package sppf

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"context"

	"github.com/emirpasic/gods/stacks/arraystack"
	"golang.org/x/exp/slices"
)

/*
Traversing a parse forest resulting from an ambiguous grammar in practice
mainly comes in two variants:

- The client has additional knowledge of how to prune the parse forest and
  select one tree. Using arithmetic expression 1+2+3 as an example, selecting
  the tree representing left-associativity would result in the pruning of 1+(2+3),
  leaving (1+2)+3 as the unambiguous parse-tree.

- The choice of parse tree is irrelevant. An example for this is determining
  the result of an arithmetic expression, ignoring associativity: 1+2+3=6,
  independently of associativity.

Walk does not make any of these decisions. It hands every node to a visitor,
which decides which children to descend into. Cyclic forests are handled by
reporting back-edges to the visitor instead of following them.
*/

// Visitor is an interface type for clients walking a forest.
//
// EnterBranch is called for non-terminal and intermediate nodes and returns
// the pack nodes to descend into, EnterPack returns the children of a pack
// node to descend into. Returning nil prunes the subtree.
// Exit-hooks are called after all children have been visited.
//
// OnCycle is called instead of EnterBranch if a node is encountered which is
// currently under visit, i.e. is part of path, the chain of nodes from the
// root to the current node.
type Visitor interface {
	VisitTerminal(f *Forest, id NodeID)
	EnterBranch(f *Forest, id NodeID) []NodeID
	ExitBranch(f *Forest, id NodeID)
	EnterPack(f *Forest, id NodeID) []NodeID
	ExitPack(f *Forest, id NodeID)
	OnCycle(f *Forest, id NodeID, path []NodeID)
}

// BaseVisitor is a visitor with empty hooks, descending into every node.
// It is intended to be embedded by clients implementing only a subset of the
// Visitor hooks.
type BaseVisitor struct{}

// VisitTerminal does nothing.
func (BaseVisitor) VisitTerminal(f *Forest, id NodeID) {}

// EnterBranch returns all pack nodes of node id.
func (BaseVisitor) EnterBranch(f *Forest, id NodeID) []NodeID { return f.Packs(id) }

// ExitBranch does nothing.
func (BaseVisitor) ExitBranch(f *Forest, id NodeID) {}

// EnterPack returns all children of pack node id.
func (BaseVisitor) EnterPack(f *Forest, id NodeID) []NodeID { return f.Children(id) }

// ExitPack does nothing.
func (BaseVisitor) ExitPack(f *Forest, id NodeID) {}

// OnCycle does nothing.
func (BaseVisitor) OnCycle(f *Forest, id NodeID, path []NodeID) {}

// WalkOption configures a forest walk.
type WalkOption func(*walker)

// VisitOnce makes a walk skip nodes which have already been fully visited.
// Without it, nodes shared between several parents are visited once per parent.
func VisitOnce() WalkOption {
	return func(w *walker) {
		w.once = true
	}
}

type walker struct {
	f        *Forest
	v        Visitor
	once     bool
	visited  map[NodeID]struct{}
	visiting map[NodeID]struct{}
	path     []NodeID
	frames   *arraystack.Stack
}

// halter is implemented by visitors which may abort a walk. Walk returns
// the error of a halted visitor as soon as a node has been exited.
type halter interface {
	halted() error
}

type frame struct {
	node     NodeID
	children []NodeID
	next     int
}

// Walk traverses forest f depth-first, starting at node root, calling the
// hooks of v. The walk is iterative and does not depend on the depth of
// the forest.
//
// ctx is checked once for every node entered. If ctx is cancelled, Walk
// returns an error wrapping ErrCancelled.
func Walk(ctx context.Context, f *Forest, root NodeID, v Visitor, opts ...WalkOption) error {
	if f == nil || root == NoNode {
		return nil
	}
	w := &walker{
		f:        f,
		v:        v,
		visited:  make(map[NodeID]struct{}),
		visiting: make(map[NodeID]struct{}),
		frames:   arraystack.New(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.enter(ctx, root); err != nil {
		return err
	}
	for !w.frames.Empty() {
		top, _ := w.frames.Peek()
		fr := top.(*frame)
		if fr.next < len(fr.children) {
			child := fr.children[fr.next]
			fr.next++
			if err := w.enter(ctx, child); err != nil {
				return err
			}
			continue
		}
		w.frames.Pop()
		w.exit(fr.node)
		if h, ok := v.(halter); ok {
			if err := h.halted(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) enter(ctx context.Context, id NodeID) error {
	if err := ctx.Err(); err != nil {
		return Cancelled(err)
	}
	kind := w.f.Kind(id)
	if kind == TerminalNode {
		w.v.VisitTerminal(w.f, id)
		return nil
	}
	if _, ok := w.visiting[id]; ok {
		w.v.OnCycle(w.f, id, slices.Clone(w.path))
		return nil
	}
	if _, ok := w.visited[id]; ok && w.once {
		return nil
	}
	w.visiting[id] = struct{}{}
	w.path = append(w.path, id)
	var children []NodeID
	if kind == PackNode {
		children = w.v.EnterPack(w.f, id)
	} else {
		children = w.v.EnterBranch(w.f, id)
	}
	w.frames.Push(&frame{node: id, children: children})
	return nil
}

func (w *walker) exit(id NodeID) {
	if w.f.Kind(id) == PackNode {
		w.v.ExitPack(w.f, id)
	} else {
		w.v.ExitBranch(w.f, id)
	}
	w.path = w.path[:len(w.path)-1]
	delete(w.visiting, id)
	w.visited[id] = struct{}{}
}
