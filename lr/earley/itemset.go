package earley

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/sppf"
)

// item is an Earley item: a dotted production, the input position where
// recognition of the production started, and the forest node for the
// part of the production recognized so far (or sppf.NoNode).
type item struct {
	lr0    lr.Item
	origin int
	node   sppf.NodeID
}

// inSigmaN is true for items which are finished or expect a non-terminal.
func (it item) inSigmaN() bool {
	A, ok := it.lr0.PeekSymbol()
	return !ok || A.IsNonTerminal()
}

func (it item) String() string {
	return fmt.Sprintf("[%v, %d, #%d]", it.lr0, it.origin, it.node)
}

// itemSet is an insertion-ordered set of Earley items. Items are never
// removed; iterating by index while adding items serves as a worklist.
type itemSet struct {
	items *arraylist.List
	index map[item]struct{}
}

func newItemSet() *itemSet {
	return &itemSet{
		items: arraylist.New(),
		index: make(map[item]struct{}),
	}
}

// add inserts it and reports whether it has not been present before.
func (set *itemSet) add(it item) bool {
	if _, ok := set.index[it]; ok {
		return false
	}
	set.index[it] = struct{}{}
	set.items.Add(it)
	return true
}

func (set *itemSet) contains(it item) bool {
	_, ok := set.index[it]
	return ok
}

func (set *itemSet) at(i int) item {
	it, _ := set.items.Get(i)
	return it.(item)
}

func (set *itemSet) size() int {
	return set.items.Size()
}
