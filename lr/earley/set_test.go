package earley

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/sppf"
)

func TestSet1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	set := newItemSet()
	if set.contains(item{}) || set.size() != 0 {
		t.Errorf("set contains zero item, no set should")
	}
}

func TestSet2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G") // build a grammar of 3 rules
	b.LHS("S").N("A").End()        // [0]: S → A
	b.LHS("A").N("B").End()        // [1]: A → B
	b.LHS("A").N("A").N("B").End() // [2]: A → A B
	g, _ := b.Grammar()
	//
	set := newItemSet()
	i1 := item{lr0: lr.StartItem(g, 1), origin: 5, node: sppf.NoNode}
	if !set.add(i1) || set.add(i1) {
		t.Errorf("expected item to be added exactly once")
	}
	if !set.contains(i1) {
		t.Errorf("Expected rule[1] to be contained in set, isn't")
	}
	i2 := item{lr0: lr.StartItem(g, 1), origin: 3, node: sppf.NoNode}
	i3 := item{lr0: lr.StartItem(g, 2).Advance(), origin: 5, node: 7}
	if set.contains(i2) {
		t.Errorf("Expected item with different origin to not be contained in set, yet is")
	}
	set.add(i3)
	set.add(i2)
	if set.size() != 3 || set.at(0) != i1 || set.at(1) != i3 || set.at(2) != i2 {
		t.Errorf("expected items in insertion order, have %s", itemSetString(set))
	}
	if !i3.inSigmaN() {
		t.Errorf("expected %v to expect a non-terminal", i3)
	}
	t.Logf("set = %s", itemSetString(set))
}
