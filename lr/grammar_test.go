package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSymbolIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	if T("a") == N("a") {
		t.Errorf("terminal 'a' and non-terminal a expected to differ, are equal")
	}
	if T("a") != T("a") {
		t.Errorf("two terminals 'a' expected to be equal, aren't")
	}
	m := map[Symbol]int{T("a"): 1, N("a"): 2}
	if len(m) != 2 {
		t.Errorf("expected 2 map entries, have %d", len(m))
	}
	if (Symbol{}).IsValid() {
		t.Errorf("zero symbol should be invalid")
	}
}

func TestWordsAndProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	w1 := Word{T("a"), N("S"), T("a")}
	w2 := Word{T("a"), N("S"), T("a")}
	if !w1.Equal(w2) {
		t.Errorf("expected words %v and %v to be equal", w1, w2)
	}
	if w1.Equal(Word{T("a"), T("S"), T("a")}) {
		t.Errorf("expected words to differ in kind of second symbol")
	}
	if Epsilon.String() != "ε" {
		t.Errorf("expected ε, have %q", Epsilon.String())
	}
	p1 := P(N("S"), w1...)
	p2 := P(N("S"), w2...)
	if p1.Key() != p2.Key() || !p1.Equal(p2) {
		t.Errorf("expected structurally equal productions to have equal keys")
	}
	p3 := P(N("S"), T("aS"), T("a"))
	if p1.Key() == p3.Key() {
		t.Errorf("productions %v and %v must have different keys", p1, p3)
	}
	if P(N("S")).Key() != P(N("S"), Epsilon...).Key() {
		t.Errorf("ε-productions expected to have equal keys")
	}
	if s := p1.String(); s != "S -> 'a' S 'a'" {
		t.Errorf("unexpected production rendering %q", s)
	}
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d").End()
	b.LHS("D").Epsilon()
	b.LHS("D").T("d").End() // duplicate
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	tracer().SetTraceLevel(tracing.LevelDebug)
	g.Dump()
	if g.Start() != N("S") {
		t.Errorf("expected start symbol S, have %v", g.Start())
	}
	if g.Size() != 6 {
		t.Errorf("expected 6 productions, have %d", g.Size())
	}
	if len(g.Variables()) != 4 || len(g.Alphabet()) != 3 {
		t.Errorf("expected 4 variables and 3 terminals, have %v and %v", g.Variables(), g.Alphabet())
	}
	if rules := g.ProductionsFor(N("D")); len(rules) != 2 || rules[0] != 4 || rules[1] != 5 {
		t.Errorf("expected productions [4 5] for D, have %v", rules)
	}
	if serial, ok := g.Serial(P(N("B"))); !ok || serial != 3 {
		t.Errorf("expected B -> ε to have serial 3, has %d", serial)
	}
	if !g.IsVariable(N("A")) || g.IsVariable(T("a")) || !g.IsTerminal(T("d")) {
		t.Errorf("symbol predicates are broken")
	}
}

func TestMalformedGrammars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	vars := []Symbol{N("S")}
	alpha := []Symbol{T("a")}
	inputs := []struct {
		name  string
		prods []Production
		start Symbol
	}{
		{"start not declared", []Production{P(N("S"), T("a"))}, N("X")},
		{"start is terminal", []Production{P(N("S"), T("a"))}, T("a")},
		{"undeclared LHS", []Production{P(N("A"), T("a"))}, N("S")},
		{"undeclared RHS", []Production{P(N("S"), T("b"))}, N("S")},
	}
	for _, input := range inputs {
		_, err := NewGrammar("G", vars, alpha, input.prods, input.start)
		if !errors.Is(err, ErrMalformedGrammar) {
			t.Errorf("%s: expected malformed grammar error, have %v", input.name, err)
		}
	}
	g, err := NewGrammar("G", vars, alpha, []Production{P(N("S"), T("a"))}, N("S"))
	if err != nil || g.Size() != 1 {
		t.Errorf("expected well-formed grammar with 1 production, have %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g1, _ := NewGrammarFromProductions("one", N("S"),
		P(N("S"), T("a"), N("S"), T("a")),
		P(N("S"), T("b"), N("S"), T("b")),
		P(N("S")),
	)
	g2, _ := NewGrammarFromProductions("two", N("S"),
		P(N("S")),
		P(N("S"), T("b"), N("S"), T("b")),
		P(N("S"), T("a"), N("S"), T("a")),
	)
	g3, _ := NewGrammarFromProductions("three", N("S"),
		P(N("S"), T("a"), N("S"), T("a")),
		P(N("S")),
	)
	if g1.Fingerprint() == "" {
		t.Fatalf("expected grammar to have a fingerprint")
	}
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected structurally equal grammars to have equal fingerprints")
	}
	if g1.Fingerprint() == g3.Fingerprint() {
		t.Errorf("expected different grammars to have different fingerprints")
	}
}

func TestItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g, _ := NewGrammarFromProductions("G", N("S"), P(N("S"), T("a"), N("S"), T("a")), P(N("S")))
	i := StartItem(g, 0)
	if A, ok := i.PeekSymbol(); !ok || A != T("a") {
		t.Errorf("expected 'a' after the dot, have %v", A)
	}
	i = i.Advance()
	if i.String() != "S -> 'a' • S 'a'" {
		t.Errorf("unexpected item rendering %q", i.String())
	}
	if !i.Prefix().Equal(Word{T("a")}) || !i.Rest().Equal(Word{N("S"), T("a")}) {
		t.Errorf("unexpected prefix/rest of %v", i)
	}
	if i != StartItem(g, 0).Advance() {
		t.Errorf("expected items to be comparable values")
	}
	i = i.Advance().Advance()
	if !i.IsFinished() || i.Advance() != i {
		t.Errorf("expected %v to be finished", i)
	}
	eps := StartItem(g, 1)
	if !eps.IsFinished() || eps.String() != "S -> •" {
		t.Errorf("expected ε-item to be finished, is %v", eps)
	}
}
