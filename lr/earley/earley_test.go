package earley

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/sppf"
)

// Palindromes over {a, b} with an even number of symbols:
//
//	S  →  a S a  |  b S b  |  ε
func palindromeGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Palindromes")
	b.LHS("S").T("a").N("S").T("a").End()
	b.LHS("S").T("b").N("S").T("b").End()
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// A highly ambiguous grammar, with the number of derivations for aⁿ being
// the Catalan number C(n-1):
//
//	S  →  S S  |  a
func catalanGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Catalan")
	b.LHS("S").N("S").N("S").End()
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// The classic prepositional phrase attachment ambiguity:
// "I saw the man with the telescope".
func ppGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("PP-Attachment")
	b.LHS("S").N("NP").N("VP").End()
	b.LHS("NP").T("n").End()
	b.LHS("NP").T("d").T("n").End()
	b.LHS("NP").N("NP").N("PP").End()
	b.LHS("VP").N("VP").N("PP").End()
	b.LHS("VP").T("v").N("NP").End()
	b.LHS("PP").T("p").N("NP").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// sexprReducers renders every production instance as an s-expression of its
// children, ε as "ε".
func sexprReducers(g *lr.Grammar) *sppf.Reducers[string] {
	return sppf.NewReducers[string](g).Default(func(ch []sppf.Value[string]) (string, error) {
		if len(ch) == 0 {
			return "ε", nil
		}
		parts := make([]string, len(ch))
		for i, c := range ch {
			if tok, ok := c.Token(); ok {
				parts[i] = tok.Value
			} else {
				parts[i], _ = c.Reduced()
			}
		}
		return "(" + strings.Join(parts, " ") + ")", nil
	})
}

func tokens(input string) []lr.Token {
	return lr.TokenSequence(strings.Fields(input)...)
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[string]int)
	for _, s := range a {
		m[s]++
	}
	for _, s := range b {
		m[s]--
	}
	for _, c := range m {
		if c != 0 {
			return false
		}
	}
	return true
}

// --- the Tests -------------------------------------------------------------

func TestPalindromes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g := palindromeGrammar(t)
	for _, input := range []string{"", "a a", "a b b a", "b a a b", "a a b b a a"} {
		if _, err := Recognize(context.Background(), g, tokens(input)); err != nil {
			t.Errorf("expected '%s' to be accepted: %v", input, err)
		}
	}
	parser, err := NewParser(g, sexprReducers(g))
	if err != nil {
		t.Fatal(err)
	}
	tracer().SetTraceLevel(tracing.LevelDebug)
	result, err := parser.Parse(context.Background(), tokens("a a b b a a"))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := result.Value(); !ok || v != "(a (a (b ε b) a) a)" {
		t.Errorf("expected unambiguous value (a (a (b ε b) a) a), have %v", result)
	}
}

func TestPalindromeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g := palindromeGrammar(t)
	_, err := Recognize(context.Background(), g, tokens("a c a"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a parse error, have %v", err)
	}
	if perr.Position != 1 || len(perr.Errors) != 2 {
		t.Fatalf("expected 2 errors at position 1, have %v", perr)
	}
	for i, label := range []string{"a", "b"} {
		se := perr.Errors[i]
		if se.Expected != lr.T(label) || se.Got == nil || se.Got.Value != "c" || se.Position != 1 {
			t.Errorf("unexpected syntax error #%d: %v", i, se)
		}
	}
	_, err = Recognize(context.Background(), g, tokens("a a b a"))
	if !errors.As(err, &perr) {
		t.Fatalf("expected a parse error, have %v", err)
	}
	if perr.Position != 4 {
		t.Errorf("expected error at end of input, is at %d", perr.Position)
	}
	for _, se := range perr.Errors {
		if se.Got != nil {
			t.Errorf("expected end of input, have %v", se.Got)
		}
	}
	t.Logf("error: %v", err)
}

func TestFurthestError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Single")
	b.LHS("S").T("a").End()
	g, _ := b.Grammar()
	_, err := Recognize(context.Background(), g, tokens("b"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a parse error, have %v", err)
	}
	if len(perr.Errors) != 1 {
		t.Fatalf("expected exactly 1 syntax error, have %v", perr.Errors)
	}
	se := perr.Errors[0]
	if se.Expected != lr.T("a") || se.Got == nil || se.Got.Symbol != lr.T("b") || se.Got.Index != 0 ||
		se.Position != 0 {
		t.Errorf("expected 'a' and got b@0, have %v", se)
	}
	if !strings.Contains(err.Error(), "expected 'a'") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestTrailingInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Trailing")
	b.LHS("S").T("a").T("b").End()
	g, _ := b.Grammar()
	_, err := Recognize(context.Background(), g, tokens("a b c"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a parse error, have %v", err)
	}
	if perr.Position != 2 || len(perr.Errors) != 1 {
		t.Fatalf("expected 1 error at position 2, have %v", perr)
	}
	se := perr.Errors[0]
	if se.Expected != lr.EOF || se.Got == nil || se.Got.Value != "c" || se.Got.Index != 2 {
		t.Errorf("expected end of input and got c@2, have %v", se)
	}
	if !strings.Contains(err.Error(), "expected end of input") {
		t.Errorf("unexpected error message %q", err.Error())
	}
	//
	b.LHS("S").T("a").T("b").T("d").End()
	g, _ = b.Grammar()
	_, err = Recognize(context.Background(), g, tokens("a b c"))
	if !errors.As(err, &perr) || perr.Position != 2 {
		t.Fatalf("expected a parse error at position 2, have %v", err)
	}
	expected := perr.Expected()
	if len(expected) != 2 || expected[0] != lr.EOF || expected[1] != lr.T("d") {
		t.Errorf("expected end of input or 'd', have %v", expected)
	}
}

func TestCatalanAmbiguity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g := catalanGrammar(t)
	parser, err := NewParser(g, sexprReducers(g))
	if err != nil {
		t.Fatal(err)
	}
	result, err := parser.Parse(context.Background(), tokens("a a a"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind() != sppf.MultipleValues || len(result.Values()) != 2 {
		t.Fatalf("expected 2 values, have %v", result)
	}
	expected := []string{"((a) ((a) (a)))", "(((a) (a)) (a))"}
	if !sameStrings(result.Values(), expected) {
		t.Errorf("expected values %v, have %v", expected, result.Values())
	}
	all, err := parser.ParseAll(context.Background(), tokens("a a a a"))
	if err != nil {
		t.Fatal(err)
	}
	distinct := make(map[string]bool)
	for _, v := range all {
		distinct[v] = true
	}
	if len(all) != 5 || len(distinct) != 5 {
		t.Errorf("expected 5 distinct derivations for aaaa, have %v", all)
	}
}

func TestPPAttachment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g := ppGrammar(t)
	parser, err := NewParser(g, sppf.TreeReducers(g), WithAmbiguityPolicy(sppf.SurfaceAmbiguity))
	if err != nil {
		t.Fatal(err)
	}
	input := tokens("n v d n p d n")
	result, err := parser.Parse(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind() != sppf.MultipleValues || len(result.Values()) != 2 {
		t.Fatalf("expected 2 parse trees, have %v", result)
	}
	var trees []string
	for _, tree := range result.Values() {
		trees = append(trees, tree.String())
	}
	expected := []string{
		"(S (NP n) (VP (VP v (NP d n)) (PP p (NP d n))))",
		"(S (NP n) (VP v (NP (NP d n) (PP p (NP d n)))))",
	}
	if !sameStrings(trees, expected) {
		t.Errorf("expected trees %v, have %v", expected, trees)
	}
	//
	packing, _ := NewParser(g, sppf.TreeReducers(g)) // packs ambiguity by default
	result, err = packing.Parse(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	tree, ok := result.Value()
	if !ok || !strings.HasPrefix(tree.String(), "(S (NP n) (ambiguous (VP ") {
		t.Errorf("expected single tree with packed ambiguity, have %v", result)
	}
	if len(tree.Children) != 2 || !tree.Children[1].IsAmbiguous() || len(tree.Children[1].Alternatives) != 2 {
		t.Errorf("expected VP to have 2 alternatives")
	}
	//
	first, _ := NewParser(g, sppf.TreeReducers(g), WithAmbiguityPolicy(sppf.FirstDerivation))
	if result, _ = first.Parse(context.Background(), input); result.Kind() != sppf.SingleValue {
		t.Errorf("expected first derivation to result in a single tree, have %v", result)
	}
	all, _ := first.ParseAll(context.Background(), input)
	if len(all) != 2 {
		t.Errorf("expected ParseAll to enumerate 2 trees, has %d", len(all))
	}
}

func TestCatalanReducerCalls(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g := catalanGrammar(t)
	calls := 0
	leaves := func(v sppf.Value[int]) int {
		switch v.Kind() {
		case sppf.TokenValue:
			return 1
		case sppf.ReducedValue:
			n, _ := v.Reduced()
			return n
		}
		return v.Alternatives()[0] // every alternative spans the same tokens
	}
	reducers := sppf.NewReducers[int](g).Default(func(ch []sppf.Value[int]) (int, error) {
		calls++
		n := 0
		for _, c := range ch {
			n += leaves(c)
		}
		return n, nil
	})
	parser, err := NewParser(g, reducers)
	if err != nil {
		t.Fatal(err)
	}
	input := tokens(strings.TrimSpace(strings.Repeat("a ", 14)))
	forest, err := parser.Forest(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	result, err := parser.Parse(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	// C(13) = 742900 derivations, but only one reducer call per pack node
	if calls != forest.PackCount() {
		t.Errorf("expected %d reducer calls, one per pack node, have %d", forest.PackCount(), calls)
	}
	// one value per split of the root: S(0…k) S(k…14)
	if len(result.Values()) != 13 {
		t.Errorf("expected 13 values for the ambiguous root, have %d", len(result.Values()))
	}
	for _, v := range result.Values() {
		if v != 14 {
			t.Errorf("expected every value to cover 14 leaves, have %d", v)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g := palindromeGrammar(t)
	concat := sppf.NewReducers[string](g).Default(func(ch []sppf.Value[string]) (string, error) {
		var b strings.Builder
		for _, c := range ch {
			if tok, ok := c.Token(); ok {
				b.WriteString(tok.Value)
			} else {
				v, _ := c.Reduced()
				b.WriteString(v)
			}
		}
		return b.String(), nil
	})
	parser, err := NewParser(g, concat)
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"a a", "a b b a", "b a b b a b", "a b a a b a"} {
		result, err := parser.Parse(context.Background(), tokens(input))
		if err != nil {
			t.Fatal(err)
		}
		if v, _ := result.Value(); v != strings.ReplaceAll(input, " ", "") {
			t.Errorf("expected concatenated tokens to reproduce input %q, have %q", input, v)
		}
	}
	pp := ppGrammar(t)
	trees, _ := NewParser(pp, sppf.TreeReducers(pp))
	input := tokens("n v d n p d n p n")
	all, err := trees.ParseAll(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	for _, tree := range all {
		leaves := tree.Leaves()
		if len(leaves) != len(input) {
			t.Fatalf("expected %d leaves, have %d", len(input), len(leaves))
		}
		for i := range leaves {
			if leaves[i] != input[i] {
				t.Errorf("leaf #%d is %v, expected %v", i, leaves[i], input[i])
			}
		}
	}
}

func TestForestSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Sums")
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("a").End()
	g, _ := b.Grammar()
	labels := len(g.Variables())
	for _, p := range g.Productions() {
		if len(p.RHS) > 2 {
			labels += len(p.RHS) - 2 // items with dot after the second symbol
		}
	}
	for _, k := range []int{1, 5, 10, 20} {
		input := make([]string, 0, 2*k)
		for i := 0; i < k; i++ {
			if i > 0 {
				input = append(input, "+")
			}
			input = append(input, "a")
		}
		n := len(input)
		forest, err := Recognize(context.Background(), g, lr.TokenSequence(input...))
		if err != nil {
			t.Fatal(err)
		}
		bound := labels * (n + 1) * (n + 1)
		t.Logf("n = %2d: %4d branch nodes, %5d pack nodes, bound %d",
			n, forest.BranchCount(), forest.PackCount(), bound)
		if forest.BranchCount() > bound {
			t.Errorf("n = %d: %d branch nodes exceed bound %d", n, forest.BranchCount(), bound)
		}
		if forest.PackCount() > g.Size()*(n+1)*(n+1)*(n+1) {
			t.Errorf("n = %d: too many pack nodes: %d", n, forest.PackCount())
		}
	}
}

// countdownContext cancels after a given number of calls to Err.
type countdownContext struct {
	context.Context
	remaining int
	polls     int
	cancelled bool
}

func (c *countdownContext) Err() error {
	c.polls++
	if c.remaining <= 0 {
		c.cancelled = true
		return context.Canceled
	}
	c.remaining--
	return nil
}

func TestCancellation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gearley.lr")
	defer teardown()
	//
	g := catalanGrammar(t)
	var ctx *countdownContext
	lateCalls := 0
	reducers := sexprReducers(g).On(lr.P(lr.N("S"), lr.T("a")), func([]sppf.Value[string]) (string, error) {
		if ctx.cancelled {
			lateCalls++
		}
		return "a", nil
	})
	parser, err := NewParser(g, reducers)
	if err != nil {
		t.Fatal(err)
	}
	input := tokens("a a a a a a a a")
	ctx = &countdownContext{Context: context.Background(), remaining: 1 << 30}
	if _, err := parser.Parse(ctx, input); err != nil {
		t.Fatal(err)
	}
	total := ctx.polls
	t.Logf("uncancelled parse polled %d times", total)
	for _, k := range []int{0, 1, total / 4, total / 2, total - 1} {
		ctx = &countdownContext{Context: context.Background(), remaining: k}
		result, err := parser.Parse(ctx, input)
		if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
			t.Errorf("k = %d: expected parse to be cancelled, error is %v", k, err)
		}
		if result.Kind() != sppf.NoValue {
			t.Errorf("k = %d: expected no result after cancellation, have %v", k, result)
		}
		if ctx.polls != k+1 {
			t.Errorf("k = %d: expected parse to stop at first cancelled poll, polled %d times", k, ctx.polls)
		}
	}
	if lateCalls > 0 {
		t.Errorf("reducers called %d times after cancellation", lateCalls)
	}
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Recognize(cctx, g, input); !errors.Is(err, ErrCancelled) {
		t.Errorf("expected recognition to be cancelled, error is %v", err)
	}
}
