package lr

// GrammarBuilder is used to construct a grammar rule by rule.
//
//	b := lr.NewGrammarBuilder("G")
//	b.LHS("S").T("a").N("S").T("a").End()  // S  ->  a S a
//	b.LHS("S").Epsilon()                   // S  ->
//	g, err := b.Grammar()
//
// The left hand side of the first rule is the start symbol.
type GrammarBuilder struct {
	name  string
	start Symbol
	rules []Production
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// RuleBuilder collects the right hand side of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs Symbol
	rhs Word
}

// LHS starts a new rule with non-terminal s as its left hand side.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	A := N(s)
	if !gb.start.IsValid() {
		gb.start = A
	}
	return &RuleBuilder{gb: gb, lhs: A, rhs: Word{}}
}

// N appends a non-terminal to the right hand side of the rule.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, N(s))
	return rb
}

// T appends a terminal to the right hand side of the rule.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, T(s))
	return rb
}

// End closes the rule and adds it to the grammar.
func (rb *RuleBuilder) End() Production {
	p := Production{LHS: rb.lhs, RHS: rb.rhs}
	rb.gb.rules = append(rb.gb.rules, p)
	return p
}

// Epsilon closes the rule as an ε-production and adds it to the grammar.
// Symbols appended before are discarded.
func (rb *RuleBuilder) Epsilon() Production {
	rb.rhs = Epsilon
	return rb.End()
}

// Grammar returns the grammar built so far.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	g, err := NewGrammarFromProductions(gb.name, gb.start, gb.rules...)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("grammar %s has %d rules", g.Name, g.Size())
	return g, nil
}
