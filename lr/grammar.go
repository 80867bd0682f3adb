package lr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"golang.org/x/exp/slices"
)

// ErrMalformedGrammar is returned (wrapped) for grammars failing the
// construction checks.
var ErrMalformedGrammar = errors.New("malformed grammar")

// Grammar is a context-free grammar. A grammar is immutable after
// construction and may be shared between goroutines.
type Grammar struct {
	Name        string
	start       Symbol
	variables   []Symbol
	alphabet    []Symbol
	symbols     map[Symbol]struct{}
	rules       []*Production
	serials     map[ProductionKey]int
	byLHS       map[Symbol][]int
	fingerprint string
}

// NewGrammar creates a grammar from explicit sets of variables (non-terminals)
// and terminals, a list of productions and a start symbol.
// Productions are de-duplicated; the first occurrence of a production
// determines its serial number.
//
// NewGrammar will return an error wrapping ErrMalformedGrammar if the
// start symbol is not a declared variable, if a left hand side is not
// a declared variable, or if a right hand side uses an undeclared symbol.
func NewGrammar(name string, variables, alphabet []Symbol, productions []Production,
	start Symbol) (*Grammar, error) {
	//
	g := &Grammar{
		Name:    name,
		start:   start,
		symbols: make(map[Symbol]struct{}),
		serials: make(map[ProductionKey]int),
		byLHS:   make(map[Symbol][]int),
	}
	for _, A := range variables {
		if !A.IsNonTerminal() {
			return nil, fmt.Errorf("%w: variable %v is not a non-terminal", ErrMalformedGrammar, A)
		}
		if _, ok := g.symbols[A]; !ok {
			g.symbols[A] = struct{}{}
			g.variables = append(g.variables, A)
		}
	}
	for _, a := range alphabet {
		if !a.IsTerminal() {
			return nil, fmt.Errorf("%w: %v in alphabet is not a terminal", ErrMalformedGrammar, a)
		}
		if _, ok := g.symbols[a]; !ok {
			g.symbols[a] = struct{}{}
			g.alphabet = append(g.alphabet, a)
		}
	}
	if !start.IsNonTerminal() {
		return nil, fmt.Errorf("%w: start symbol %v is not a non-terminal", ErrMalformedGrammar, start)
	}
	if _, ok := g.symbols[start]; !ok {
		return nil, fmt.Errorf("%w: start symbol %v not in variables", ErrMalformedGrammar, start)
	}
	for _, p := range productions {
		if _, ok := g.symbols[p.LHS]; !ok || !p.LHS.IsNonTerminal() {
			return nil, fmt.Errorf("%w: left hand side of %v not in variables", ErrMalformedGrammar, p)
		}
		for _, A := range p.RHS {
			if _, ok := g.symbols[A]; !ok {
				return nil, fmt.Errorf("%w: symbol %v in %v is undeclared", ErrMalformedGrammar, A, p)
			}
		}
		key := p.Key()
		if _, ok := g.serials[key]; ok {
			continue
		}
		rule := &Production{LHS: p.LHS, RHS: slices.Clone(p.RHS)}
		if rule.RHS == nil {
			rule.RHS = Epsilon
		}
		g.serials[key] = len(g.rules)
		g.byLHS[p.LHS] = append(g.byLHS[p.LHS], len(g.rules))
		g.rules = append(g.rules, rule)
	}
	slices.SortStableFunc(g.variables, compareSymbols)
	slices.SortStableFunc(g.alphabet, compareSymbols)
	g.fingerprint = g.computeFingerprint()
	return g, nil
}

// NewGrammarFromProductions creates a grammar from a list of productions.
// The set of variables is made up from every left hand side and every
// non-terminal on a right hand side, the alphabet from every terminal on a
// right hand side.
func NewGrammarFromProductions(name string, start Symbol, productions ...Production) (*Grammar, error) {
	variables := []Symbol{start}
	var alphabet []Symbol
	for _, p := range productions {
		variables = append(variables, p.LHS)
		for _, A := range p.RHS {
			if A.IsTerminal() {
				alphabet = append(alphabet, A)
			} else {
				variables = append(variables, A)
			}
		}
	}
	return NewGrammar(name, variables, alphabet, productions, start)
}

func compareSymbols(A, B Symbol) int {
	if A.Kind != B.Kind {
		return int(A.Kind) - int(B.Kind)
	}
	return strings.Compare(A.Label, B.Label)
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Variables returns the non-terminals of the grammar, sorted by label.
// Clients must not modify the returned slice.
func (g *Grammar) Variables() []Symbol {
	return g.variables
}

// Alphabet returns the terminals of the grammar, sorted by label.
// Clients must not modify the returned slice.
func (g *Grammar) Alphabet() []Symbol {
	return g.alphabet
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Productions returns all productions in serial order.
// Clients must not modify the productions.
func (g *Grammar) Productions() []*Production {
	return g.rules
}

// Production returns the production with serial number serial, or nil.
func (g *Grammar) Production(serial int) *Production {
	if serial < 0 || serial >= len(g.rules) {
		return nil
	}
	return g.rules[serial]
}

// ProductionsFor returns the serial numbers of all productions with
// left hand side A.
func (g *Grammar) ProductionsFor(A Symbol) []int {
	return g.byLHS[A]
}

// Serial returns the serial number of a production structurally equal to p.
func (g *Grammar) Serial(p Production) (int, bool) {
	serial, ok := g.serials[p.Key()]
	return serial, ok
}

// IsVariable is a predicate: is A a non-terminal of g?
func (g *Grammar) IsVariable(A Symbol) bool {
	_, ok := g.symbols[A]
	return ok && A.IsNonTerminal()
}

// IsTerminal is a predicate: is a part of g's alphabet?
func (g *Grammar) IsTerminal(a Symbol) bool {
	_, ok := g.symbols[a]
	return ok && a.IsTerminal()
}

// Fingerprint returns a structural hash of the grammar. Grammars with the same
// start symbol, symbols and productions have equal fingerprints, regardless of
// their names and the order in which productions have been added.
func (g *Grammar) Fingerprint() string {
	return g.fingerprint
}

type grammarDigest struct {
	Start       string
	Variables   []string
	Alphabet    []string
	Productions []string
}

func (g *Grammar) computeFingerprint() string {
	d := grammarDigest{Start: g.start.Label}
	for _, A := range g.variables {
		d.Variables = append(d.Variables, A.Label)
	}
	for _, a := range g.alphabet {
		d.Alphabet = append(d.Alphabet, a.Label)
	}
	for _, p := range g.rules {
		d.Productions = append(d.Productions, string(p.Key()))
	}
	slices.Sort(d.Productions)
	hash, err := structhash.Hash(d, 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint grammar %s: %v", g.Name, err)
		return ""
	}
	return hash
}

// Dump is a debugging helper, tracing all rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start symbol is %v", g.start)
	for serial, p := range g.rules {
		tracer().Debugf("%3d: %v", serial, p)
	}
	tracer().Debugf("-------------------------------------------------------")
}
