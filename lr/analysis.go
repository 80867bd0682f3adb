package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// Analysis holds the results of a static analysis of a grammar: nullable
// variables, FIRST sets, and variables which are unreachable from the start
// symbol or unable to derive any terminal word.
//
// The Earley recognizer does not need an analysis to operate, as it handles
// ε-productions and cyclic rules on its own. Clients may use it to inspect
// grammars for problems before parsing.
type Analysis struct {
	g          *Grammar
	nullable   map[Symbol]bool
	first      map[Symbol]*treeset.Set
	reachable  map[Symbol]bool
	productive map[Symbol]bool
}

// Analyze computes nullability, FIRST sets, reachability and productivity
// for all variables of g.
func Analyze(g *Grammar) *Analysis {
	ga := &Analysis{
		g:          g,
		nullable:   make(map[Symbol]bool),
		first:      make(map[Symbol]*treeset.Set),
		reachable:  make(map[Symbol]bool),
		productive: make(map[Symbol]bool),
	}
	for _, A := range g.variables {
		ga.first[A] = treeset.NewWith(symbolComparator)
	}
	ga.computeNullable()
	ga.computeFirst()
	ga.computeProductive()
	ga.computeReachable()
	return ga
}

func symbolComparator(a, b interface{}) int {
	return compareSymbols(a.(Symbol), b.(Symbol))
}

// Grammar returns the grammar this analysis has been computed for.
func (ga *Analysis) Grammar() *Grammar {
	return ga.g
}

// IsNullable returns true if A derives ε. Terminals are never nullable.
func (ga *Analysis) IsNullable(A Symbol) bool {
	return ga.nullable[A]
}

// Nullable returns all nullable variables.
func (ga *Analysis) Nullable() []Symbol {
	return ga.filter(ga.nullable, true)
}

// First returns the set of terminals which may start a word derived from A.
// For a terminal a, First returns { a }.
func (ga *Analysis) First(A Symbol) []Symbol {
	if A.IsTerminal() {
		return []Symbol{A}
	}
	set, ok := ga.first[A]
	if !ok {
		return nil
	}
	return symbolsOf(set)
}

// FirstOfWord returns FIRST(w) and a flag telling if w is nullable.
func (ga *Analysis) FirstOfWord(w Word) ([]Symbol, bool) {
	set := treeset.NewWith(symbolComparator)
	nullable := ga.firstOfWord(w, set)
	return symbolsOf(set), nullable
}

// Unreachable returns the variables which may not be reached from the start
// symbol.
func (ga *Analysis) Unreachable() []Symbol {
	return ga.filter(ga.reachable, false)
}

// Unproductive returns the variables which do not derive any terminal word.
func (ga *Analysis) Unproductive() []Symbol {
	return ga.filter(ga.productive, false)
}

func (ga *Analysis) filter(m map[Symbol]bool, flag bool) []Symbol {
	var syms []Symbol
	for _, A := range ga.g.variables {
		if m[A] == flag {
			syms = append(syms, A)
		}
	}
	return syms
}

func symbolsOf(set *treeset.Set) []Symbol {
	syms := make([]Symbol, 0, set.Size())
	for _, v := range set.Values() {
		syms = append(syms, v.(Symbol))
	}
	return syms
}

// --- Fixpoint iterations ---------------------------------------------------

func (ga *Analysis) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.rules {
			if ga.nullable[p.LHS] {
				continue
			}
			all := true
			for _, A := range p.RHS {
				if !ga.nullable[A] {
					all = false
					break
				}
			}
			if all {
				ga.nullable[p.LHS] = true
				changed = true
			}
		}
	}
}

// firstOfWord adds FIRST(w) to set and returns true if w is nullable.
func (ga *Analysis) firstOfWord(w Word, set *treeset.Set) bool {
	for _, A := range w {
		if A.IsTerminal() {
			set.Add(A)
			return false
		}
		if f, ok := ga.first[A]; ok {
			set.Add(f.Values()...)
		}
		if !ga.nullable[A] {
			return false
		}
	}
	return true
}

func (ga *Analysis) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.rules {
			set := ga.first[p.LHS]
			size := set.Size()
			ga.firstOfWord(p.RHS, set)
			if set.Size() > size {
				changed = true
			}
		}
	}
}

func (ga *Analysis) computeProductive() {
	for changed := true; changed; {
		changed = false
		for _, p := range ga.g.rules {
			if ga.productive[p.LHS] {
				continue
			}
			all := true
			for _, A := range p.RHS {
				if A.IsNonTerminal() && !ga.productive[A] {
					all = false
					break
				}
			}
			if all {
				ga.productive[p.LHS] = true
				changed = true
			}
		}
	}
}

func (ga *Analysis) computeReachable() {
	ga.reachable[ga.g.start] = true
	worklist := []Symbol{ga.g.start}
	for len(worklist) > 0 {
		A := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, serial := range ga.g.byLHS[A] {
			for _, B := range ga.g.rules[serial].RHS {
				if B.IsNonTerminal() && !ga.reachable[B] {
					ga.reachable[B] = true
					worklist = append(worklist, B)
				}
			}
		}
	}
}

// Dump traces the results of the analysis.
func (ga *Analysis) Dump() {
	tracer().Debugf("--- analysis of %s ---------------------------------", ga.g.Name)
	for _, A := range ga.g.variables {
		tracer().Debugf("%v: nullable=%v, FIRST=%v", A, ga.nullable[A], ga.First(A))
	}
	if u := ga.Unreachable(); len(u) > 0 {
		tracer().Infof("unreachable variables: %v", u)
	}
	if u := ga.Unproductive(); len(u) > 0 {
		tracer().Infof("unproductive variables: %v", u)
	}
}
