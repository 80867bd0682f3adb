package main

import (
	"fmt"
	"unicode"

	"github.com/timtadh/lexmachine"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/scanner"
)

// demo grammars, selectable by name.
var demos = map[string]func(b *lr.GrammarBuilder){
	// S ➞ a S a  |  b S b  |  ε
	"palindrome": func(b *lr.GrammarBuilder) {
		b.LHS("S").T("a").N("S").T("a").End()
		b.LHS("S").T("b").N("S").T("b").End()
		b.LHS("S").Epsilon()
	},
	// S ➞ S S  |  a
	"catalan": func(b *lr.GrammarBuilder) {
		b.LHS("S").N("S").N("S").End()
		b.LHS("S").T("a").End()
	},
	// S  ➞ NP VP
	// NP ➞ n  |  d n  |  NP PP
	// VP ➞ VP PP  |  v NP
	// PP ➞ p NP
	"pp": func(b *lr.GrammarBuilder) {
		b.LHS("S").N("NP").N("VP").End()
		b.LHS("NP").T("n").End()
		b.LHS("NP").T("d").T("n").End()
		b.LHS("NP").N("NP").N("PP").End()
		b.LHS("VP").N("VP").N("PP").End()
		b.LHS("VP").T("v").N("NP").End()
		b.LHS("PP").T("p").N("NP").End()
	},
	// Expr   ➞ Expr SumOp Term  |  Term
	// Term   ➞ Term ProdOp Factor  |   Factor
	// Factor ➞ number  |   ( Expr )
	// SumOp  ➞ +  |  -
	// ProdOp ➞ *  |  /
	"expr": func(b *lr.GrammarBuilder) {
		b.LHS("Expr").N("Expr").N("SumOp").N("Term").End()
		b.LHS("Expr").N("Term").End()
		b.LHS("Term").N("Term").N("ProdOp").N("Factor").End()
		b.LHS("Term").N("Factor").End()
		b.LHS("Factor").T("number").End()
		b.LHS("Factor").T("(").N("Expr").T(")").End()
		b.LHS("SumOp").T("+").End()
		b.LHS("SumOp").T("-").End()
		b.LHS("ProdOp").T("*").End()
		b.LHS("ProdOp").T("/").End()
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func makeGrammar(name string) (*lr.Grammar, error) {
	build, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("no demo grammar named %q", name)
	}
	b := lr.NewGrammarBuilder(name)
	build(b)
	return b.Grammar()
}

// makeLexer creates a lexer for the terminals of g. Terminal "number" matches
// decimal integers, alphanumeric terminals are keywords, every other terminal
// is a literal.
func makeLexer(g *lr.Grammar) (*scanner.LMAdapter, error) {
	var literals, keywords []string
	number := false
	for _, a := range g.Alphabet() {
		switch {
		case a.Label == "number":
			number = true
		case isWord(a.Label):
			keywords = append(keywords, a.Label)
		default:
			literals = append(literals, a.Label)
		}
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), scanner.Skip)
		if number {
			lexer.Add([]byte(`[0-9]+`), scanner.MakeToken("number"))
		}
	}
	return scanner.NewLMAdapter(init, literals, keywords)
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
