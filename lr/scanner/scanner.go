/*
Package scanner adapts existing tokenizers to produce input for the parsers of this module.

Parsers consume sequences of lr.Token. A token's terminal symbol is
identified by its label, which has to match the terminal labels of the grammar.
Two adapters are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gearley/lr"
)

// tracer traces with key 'gearley.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gearley.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token categories are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. NextToken returns false at the end of input.
type Tokenizer interface {
	NextToken() (lr.Token, bool)
	SetErrorHandler(func(error))
}

// Tokenize reads all tokens from t. It stops at the first error reported by t.
func Tokenize(t Tokenizer) ([]lr.Token, error) {
	var first error
	t.SetErrorHandler(func(err error) {
		logError(err)
		if first == nil {
			first = err
		}
	})
	var tokens []lr.Token
	for tok, ok := t.NextToken(); ok && first == nil; tok, ok = t.NextToken() {
		tokens = append(tokens, tok)
	}
	if first != nil {
		return nil, first
	}
	tracer().Debugf("tokenized input into %d tokens", len(tokens))
	return tokens, nil
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
//
// Tokens of categories Ident, Int, etc. are labelled "ident", "number",
// "float", "char", "string" and "comment". Every other token is labelled
// with its text, e.g. "+".
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune                // last token this scanner has produced
	Error        func(error)         // error handler
	unifyStrings bool                // convert single chars to strings
	labels       map[rune]string     // token category labels
	keywords     map[string]struct{} // identifiers labelled with their own text
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		labels: map[rune]string{
			Ident:     "ident",
			Int:       "number",
			Float:     "float",
			Char:      "char",
			String:    "string",
			RawString: "string",
			Comment:   "comment",
		},
		keywords: make(map[string]struct{}),
	}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GoTokens tokenizes input with a GoTokenizer.
func GoTokens(sourceID string, input io.Reader, opts ...Option) ([]lr.Token, error) {
	return Tokenize(GoTokenizer(sourceID, input, opts...))
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() (lr.Token, bool) {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return lr.Token{}, false
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	text := t.TokenText()
	label, ok := t.labels[t.lastToken]
	if !ok {
		label = text
	} else if _, kw := t.keywords[text]; kw && t.lastToken == scanner.Ident {
		label = text
	}
	return lr.MakeToken(label, text, t.Position.Offset), true
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

const (
	optionSkipComments uint = scanner.SkipComments // do not pass comments
	optionUnifyStrings uint = 1 << 16              // treat raw strings and single chars as strings
)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Label sets the terminal label for a token category, e.g.
//
//	Label(scanner.Int, "int")
func Label(category rune, label string) Option {
	return func(t *DefaultTokenizer) {
		t.labels[category] = label
	}
}

// Keywords makes identifiers with the given names be labelled with their
// own text instead of the label for category Ident.
func Keywords(words ...string) Option {
	return func(t *DefaultTokenizer) {
		for _, w := range words {
			t.keywords[w] = struct{}{}
		}
	}
}

func (t *DefaultTokenizer) hasmode(m uint) bool {
	if m == optionUnifyStrings {
		return t.unifyStrings
	}
	return t.Mode&m > 0
}
