package lr

import "fmt"

// Token is an input token for parsers: a terminal symbol, the text
// matched for it and its position in the input source.
type Token struct {
	Symbol Symbol // a terminal
	Value  string // matched text
	Index  int    // source offset
}

// MakeToken creates a token for terminal label.
func MakeToken(label string, value string, index int) Token {
	return Token{Symbol: T(label), Value: value, Index: index}
}

// TokenSequence creates a token sequence from terminal labels, using each label
// as the token's value and the position in the sequence as its index.
// This is mainly useful for tests and experiments.
func TokenSequence(labels ...string) []Token {
	tokens := make([]Token, len(labels))
	for i, l := range labels {
		tokens[i] = MakeToken(l, l, i)
	}
	return tokens
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Symbol.Label, t.Value, t.Index)
}
