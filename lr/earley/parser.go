package earley

import (
	"context"

	"github.com/npillmayer/gearley/lr"
	"github.com/npillmayer/gearley/lr/sppf"
)

// Parser is an Earley parser for a grammar, reducing parse forests to
// values of type T. A parser has no state besides its grammar and its
// reducers and may be used concurrently.
type Parser[T any] struct {
	g        *lr.Grammar
	reducers *sppf.Reducers[T]
	policy   sppf.AmbiguityPolicy
}

// Option configures a parser.
type Option func(*options)

type options struct {
	policy       sppf.AmbiguityPolicy
	allowMissing bool
}

// WithAmbiguityPolicy sets the policy for reducing ambiguous non-terminals.
// Default is sppf.PackAmbiguity.
func WithAmbiguityPolicy(policy sppf.AmbiguityPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// AllowMissingReducers lets a parser be created with reducers which do not
// cover every production of the grammar. Parses needing a missing reducer
// will fail with an error wrapping sppf.ErrNoReducer.
func AllowMissingReducers(allow bool) Option {
	return func(o *options) {
		o.allowMissing = allow
	}
}

// NewParser creates a parser for grammar g, using reducers to compute values.
// The reducers must have been built for g or a structurally equal grammar.
// To resolve ambiguities with a custom function, install a resolver with the
// reducers (see sppf.Reducers.Resolve).
func NewParser[T any](g *lr.Grammar, reducers *sppf.Reducers[T], opts ...Option) (*Parser[T], error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if err := reducers.Validate(g, o.allowMissing); err != nil {
		return nil, err
	}
	return &Parser[T]{
		g:        g,
		reducers: reducers,
		policy:   o.policy,
	}, nil
}

// Grammar returns the grammar of the parser.
func (p *Parser[T]) Grammar() *lr.Grammar {
	return p.g
}

// Forest recognizes tokens and returns the parse forest, without reducing it.
func (p *Parser[T]) Forest(ctx context.Context, tokens []lr.Token) (*sppf.Forest, error) {
	return Recognize(ctx, p.g, tokens)
}

// Parse recognizes tokens and reduces the resulting forest to values.
// With the default policy, ambiguous non-terminals are handed to the
// reducers of their parents as AmbiguousValue bundles, and an ambiguous
// root results in more than one value. Use ParseAll to enumerate every
// derivation.
func (p *Parser[T]) Parse(ctx context.Context, tokens []lr.Token) (sppf.Result[T], error) {
	return p.parse(ctx, tokens, sppf.WithPolicy(p.policy))
}

// ParseAll recognizes tokens and returns the values of every derivation,
// regardless of the parser's ambiguity policy and of resolvers.
func (p *Parser[T]) ParseAll(ctx context.Context, tokens []lr.Token) ([]T, error) {
	result, err := p.parse(ctx, tokens, sppf.EnumerateAll())
	if err != nil {
		return nil, err
	}
	return result.Values(), nil
}

func (p *Parser[T]) parse(ctx context.Context, tokens []lr.Token, opt sppf.Option) (sppf.Result[T], error) {
	forest, err := Recognize(ctx, p.g, tokens)
	if err != nil {
		return sppf.None[T](), err
	}
	return sppf.Transform(ctx, forest, p.reducers, opt)
}
