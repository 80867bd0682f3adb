package sppf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/gearley/lr"
)

// Reducer is a callback computing the value of a production instance from
// the values of its right hand side, positionally.
type Reducer[T any] func(children []Value[T]) (T, error)

// Resolver is a callback resolving an ambiguous non-terminal. It receives
// the values of all alternative derivations and returns a single value.
type Resolver[T any] func(A lr.Symbol, alternatives []T) (T, error)

// Reducers is a registry of reducers for the productions of a grammar.
// It is built once, before parsing, and is read-only afterwards.
// Reducers are keyed by productions structurally, therefore a registry may
// be used with every grammar structurally equal to the one it has been
// built for.
//
//	reducers := sppf.NewReducers[string](g).
//	    On(lr.P(lr.N("S"), lr.T("a")), func(ch []sppf.Value[string]) (string, error) {
//	        tok, _ := ch[0].Token()
//	        return tok.Value, nil
//	    })
type Reducers[T any] struct {
	g        *lr.Grammar
	table    map[lr.ProductionKey]Reducer[T]
	resolver Resolver[T]
	errs     []error
}

// NewReducers creates an empty registry for grammar g.
func NewReducers[T any](g *lr.Grammar) *Reducers[T] {
	return &Reducers[T]{
		g:     g,
		table: make(map[lr.ProductionKey]Reducer[T]),
	}
}

// Grammar returns the grammar the registry has been built for.
func (r *Reducers[T]) Grammar() *lr.Grammar {
	return r.g
}

// On registers fn as the reducer for production p. Registering a production
// unknown to the grammar is an error reported by Validate.
func (r *Reducers[T]) On(p lr.Production, fn Reducer[T]) *Reducers[T] {
	if _, ok := r.g.Serial(p); !ok {
		r.errs = append(r.errs, fmt.Errorf("production %v is not part of grammar %s", p, r.g.Name))
		return r
	}
	r.table[p.Key()] = fn
	return r
}

// OnLHS registers fn for every production with left hand side A.
func (r *Reducers[T]) OnLHS(A lr.Symbol, fn Reducer[T]) *Reducers[T] {
	for _, serial := range r.g.ProductionsFor(A) {
		r.table[r.g.Production(serial).Key()] = fn
	}
	return r
}

// Default registers fn for every production which does not have a reducer yet.
func (r *Reducers[T]) Default(fn Reducer[T]) *Reducers[T] {
	for _, p := range r.g.Productions() {
		if _, ok := r.table[p.Key()]; !ok {
			r.table[p.Key()] = fn
		}
	}
	return r
}

// Resolve sets a resolver for ambiguous non-terminals. If present, it takes
// precedence over the ambiguity policy of a transformation.
func (r *Reducers[T]) Resolve(fn Resolver[T]) *Reducers[T] {
	r.resolver = fn
	return r
}

// Lookup returns the reducer for production p.
func (r *Reducers[T]) Lookup(p lr.Production) (Reducer[T], bool) {
	fn, ok := r.table[p.Key()]
	return fn, ok
}

// Validate checks that the registry may be used for parsing with grammar g.
// g has to be structurally equal to the grammar the registry has been built
// for. Unless allowMissing is set, every production of g must have a reducer.
func (r *Reducers[T]) Validate(g *lr.Grammar, allowMissing bool) error {
	if len(r.errs) > 0 {
		return errors.Join(r.errs...)
	}
	if g.Fingerprint() != r.g.Fingerprint() {
		return fmt.Errorf("%w: built for %s, used with %s", ErrForeignGrammar, r.g.Name, g.Name)
	}
	if allowMissing {
		return nil
	}
	var missing []string
	for _, p := range g.Productions() {
		if _, ok := r.table[p.Key()]; !ok {
			missing = append(missing, p.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrNoReducer, strings.Join(missing, ", "))
	}
	return nil
}

// --- Reducer helpers -------------------------------------------------------

// Pass is a reducer passing on the value of the first reduced child.
// Token children are skipped.
func Pass[T any](children []Value[T]) (T, error) {
	for _, ch := range children {
		if v, ok := ch.Reduced(); ok {
			return v, nil
		}
	}
	var zero T
	return zero, errors.New("no reduced child value to pass")
}

// Select returns a reducer passing on the reduced value of child i.
func Select[T any](i int) Reducer[T] {
	return func(children []Value[T]) (T, error) {
		var zero T
		if i < 0 || i >= len(children) {
			return zero, fmt.Errorf("cannot select child #%d of %d", i, len(children))
		}
		v, ok := children[i].Reduced()
		if !ok {
			return zero, fmt.Errorf("child #%d is %v, not a reduced value", i, children[i])
		}
		return v, nil
	}
}

// Ignore is a reducer returning the zero value of T.
func Ignore[T any](children []Value[T]) (T, error) {
	var zero T
	return zero, nil
}

// Constant returns a reducer always returning v.
func Constant[T any](v T) Reducer[T] {
	return func([]Value[T]) (T, error) {
		return v, nil
	}
}
