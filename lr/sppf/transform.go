package sppf

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/npillmayer/gearley/lr"
)

// AmbiguityPolicy determines how ambiguous non-terminals are reduced.
type AmbiguityPolicy uint8

// Ambiguity policies for transformations.
const (
	// PackAmbiguity bundles the alternatives of an ambiguous non-terminal into
	// a single AmbiguousValue, handed to the reducer of its parent. This is
	// the default. Each ambiguous node is reduced once, so the work stays
	// proportional to the size of the forest.
	PackAmbiguity AmbiguityPolicy = iota
	// SurfaceAmbiguity enumerates every distinct derivation. Reducers see
	// only tokens and reduced values; ambiguous children lead to one reducer
	// call per combination of alternatives. The result has one value per
	// derivation, which may be exponentially many.
	SurfaceAmbiguity
	// FirstDerivation uses the first derivation found for ambiguous
	// non-terminals and drops the others.
	FirstDerivation
)

func (p AmbiguityPolicy) String() string {
	switch p {
	case SurfaceAmbiguity:
		return "surface"
	case PackAmbiguity:
		return "pack"
	case FirstDerivation:
		return "first"
	}
	return "<invalid policy>"
}

type transformConfig struct {
	policy    AmbiguityPolicy
	enumerate bool
}

// Option configures Transform.
type Option func(*transformConfig)

// WithPolicy sets the ambiguity policy for a transformation.
func WithPolicy(policy AmbiguityPolicy) Option {
	return func(c *transformConfig) {
		c.policy = policy
	}
}

// EnumerateAll makes a transformation enumerate every derivation, ignoring
// resolvers. It implies SurfaceAmbiguity.
func EnumerateAll() Option {
	return func(c *transformConfig) {
		c.policy = SurfaceAmbiguity
		c.enumerate = true
	}
}

// alternatives holds the alternative value sequences of a node.
// For non-terminal nodes every sequence has length 1.
type alternatives[T any] [][]Value[T]

type accumulator[T any] struct {
	node     NodeID
	depth    int
	parts    []alternatives[T]
	memo     alternatives[T]
	memoized bool
}

func (acc *accumulator[T]) add(alts alternatives[T]) {
	acc.parts = append(acc.parts, alts)
}

// transformer is a visitor reducing a forest bottom-up.
//
// Successfully reduced branch nodes are memoized and not descended into
// again if shared by several parents. If a cycle is detected, the transformer
// retreats towards the node closing the cycle: nodes finished in between
// contribute their acyclic alternatives only and are not memoized.
type transformer[T any] struct {
	ctx          context.Context
	reducers     *Reducers[T]
	policy       AmbiguityPolicy
	resolver     Resolver[T]
	stack        []*accumulator[T]
	memo         map[NodeID]alternatives[T]
	retreat      int // path depth of the node closing a cycle, or -1
	panicOnError bool
	err          error
}

// Transform reduces forest f to values, using the reducers registered with
// reducers. If the forest is ambiguous, the policy given with WithPolicy
// determines the outcome (default is PackAmbiguity); with a resolver
// installed in the registry, ambiguous non-terminals are resolved by calling it.
//
// ctx is checked once per node visited and once per reducer call. Reducer
// errors abort the transformation and are returned, wrapped with the
// production in question.
func Transform[T any](ctx context.Context, f *Forest, reducers *Reducers[T], opts ...Option) (Result[T], error) {
	if f == nil || f.Root() == NoNode {
		return None[T](), errors.New("forest has no root")
	}
	if reducers == nil {
		return None[T](), fmt.Errorf("%w: reducers missing", ErrNoReducer)
	}
	cfg := transformConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	t := &transformer[T]{
		ctx:          ctx,
		reducers:     reducers,
		policy:       cfg.policy,
		resolver:     reducers.resolver,
		memo:         make(map[NodeID]alternatives[T]),
		retreat:      -1,
		panicOnError: lr.ConfigFlag("panic-on-reducer-error"),
	}
	if cfg.enumerate {
		t.resolver = nil
	}
	t.push(NoNode) // collects the values of the root node
	if err := Walk(ctx, f, f.Root(), t); err != nil {
		return None[T](), err
	}
	if t.err != nil {
		return None[T](), t.err
	}
	var values []T
	for _, alts := range t.stack[0].parts {
		for _, seq := range alts {
			for _, v := range seq {
				switch v.Kind() {
				case ReducedValue:
					values = append(values, v.value)
				case AmbiguousValue:
					values = append(values, v.alternatives...)
				}
			}
		}
	}
	tracer().Debugf("transformation of %s resulted in %d value(s)", f.String(f.Root()), len(values))
	switch len(values) {
	case 0:
		return None[T](), nil
	case 1:
		return One(values[0]), nil
	}
	return Many(values), nil
}

func (t *transformer[T]) push(id NodeID) *accumulator[T] {
	acc := &accumulator[T]{node: id, depth: len(t.stack) - 1}
	t.stack = append(t.stack, acc)
	return acc
}

func (t *transformer[T]) pop() *accumulator[T] {
	acc := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return acc
}

func (t *transformer[T]) top() *accumulator[T] {
	return t.stack[len(t.stack)-1]
}

func (t *transformer[T]) halted() error {
	return t.err
}

func (t *transformer[T]) fail(err error) {
	if t.panicOnError {
		panic(err)
	}
	t.err = err
}

func (t *transformer[T]) VisitTerminal(f *Forest, id NodeID) {
	if t.err != nil {
		return
	}
	tok, ok := f.Token(id)
	if !ok {
		t.fail(fmt.Errorf("terminal node %s has no token", f.String(id)))
		return
	}
	t.top().add(alternatives[T]{{TokenOf[T](tok)}})
}

func (t *transformer[T]) EnterBranch(f *Forest, id NodeID) []NodeID {
	acc := t.push(id)
	if t.err != nil {
		return nil
	}
	if alts, ok := t.memo[id]; ok {
		acc.memo, acc.memoized = alts, true
		return nil
	}
	return f.Packs(id)
}

func (t *transformer[T]) ExitBranch(f *Forest, id NodeID) {
	acc := t.pop()
	if t.err != nil {
		return
	}
	if acc.memoized {
		t.top().add(acc.memo)
		return
	}
	var alts alternatives[T]
	for _, part := range acc.parts {
		alts = append(alts, part...)
	}
	if f.Kind(id) == NonTerminalNode && len(alts) > 1 {
		if alts = t.disambiguate(f, id, alts); t.err != nil {
			return
		}
	}
	switch {
	case t.retreat >= 0 && t.retreat < acc.depth:
		tracer().Debugf("retreating from cycle, %s not memoized", f.String(id))
	case t.retreat == acc.depth:
		t.retreat = -1
		t.memo[id] = alts
	default:
		t.memo[id] = alts
	}
	t.top().add(alts)
}

func (t *transformer[T]) EnterPack(f *Forest, id NodeID) []NodeID {
	t.push(id)
	if t.err != nil {
		return nil
	}
	return f.Children(id)
}

func (t *transformer[T]) ExitPack(f *Forest, id NodeID) {
	acc := t.pop()
	if t.err != nil {
		return
	}
	combos, err := product(t.ctx, acc.parts)
	if err != nil {
		t.err = err
		return
	}
	parent, serial, _, _ := f.Pack(id)
	if f.Kind(parent) == NonTerminalNode && len(combos) > 0 {
		p := f.Grammar().Production(serial)
		reduce, ok := t.reducers.Lookup(*p)
		if !ok {
			t.fail(fmt.Errorf("%w: %v", ErrNoReducer, p))
			return
		}
		reduced := make(alternatives[T], 0, len(combos))
		for _, children := range combos {
			if err := t.ctx.Err(); err != nil {
				t.err = Cancelled(err)
				return
			}
			v, err := reduce(children)
			if err != nil {
				t.fail(fmt.Errorf("reducing %v: %w", p, err))
				return
			}
			reduced = append(reduced, []Value[T]{ReducedOf(v)})
		}
		combos = reduced
	}
	t.top().add(combos)
}

func (t *transformer[T]) OnCycle(f *Forest, id NodeID, path []NodeID) {
	tracer().Debugf("cycle detected at %s", f.String(id))
	t.top().add(alternatives[T]{})
	depth := slices.Index(path, id)
	if t.retreat < 0 || depth < t.retreat {
		t.retreat = depth
	}
}

// disambiguate applies the resolver or the ambiguity policy to the
// alternatives of a non-terminal node.
func (t *transformer[T]) disambiguate(f *Forest, id NodeID, alts alternatives[T]) alternatives[T] {
	if t.resolver == nil && t.policy == SurfaceAmbiguity {
		return alts
	}
	if t.resolver == nil && t.policy == FirstDerivation {
		return alts[:1]
	}
	values := make([]T, 0, len(alts))
	for _, seq := range alts {
		for _, v := range seq {
			if r, ok := v.Reduced(); ok {
				values = append(values, r)
			}
		}
	}
	if t.resolver != nil {
		v, err := t.resolver(f.Symbol(id), values)
		if err != nil {
			t.fail(fmt.Errorf("resolving ambiguous %s: %w", f.String(id), err))
			return nil
		}
		return alternatives[T]{{ReducedOf(v)}}
	}
	return alternatives[T]{{AmbiguousOf(values)}}
}

// product returns the cartesian product of parts, concatenating sequences.
// If one of the parts has no alternatives, the product is empty.
func product[T any](ctx context.Context, parts []alternatives[T]) (alternatives[T], error) {
	combos := alternatives[T]{nil}
	for _, part := range parts {
		next := make(alternatives[T], 0, len(combos)*len(part))
		for _, prefix := range combos {
			if err := ctx.Err(); err != nil {
				return nil, Cancelled(err)
			}
			for _, seq := range part {
				c := make([]Value[T], 0, len(prefix)+len(seq))
				c = append(c, prefix...)
				c = append(c, seq...)
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos, nil
}
