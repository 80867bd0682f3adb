package sppf

import (
	"fmt"

	"github.com/npillmayer/gearley/lr"
)

// ValueKind is the kind of a child value handed to a reducer.
type ValueKind uint8

// Kinds of child values.
const (
	TokenValue     ValueKind = iota // an input token
	ReducedValue                    // the result of a reducer
	AmbiguousValue                  // several alternative results of reducers
)

// Value is a child value handed to a reducer: either an input token, the
// reduced value of a child non-terminal, or, for ambiguity policy
// PackAmbiguity, a bundle of alternative reduced values.
type Value[T any] struct {
	kind         ValueKind
	token        lr.Token
	value        T
	alternatives []T
}

// TokenOf wraps an input token as a value.
func TokenOf[T any](tok lr.Token) Value[T] {
	return Value[T]{kind: TokenValue, token: tok}
}

// ReducedOf wraps a reduced value.
func ReducedOf[T any](v T) Value[T] {
	return Value[T]{kind: ReducedValue, value: v}
}

// AmbiguousOf bundles alternative reduced values.
func AmbiguousOf[T any](alternatives []T) Value[T] {
	return Value[T]{kind: AmbiguousValue, alternatives: alternatives}
}

// Kind returns the kind of value v.
func (v Value[T]) Kind() ValueKind {
	return v.kind
}

// Token returns the input token of a token value.
func (v Value[T]) Token() (lr.Token, bool) {
	return v.token, v.kind == TokenValue
}

// Reduced returns the reduced value of v.
func (v Value[T]) Reduced() (T, bool) {
	return v.value, v.kind == ReducedValue
}

// Alternatives returns the alternative values of an ambiguous value.
func (v Value[T]) Alternatives() []T {
	return v.alternatives
}

func (v Value[T]) String() string {
	switch v.kind {
	case TokenValue:
		return v.token.String()
	case ReducedValue:
		return fmt.Sprintf("%v", v.value)
	}
	return fmt.Sprintf("ambiguous%v", v.alternatives)
}

// --- Results ---------------------------------------------------------------

// ResultKind tells how many values a transformation produced.
type ResultKind uint8

// Kinds of results.
const (
	NoValue ResultKind = iota
	SingleValue
	MultipleValues
)

func (k ResultKind) String() string {
	switch k {
	case NoValue:
		return "none"
	case SingleValue:
		return "one"
	}
	return "many"
}

// Result is the outcome of a transformation: no value, exactly one value, or,
// for ambiguous input, more than one value. The kind of a result is set by
// its constructor.
type Result[T any] struct {
	kind   ResultKind
	values []T
}

// None returns an empty result.
func None[T any]() Result[T] {
	return Result[T]{kind: NoValue}
}

// One returns a result holding a single value.
func One[T any](v T) Result[T] {
	return Result[T]{kind: SingleValue, values: []T{v}}
}

// Many returns a result for ambiguous input, holding the values of the
// alternatives.
func Many[T any](values []T) Result[T] {
	return Result[T]{kind: MultipleValues, values: values}
}

// Kind returns the kind of result r.
func (r Result[T]) Kind() ResultKind {
	return r.kind
}

// Value returns the value of a single-valued result.
func (r Result[T]) Value() (T, bool) {
	if r.kind != SingleValue {
		var zero T
		return zero, false
	}
	return r.values[0], true
}

// Values returns all values of a result.
func (r Result[T]) Values() []T {
	return r.values
}

// IsAmbiguous is true for results with more than one value.
func (r Result[T]) IsAmbiguous() bool {
	return r.kind == MultipleValues
}

func (r Result[T]) String() string {
	switch r.kind {
	case NoValue:
		return "None"
	case SingleValue:
		return fmt.Sprintf("One(%v)", r.values[0])
	}
	return fmt.Sprintf("Many%v", r.values)
}
