package sppf

import (
	"errors"
	"fmt"
)

// Errors returned by functions of this package. They will usually be wrapped
// and should be checked with errors.Is.
var (
	ErrCancelled      = errors.New("operation cancelled")
	ErrNoReducer      = errors.New("no reducer for production")
	ErrForeignGrammar = errors.New("reducers belong to a different grammar")
)

// Cancelled wraps a context error as an ErrCancelled error.
func Cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
