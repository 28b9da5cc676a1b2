// SPDX-License-Identifier: MIT

package poly

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/momsos/ring"
)

var (
	// ErrArityMismatch is returned when polynomials or points of different
	// variable counts are combined. It is ring.ErrArityMismatch, so either
	// sentinel matches.
	ErrArityMismatch = ring.ErrArityMismatch

	// ErrInvalidArgument is returned for malformed inputs (empty term lists,
	// negative degrees, non-positive arity, invalid radii).
	ErrInvalidArgument = errors.New("poly: invalid argument")

	// ErrShape is returned by FromGram when Q is not L×L for the basis size L.
	ErrShape = fmt.Errorf("poly: gram matrix shape does not match basis: %w", ErrInvalidArgument)

	// ErrNotNumeric is returned when a symbolic coefficient still references
	// a variable where a number is required.
	ErrNotNumeric = errors.New("poly: coefficient is not numeric")
)

// polyErrorf tags err with the failing operation.
func polyErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
