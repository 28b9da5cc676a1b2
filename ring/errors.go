// SPDX-License-Identifier: MIT

package ring

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a negative degree, a non-positive
	// arity or a negative exponent.
	ErrInvalidArgument = errors.New("ring: invalid argument")

	// ErrArityMismatch is returned when two monomials of different length
	// are combined.
	ErrArityMismatch = errors.New("ring: arity mismatch")
)

// ringErrorf tags err with the failing operation, keeping it matchable via errors.Is.
func ringErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
