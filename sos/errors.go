// SPDX-License-Identifier: MIT

package sos

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for negative degrees, arity mismatches
// between target and regions, and regions whose degree exceeds the level.
var ErrInvalidArgument = errors.New("sos: invalid argument")

// sosErrorf tags err with the failing operation.
func sosErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
