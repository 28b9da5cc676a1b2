// SPDX-License-Identifier: MIT

package hierarchy

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/momsos/sdp"
)

var (
	// ErrInvalidArgument is returned for negative levels, levels too low for
	// the target degree, non-ascending sweeps and invalid radii.
	ErrInvalidArgument = errors.New("hierarchy: invalid argument")

	// ErrUndefinedBound is returned by Result.Bound when the status carries
	// no primal solution.
	ErrUndefinedBound = errors.New("hierarchy: bound undefined")

	// ErrSolverFailure reports an unbounded or solver_error status. It
	// wraps sdp.ErrSolverFailure.
	ErrSolverFailure = fmt.Errorf("hierarchy: %w", sdp.ErrSolverFailure)
)

// hierarchyErrorf tags err with the failing operation.
func hierarchyErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
