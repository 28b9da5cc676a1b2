// SPDX-License-Identifier: MIT

package sdp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidModel is returned for structurally broken models: a PSD
	// block of size < 1, variables from another model, or nothing to solve.
	ErrInvalidModel = errors.New("sdp: invalid model")

	// ErrUnknownBackend is returned by NewSolver for an unregistered backend name.
	ErrUnknownBackend = errors.New("sdp: unknown backend")

	// ErrSolverFailure marks a numerical breakdown inside a backend.
	ErrSolverFailure = errors.New("sdp: solver failure")

	// ErrNoSolution is returned when values are read from a solution whose
	// status carries none.
	ErrNoSolution = errors.New("sdp: status carries no solution")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("sdp: invalid config")
)

// sdpErrorf tags err with the failing operation.
func sdpErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
