// SPDX-License-Identifier: MIT
// Package matrix - numeric policy defaults and functional options.
//
// Purpose:
//   - Keep every tolerance and sweep limit in one place (single source of truth).
//   - Expose functional options for the iterative kernels (Eigen).
//
// Determinism:
//   - Options are applied left to right; last writer wins.

package matrix

import (
	"fmt"
	"math"
)

const (
	// DefaultEpsilon is the off-diagonal threshold at which Jacobi stops and
	// the symmetry tolerance applied before decomposition.
	DefaultEpsilon = 1e-12

	// DefaultMaxSweeps caps the number of cyclic Jacobi sweeps.
	// Cyclic Jacobi converges quadratically; 64 sweeps is far beyond what
	// well-scaled inputs need.
	DefaultMaxSweeps = 64

	// DefaultSymmetryTol is the absolute asymmetry accepted by Eigen before it
	// symmetrizes its working copy.
	DefaultSymmetryTol = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true
)

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicMaxSweepsInvalid = "matrix: WithMaxSweeps: sweeps must be positive"
)

// Option mutates Options; used by the iterative kernels.
type Option func(*Options)

// Options is the resolved numeric policy.
type Options struct {
	eps           float64 // off-diagonal convergence threshold (relative to the Frobenius norm)
	maxSweeps     int     // Jacobi sweep cap
	symmetryTol   float64 // accepted asymmetry before decomposition
	sortAscending bool    // order eigenpairs by ascending eigenvalue
}

// WithEpsilon sets the convergence threshold. Panics on a negative or
// non-finite eps (programmer error, not user input).
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithMaxSweeps sets the Jacobi sweep cap.
func WithMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithSymmetryTol sets the asymmetry accepted by Eigen.
func WithSymmetryTol(tol float64) Option {
	return func(o *Options) { o.symmetryTol = math.Abs(tol) }
}

// WithUnsortedEigen keeps eigenpairs in the order Jacobi leaves them.
func WithUnsortedEigen() Option {
	return func(o *Options) { o.sortAscending = false }
}

// NewMatrixOptions resolves option setters against documented defaults.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

func defaultOptions() Options {
	return Options{
		eps:           DefaultEpsilon,
		maxSweeps:     DefaultMaxSweeps,
		symmetryTol:   DefaultSymmetryTol,
		sortAscending: true,
	}
}

func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// String is used in debug logs.
func (o Options) String() string {
	return fmt.Sprintf("eps=%g sweeps=%d symTol=%g sorted=%t", o.eps, o.maxSweeps, o.symmetryTol, o.sortAscending)
}
