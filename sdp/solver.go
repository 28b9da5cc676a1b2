// SPDX-License-Identifier: MIT

package sdp

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Solver solves a Model. Infeasibility is a Status, not an error; errors are
// reserved for invalid models, cancellation and internal failures.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}

// Factory builds a Solver for a validated Config.
type Factory func(cfg Config) (Solver, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a backend available to NewSolver under name. Registering
// the same name twice replaces the previous factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)

	return names
}

// NewSolver resolves opts into a Config and builds the selected backend.
// Errors: ErrInvalidConfig, ErrUnknownBackend.
func NewSolver(opts ...Option) (Solver, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return NewSolverFromConfig(cfg)
}

// NewSolverFromConfig builds the backend named by cfg.Backend.
func NewSolverFromConfig(cfg Config) (Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	registryMu.RLock()
	f, ok := registry[cfg.Backend]
	registryMu.RUnlock()
	if !ok {
		return nil, sdpErrorf("NewSolver", fmt.Errorf("%q (have %v): %w", cfg.Backend, Backends(), ErrUnknownBackend))
	}

	return f(cfg)
}

func init() {
	Register(DefaultBackend, func(cfg Config) (Solver, error) { return newIPM(cfg), nil })
}
