// SPDX-License-Identifier: MIT

package sdp

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultBackend is the built-in interior-point backend.
	DefaultBackend = "ipm"

	// DefaultTolerance bounds the relative primal/dual residuals and the
	// relative duality gap at termination.
	DefaultTolerance = 1e-8

	// DefaultInaccurateTolerance bounds the same measures for a run that
	// stops short of Tolerance; such a run reports an *_inaccurate status.
	DefaultInaccurateTolerance = 1e-3

	// DefaultFeasibilityTolerance is how negative the PSD margin of a
	// feasibility model may be before it is declared infeasible.
	DefaultFeasibilityTolerance = 1e-6

	// DefaultMaxIterations caps interior-point iterations.
	DefaultMaxIterations = 100
)

// Config is the explicit solver configuration.
type Config struct {
	Backend              string       `validate:"required"`
	Verbose              bool         // per-iteration Debug logs
	Tolerance            float64      `validate:"gt=0,lt=1"`
	InaccurateTolerance  float64      `validate:"gtefield=Tolerance,lt=1"`
	FeasibilityTolerance float64      `validate:"gte=0,lt=1"`
	MaxIterations        int          `validate:"gte=1,lte=10000"`
	Logger               *slog.Logger `validate:"-"`
}

// Option mutates a Config.
type Option func(*Config)

// WithBackend selects a registered backend by name.
func WithBackend(name string) Option { return func(c *Config) { c.Backend = name } }

// WithVerbose toggles per-iteration logging.
func WithVerbose(v bool) Option { return func(c *Config) { c.Verbose = v } }

// WithTolerance sets the termination tolerance.
func WithTolerance(tol float64) Option { return func(c *Config) { c.Tolerance = tol } }

// WithInaccurateTolerance sets the acceptance of the *_inaccurate statuses.
func WithInaccurateTolerance(tol float64) Option {
	return func(c *Config) { c.InaccurateTolerance = tol }
}

// WithFeasibilityTolerance sets the accepted negative PSD margin.
func WithFeasibilityTolerance(tol float64) Option {
	return func(c *Config) { c.FeasibilityTolerance = tol }
}

// WithMaxIterations caps the iteration count.
func WithMaxIterations(n int) Option { return func(c *Config) { c.MaxIterations = n } }

// WithLogger routes solver logs; nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// DefaultConfig returns the documented defaults with a discard logger.
func DefaultConfig() Config {
	return Config{
		Backend:              DefaultBackend,
		Tolerance:            DefaultTolerance,
		InaccurateTolerance:  DefaultInaccurateTolerance,
		FeasibilityTolerance: DefaultFeasibilityTolerance,
		MaxIterations:        DefaultMaxIterations,
		Logger:               slog.New(slog.DiscardHandler),
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return sdpErrorf("Config.Validate", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return nil
}
