// SPDX-License-Identifier: MIT

// Package config loads the momsos YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/momsos/sdp"
)

// ErrInvalidConfig is returned when a loaded or merged config fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete momsos configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Solver    SolverConfig    `yaml:"solver"`
	Hierarchy HierarchyConfig `yaml:"hierarchy"`
	Surface   SurfaceConfig   `yaml:"surface"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// SolverConfig mirrors sdp.Config without the logger.
type SolverConfig struct {
	Backend              string  `yaml:"backend" validate:"required"`
	Tolerance            float64 `yaml:"tolerance" validate:"gt=0,lt=1"`
	InaccurateTolerance  float64 `yaml:"inaccurate_tolerance" validate:"gtefield=Tolerance,lt=1"`
	FeasibilityTolerance float64 `yaml:"feasibility_tolerance" validate:"gte=0,lt=1"`
	MaxIterations        int     `yaml:"max_iterations" validate:"gte=1,lte=10000"`
	Verbose              bool    `yaml:"verbose"`
}

// HierarchyConfig selects the levels of the bounds sweep and its region.
type HierarchyConfig struct {
	From     int     `yaml:"from" validate:"gte=0"`
	To       int     `yaml:"to" validate:"gtefield=From"`
	RadiusSq float64 `yaml:"radius_sq" validate:"gte=0"`
	// Center moves the ball; empty means the origin.
	Center      []float64 `yaml:"center,omitempty" validate:"omitempty,len=2"`
	Parallel    bool      `yaml:"parallel"`
	Parallelism int       `yaml:"parallelism" validate:"gte=0"`
}

// SurfaceConfig is the evaluation grid of the surface command.
type SurfaceConfig struct {
	Extent     float64 `yaml:"extent" validate:"gt=0"`
	Resolution int     `yaml:"resolution" validate:"gte=2,lte=5001"`
	ClipMin    float64 `yaml:"clip_min"`
	ClipMax    float64 `yaml:"clip_max" validate:"gtfield=ClipMin"`
}

// DefaultConfig returns the defaults of the Motzkin experiments: levels
// 3..7 on the ball of squared radius 2 and a 401×401 grid on [−1.4, 1.4]².
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Solver: SolverConfig{
			Backend:              sdp.DefaultBackend,
			Tolerance:            sdp.DefaultTolerance,
			InaccurateTolerance:  sdp.DefaultInaccurateTolerance,
			FeasibilityTolerance: sdp.DefaultFeasibilityTolerance,
			MaxIterations:        sdp.DefaultMaxIterations,
		},
		Hierarchy: HierarchyConfig{
			From:     3,
			To:       7,
			RadiusSq: 2,
		},
		Surface: SurfaceConfig{
			Extent:     1.4,
			Resolution: 401,
			ClipMin:    0,
			ClipMax:    1.2,
		},
	}
}

var validate = validator.New()

// Validate checks every section against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// LoadFromFile reads a YAML file over the defaults and validates the result.
// Unknown keys are rejected.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SolverOptions converts the solver section to sdp options.
func (c *Config) SolverOptions(logger *slog.Logger) []sdp.Option {
	return []sdp.Option{
		sdp.WithBackend(c.Solver.Backend),
		sdp.WithTolerance(c.Solver.Tolerance),
		sdp.WithInaccurateTolerance(c.Solver.InaccurateTolerance),
		sdp.WithFeasibilityTolerance(c.Solver.FeasibilityTolerance),
		sdp.WithMaxIterations(c.Solver.MaxIterations),
		sdp.WithVerbose(c.Solver.Verbose),
		sdp.WithLogger(logger),
	}
}

// SlogLevel maps Log.Level to a slog.Level; unknown names give Info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}
