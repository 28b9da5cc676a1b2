// SPDX-License-Identifier: MIT
package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/momsos/config"
	"github.com/katalvlaran/momsos/sdp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Hierarchy.From)
	assert.Equal(t, 7, cfg.Hierarchy.To)
	assert.Equal(t, 2.0, cfg.Hierarchy.RadiusSq)
	assert.Equal(t, 401, cfg.Surface.Resolution)
	assert.Equal(t, sdp.DefaultBackend, cfg.Solver.Backend)
	assert.Equal(t, sdp.DefaultInaccurateTolerance, cfg.Solver.InaccurateTolerance)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	s, err := sdp.NewSolver(cfg.SolverOptions(nil)...)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"unknown log level", func(c *config.Config) { c.Log.Level = "loud" }},
		{"missing backend", func(c *config.Config) { c.Solver.Backend = "" }},
		{"zero tolerance", func(c *config.Config) { c.Solver.Tolerance = 0 }},
		{"inaccurate tolerance below tolerance", func(c *config.Config) { c.Solver.InaccurateTolerance = 1e-10 }},
		{"zero iterations", func(c *config.Config) { c.Solver.MaxIterations = 0 }},
		{"descending levels", func(c *config.Config) { c.Hierarchy.From, c.Hierarchy.To = 5, 4 }},
		{"negative radius", func(c *config.Config) { c.Hierarchy.RadiusSq = -1 }},
		{"center of wrong arity", func(c *config.Config) { c.Hierarchy.Center = []float64{1} }},
		{"tiny grid", func(c *config.Config) { c.Surface.Resolution = 1 }},
		{"inverted clip", func(c *config.Config) { c.Surface.ClipMax = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "momsos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
solver:
  tolerance: 1.0e-7
hierarchy:
  from: 3
  to: 4
  center: [1, -1]
  radius_sq: 0.2
`), 0o644))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 1e-7, cfg.Solver.Tolerance)
	assert.Equal(t, sdp.DefaultMaxIterations, cfg.Solver.MaxIterations, "unset keys keep defaults")
	assert.Equal(t, []float64{1, -1}, cfg.Hierarchy.Center)
	assert.Equal(t, 4, cfg.Hierarchy.To)

	t.Run("empty file is defaults", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))
		cfg, err := config.LoadFromFile(empty)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})
	t.Run("unknown key", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("solver:\n  speed: 11\n"), 0o644))
		_, err := config.LoadFromFile(bad)
		assert.Error(t, err)
	})
	t.Run("invalid values", func(t *testing.T) {
		bad := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("surface:\n  resolution: 0\n"), 0o644))
		_, err := config.LoadFromFile(bad)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFromFile(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "momsos.yaml")
	cfg := config.DefaultConfig()
	cfg.Hierarchy.Parallel = true
	require.NoError(t, cfg.SaveToFile(path))

	back, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
