// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/momsos/config"
	"github.com/katalvlaran/momsos/hierarchy"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "momsos dev\n", out)
}

func TestSurface(t *testing.T) {
	out, _, err := run(t, "surface", "--extent", "1", "--resolution", "3", "--log-level", "error")
	require.NoError(t, err)

	recs, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 10)
	assert.Equal(t, []string{"x", "y", "z"}, recs[0])
	assert.Equal(t, []string{"-1", "-1", "0"}, recs[1], "zero of the Motzkin polynomial")
	assert.Equal(t, []string{"0", "0", "1"}, recs[5])
	assert.Equal(t, []string{"1", "1", "0"}, recs[9])
}

func TestSurface_ClipsAndWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.csv")
	_, _, err := run(t, "surface", "--extent", "2", "--resolution", "2", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5)
	// M(2,2) = 64 + 64 − 48 + 1 = 81, above the clip
	assert.Equal(t, "NaN", recs[1][2])
}

func TestSurface_InvalidResolution(t *testing.T) {
	_, _, err := run(t, "surface", "--resolution", "1")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momsos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("surface:\n  resolution: 2\n  extent: 1\n"), 0o644))
	out, _, err := run(t, "--config", path, "surface")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5)

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = run(t, "--log-level", "chatty", "version")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestBounds(t *testing.T) {
	if testing.Short() {
		t.Skip("solves a level-3 hierarchy")
	}
	out, _, err := run(t, "bounds", "--from", "3", "--to", "3", "--radius-sq", "2", "--log-level", "error")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "level"))
	assert.True(t, strings.HasPrefix(lines[1], "3 "))
}

func TestBounds_RejectsDescendingLevels(t *testing.T) {
	_, _, err := run(t, "bounds", "--from", "4", "--to", "3")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestBounds_LevelBelowHalfDegree(t *testing.T) {
	out, _, err := run(t, "bounds", "--from", "2", "--to", "3", "--log-level", "error")
	assert.ErrorIs(t, err, hierarchy.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "levels start at 3")
	assert.Empty(t, out)

	help, _, err := run(t, "bounds", "--help")
	require.NoError(t, err)
	assert.Contains(t, help, "Levels start at ceil(deg M / 2) = 3")
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, linspace(-1, 1, 5))
}
