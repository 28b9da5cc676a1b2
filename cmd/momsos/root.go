// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/momsos/config"
	"github.com/katalvlaran/momsos/hierarchy"
	"github.com/katalvlaran/momsos/sdp"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "momsos",
		Short:         "SOS certificates and lower-bound hierarchies for the Motzkin polynomial",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")

	root.AddCommand(
		newNotSosCmd(a),
		newBoundsCmd(a),
		newSurfaceCmd(a),
		newVersionCmd(),
	)

	return root
}

// load resolves the config file and builds the logger on stderr.
func (a *app) load(cmd *cobra.Command) error {
	a.cfg = config.DefaultConfig()
	if a.configPath != "" {
		cfg, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
		if err := a.cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level %q: %w", a.logLevel, err)
		}
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: a.cfg.SlogLevel()}))
	a.log.Debug("configuration loaded", "path", a.configPath, "backend", a.cfg.Solver.Backend)

	return nil
}

// driver builds the solver and the Motzkin driver from the config.
func (a *app) driver() (*hierarchy.Driver, error) {
	s, err := sdp.NewSolver(a.cfg.SolverOptions(a.log)...)
	if err != nil {
		return nil, err
	}

	return hierarchy.NewDriver(s,
		hierarchy.WithLogger(a.log),
		hierarchy.WithParallelism(a.cfg.Hierarchy.Parallelism))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "momsos", version)
		},
	}
}
