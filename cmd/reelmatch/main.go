// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

var version = "dev"

// cli carries flag values and the loaded configuration between cobra hooks.
type cli struct {
	out        io.Writer
	errOut     io.Writer
	configPath string
	verbose    bool
	cfg        *config.Config
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "reelmatch",
		Short:         "Hybrid movie recommendations",
		Long:          "Reelmatch blends genre/tag similarity with rating correlation to suggest movies like the one you pick.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return c.loadConfig()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to config file (default: CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log progress to stderr")

	root.AddCommand(c.recommendCmd())
	root.AddCommand(c.moviesCmd())
	root.AddCommand(c.versionCmd())
	return root
}

func (c *cli) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadWithKoanf(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Results go to stdout; logs stay on stderr and are quiet by default.
	logCfg := cfg.LoggingSettings()
	logCfg.Format = "console"
	logCfg.Output = c.errOut
	logCfg.Level = "warn"
	if c.verbose {
		logCfg.Level = "debug"
	}
	logging.Init(logCfg)

	c.cfg = cfg
	return nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.out, "reelmatch", version)
		},
	}
}
