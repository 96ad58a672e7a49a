// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/internal/config"
)

// app carries the global flags and what PersistentPreRunE builds from
// them.
type app struct {
	configPath string
	logLevel   string
	cacheDir   string
	workers    int

	cfg   config.Config
	log   *slog.Logger
	cache *beatmap.Cache
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "beatswap",
		Short: "Rearrange songs beat by beat",
		Long: `beatswap detects the beats of a song and rebuilds it from a pattern
of beat indices and effects.

Pipeline: decode → beat tracking (cached) → beatmap adjustments → pattern → WAV`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "JSON config file")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.cacheDir, "cache-dir", "", "Directory for cached beatmaps")
	pf.IntVar(&a.workers, "workers", 0, "Parallel render workers (0 = all CPUs)")

	root.AddCommand(
		newSwapCmd(a),
		newSidechainCmd(a),
		newSampleCmd(a),
		newBeatmapCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup layers the config file, the environment and the global flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = a.cacheDir
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = cfg.Logger(cmd.ErrOrStderr())

	a.cache, err = beatmap.NewCache(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("beatmap cache: %w", err)
	}
	a.log.Debug("config loaded", "cache", a.cache.Dir(), "tracker", cfg.Tracker, "workers", cfg.Workers)

	return nil
}
