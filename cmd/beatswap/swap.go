// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/ik5/beatswap"
	"github.com/ik5/beatswap/assemble"
)

func newSwapCmd(a *app) *cobra.Command {
	var (
		f         = defaultSongFlags()
		expr      string
		sep       string
		smoothing int
		mode      string
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Rebuild a song from a beat pattern",
		Long: `Rebuild a song from a pattern of beat indices. Each comma separated
token picks a beat range and may add effects (v volume, s speed, r reverse,
d downsample, g gradient, c channel, b bitcrush, t offset, ! skip).

Examples:
  beatswap swap -i song.mp3 -p "1,3,2,4"
  beatswap swap -i song.wav -p "1, 2r, 3v0.5, 4s2" -o out/
  beatswap swap -i song.wav -p reverse --autoscale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.cfg.AssembleOptions(a.log)
			if cmd.Flags().Changed("smoothing") {
				opts.Smoothing = smoothing
			}
			if cmd.Flags().Changed("mode") {
				m, ok := assemble.ParseSmoothingMode(mode)
				if !ok {
					return fmt.Errorf("unknown smoothing mode %q", mode)
				}
				opts.Mode = m
			}
			if cmd.Flags().Changed("seed") {
				opts.Rand = rand.New(rand.NewPCG(seed, seed))
			}

			return a.run(cmd.Context(), cmd, &f, func(beatswap.Song) (beatswap.Op, error) {
				return beatswap.SwapOp(expr, sep, opts), nil
			})
		},
	}

	f.bind(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&expr, "pattern", "p", "", "Beat pattern")
	fl.StringVar(&sep, "sep", ",", "Token separator")
	fl.IntVar(&smoothing, "smoothing", assemble.DefaultSmoothing, "Crossfade length in samples")
	fl.StringVar(&mode, "mode", "replace", "Crossfade mode (replace, add)")
	fl.Uint64Var(&seed, "seed", 0, "Seed for random mode")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}
