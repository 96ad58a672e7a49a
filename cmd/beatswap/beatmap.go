// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/beatswap"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/beattrack"
)

// cacheFlags select a song and the tracker whose cache entry is used.
type cacheFlags struct {
	input   string
	tracker string
	split   int
}

func (f *cacheFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "Input audio file")
	fl.StringVar(&f.tracker, "tracker", "", "Beat tracker (flux, split)")
	fl.IntVar(&f.split, "split", 0, "Beat count for the split tracker")
	_ = cmd.MarkFlagRequired("input")
}

// open loads the song and resolves the tracker; the cache key needs both.
func (a *app) open(f *cacheFlags) (beatswap.Song, beattrack.Tracker, error) {
	song, err := beatswap.Load(nil, f.input)
	if err != nil {
		return song, nil, err
	}

	tr, err := a.tracker(f.tracker, f.split, f.input)
	return song, tr, err
}

func newBeatmapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beatmap",
		Short: "Manage cached beatmaps",
		Long: `Detect, inspect, correct or forget the beatmaps cached for a song.

Subcommands:
  detect    Track beats and cache them
  show      Print the cached beatmap
  delete    Remove the cached beatmap
  fix       Shift and scale the cached beatmap in place`,
	}

	cmd.AddCommand(
		newBeatmapDetectCmd(a),
		newBeatmapShowCmd(a),
		newBeatmapDeleteCmd(a),
		newBeatmapFixCmd(a),
	)

	return cmd
}

func newBeatmapDetectCmd(a *app) *cobra.Command {
	var (
		f     cacheFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Track beats and cache them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			song, tr, err := a.open(&f)
			if err != nil {
				return err
			}
			if force {
				if err := a.cache.Delete(f.input, tr.ID(), song.Audio.Len()); err != nil {
					return err
				}
			}

			song, err = song.Detect(cmd.Context(), tr)
			if err != nil {
				return err
			}
			a.log.Info("beats detected", "tracker", tr.ID(), "beats", song.Beats.Len())

			return beatmap.Encode(cmd.OutOrStdout(), song.Beats)
		},
	}

	f.bind(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "Ignore any cached beatmap")

	return cmd
}

func newBeatmapShowCmd(a *app) *cobra.Command {
	var f cacheFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the cached beatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			song, tr, err := a.open(&f)
			if err != nil {
				return err
			}

			bm, err := a.cache.Load(f.input, tr.ID(), song.Audio.Len())
			if err != nil {
				return err
			}

			return beatmap.Encode(cmd.OutOrStdout(), bm)
		},
	}
	f.bind(cmd)

	return cmd
}

func newBeatmapDeleteCmd(a *app) *cobra.Command {
	var f cacheFlags

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the cached beatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			song, tr, err := a.open(&f)
			if err != nil {
				return err
			}

			path := a.cache.Path(f.input, tr.ID(), song.Audio.Len())
			if err := a.cache.Delete(f.input, tr.ID(), song.Audio.Len()); err != nil {
				return err
			}
			a.log.Info("beatmap deleted", "path", path)

			return nil
		},
	}
	f.bind(cmd)

	return cmd
}

func newBeatmapFixCmd(a *app) *cobra.Command {
	var (
		f     cacheFlags
		scale float64
		shift float64
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Shift and scale the cached beatmap in place",
		Long: `Track (or load) the beatmap, apply --shift then --scale and store the
result back in the cache, so later runs start from the corrected map.

Example:
  beatswap beatmap fix -i song.wav --shift 0.5 --scale 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			song, tr, err := a.open(&f)
			if err != nil {
				return err
			}

			song, err = song.Detect(cmd.Context(), tr)
			if err != nil {
				return err
			}

			var ops []beatmap.Op
			if shift != 0 {
				ops = append(ops, beatmap.ShiftOp{Amount: shift})
			}
			if scale != 1 {
				ops = append(ops, beatmap.ScaleOp{Factor: scale})
			}
			fixed, err := song.Transform(ops...)
			if err != nil {
				return err
			}

			if err := a.cache.Store(f.input, tr.ID(), song.Audio.Len(), fixed.Beats); err != nil {
				return fmt.Errorf("store fixed beatmap: %w", err)
			}
			a.log.Info("beatmap fixed", "before", song.Beats.Len(), "after", fixed.Beats.Len())

			return beatmap.Encode(cmd.OutOrStdout(), fixed.Beats)
		},
	}

	f.bind(cmd)
	cmd.Flags().Float64Var(&scale, "scale", 1, "Scale factor")
	cmd.Flags().Float64Var(&shift, "shift", 0, "Shift amount in beats")

	return cmd
}
