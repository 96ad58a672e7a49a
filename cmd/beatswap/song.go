// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/beatswap"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/beattrack"
)

// songFlags are shared by every command that loads a song and runs the
// quick pipeline over it.
type songFlags struct {
	input   string
	output  string
	beats   string
	tracker string
	split   int

	scale      float64
	shift      float64
	start      float64
	end        int
	autoTrim   bool
	autoScale  bool
	autoInsert bool
	bitDepth   int
	noWrite    bool
}

// defaultSongFlags matches beatswap.DefaultQuickOptions.
func defaultSongFlags() songFlags {
	return songFlags{scale: 1, autoTrim: true}
}

// bind registers the flags with the current field values as defaults.
func (f *songFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "Input audio file (wav, aiff, mp3, ogg)")
	fl.StringVarP(&f.output, "output", "o", "", "Output file, or a prefix such as a directory ending in /")
	fl.StringVar(&f.beats, "beats", "", "Beatmap text file to use instead of beat tracking")
	fl.StringVar(&f.tracker, "tracker", "", "Beat tracker (flux, split)")
	fl.IntVar(&f.split, "split", 0, "Beat count for the split tracker")
	fl.Float64Var(&f.scale, "scale", f.scale, "Beatmap scale (2 merges beat pairs, 0.5 halves beats)")
	fl.Float64Var(&f.shift, "shift", f.shift, "Move boundaries a fraction of a beat")
	fl.Float64Var(&f.start, "start", f.start, "Drop boundaries before this many seconds")
	fl.IntVar(&f.end, "end", f.end, "Drop boundaries after this sample (0 = keep all)")
	fl.BoolVar(&f.autoTrim, "autotrim", f.autoTrim, "Trim leading silence")
	fl.BoolVar(&f.autoScale, "autoscale", f.autoScale, "Scale very long or short beats toward a typical length")
	fl.BoolVar(&f.autoInsert, "autoinsert", f.autoInsert, "Fill the lead-in with beats of the first beat's length")
	fl.IntVar(&f.bitDepth, "bit-depth", f.bitDepth, "Output bit depth (16, 24, 32)")
	fl.BoolVar(&f.noWrite, "dry-run", f.noWrite, "Process without writing the result")
	_ = cmd.MarkFlagRequired("input")
}

// tracker builds the configured tracker behind the beatmap cache.
func (a *app) tracker(name string, split int, song string) (beattrack.Tracker, error) {
	if name == "" {
		name = a.cfg.Tracker
	}
	if split <= 0 {
		split = a.cfg.Split
	}

	tr, err := beattrack.New(name, split)
	if err != nil {
		return nil, err
	}

	return beattrack.Cached{Tracker: tr, Cache: a.cache, Name: song, Logger: a.log}, nil
}

// load decodes the input and attaches a beatmap file when one is given.
func (a *app) load(f *songFlags) (beatswap.Song, error) {
	song, err := beatswap.Load(nil, f.input)
	if err != nil {
		return song, err
	}
	a.log.Info("loaded", "file", f.input, "rate", song.SampleRate, "channels", song.Audio.Channels(), "frames", song.Audio.Len())

	if f.beats == "" {
		return song, nil
	}

	bf, err := os.Open(f.beats)
	if err != nil {
		return song, err
	}
	defer bf.Close()

	bm, err := beatmap.Decode(bf)
	if err != nil {
		return song, fmt.Errorf("%s: %w", f.beats, err)
	}

	return song.WithBeats(bm), nil
}

func (a *app) quickOptions(f *songFlags, tr beattrack.Tracker) beatswap.QuickOptions {
	q := beatswap.DefaultQuickOptions()
	q.Tracker = tr
	q.Scale = f.scale
	q.Shift = f.shift
	q.Start = f.start
	q.End = f.end
	q.AutoTrim = f.autoTrim
	q.AutoScale = f.autoScale
	q.AutoInsert = f.autoInsert
	q.Write = !f.noWrite
	q.Output = f.output
	q.BitDepth = a.cfg.BitDepth
	if f.bitDepth != 0 {
		q.BitDepth = f.bitDepth
	}
	q.Logger = a.log

	return q
}

// run loads the song and runs the quick pipeline with the op built for it.
func (a *app) run(ctx context.Context, cmd *cobra.Command, f *songFlags, build func(beatswap.Song) (beatswap.Op, error)) error {
	song, err := a.load(f)
	if err != nil {
		return err
	}

	tr, err := a.tracker(f.tracker, f.split, f.input)
	if err != nil {
		return err
	}

	op, err := build(song)
	if err != nil {
		return err
	}

	_, path, err := beatswap.Quick(ctx, song, op, a.quickOptions(f, tr))
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}
