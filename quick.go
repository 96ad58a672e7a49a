// SPDX-License-Identifier: EPL-2.0

package beatswap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ik5/beatswap/assemble"
	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/beattrack"
)

// Op is the final step of a quick pipeline.
type Op struct {
	Name   string
	Suffix string
	Apply  func(ctx context.Context, s Song) (Song, error)
}

func SwapOp(expr, sep string, opts assemble.Options) Op {
	return Op{
		Name:   "beatswap",
		Suffix: SuffixBeatSwap,
		Apply: func(ctx context.Context, s Song) (Song, error) {
			return s.Beatswap(ctx, expr, sep, opts)
		},
	}
}

func SidechainOp(envelope []float64, shift float64, smoothing int) Op {
	return Op{
		Name:   "sidechain",
		Suffix: SuffixSidechain,
		Apply: func(_ context.Context, s Song) (Song, error) {
			return s.Sidechain(envelope, shift, smoothing), nil
		},
	}
}

func SampleOp(sample audio.Buffer, shift float64) Op {
	return Op{
		Name:   "beatsample",
		Suffix: SuffixBeatSample,
		Apply: func(_ context.Context, s Song) (Song, error) {
			return s.BeatSample(sample, shift), nil
		},
	}
}

// QuickOptions configures Quick. Start is in seconds, End in samples;
// End <= 0 keeps every boundary after Start.
type QuickOptions struct {
	// Tracker runs when the song has no beatmap yet.
	Tracker beattrack.Tracker

	Scale      float64
	Shift      float64
	Start      float64
	End        int
	AutoTrim   bool
	AutoScale  bool
	AutoInsert bool

	// Write saves the result to OutputName(Output, song.Name, op.Suffix).
	Write    bool
	Output   string
	BitDepth int

	Logger *slog.Logger
}

func DefaultQuickOptions() QuickOptions {
	return QuickOptions{
		Scale:    1,
		AutoTrim: true,
		BitDepth: 16,
	}
}

// ops lists the beatmap adjustments in pipeline order.
func (q QuickOptions) ops(sampleRate int) []beatmap.Op {
	var ops []beatmap.Op
	if q.AutoScale {
		ops = append(ops, beatmap.AutoScaleOp{})
	}
	if q.Shift != 0 {
		ops = append(ops, beatmap.ShiftOp{Amount: q.Shift})
	}
	if q.Scale != 1 && q.Scale != 0 {
		ops = append(ops, beatmap.ScaleOp{Factor: q.Scale})
	}
	if q.AutoInsert {
		ops = append(ops, beatmap.AutoInsertOp{})
	}
	if q.Start != 0 || q.End > 0 {
		end := beatmap.NoEnd
		if q.End > 0 {
			end = q.End
		}
		ops = append(ops, beatmap.TrimOp{Start: q.Start, End: end, SampleRate: sampleRate})
	}

	return ops
}

// Quick detects beats if needed, trims leading silence, adjusts the
// beatmap, applies op and optionally writes the result. The returned song
// carries the beatmap as it was before the adjustments, and path is the
// written file or "" when nothing was written.
func Quick(ctx context.Context, s Song, op Op, q QuickOptions) (out Song, path string, err error) {
	log := q.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if s.Beats.Len() == 0 {
		if q.Tracker == nil {
			return s, "", ErrNoBeats
		}
		if s, err = s.Detect(ctx, q.Tracker); err != nil {
			return s, "", err
		}
		log.Info("beats detected", "tracker", q.Tracker.ID(), "beats", s.Beats.Len())
	}

	if q.AutoTrim {
		s = s.AutoTrim()
	}
	saved := s.Beats

	ops := q.ops(s.SampleRate)
	for _, o := range ops {
		log.Debug("beatmap op", "op", o.String())
	}
	adjusted, err := s.Transform(ops...)
	if err != nil {
		return s, "", err
	}

	out, err = op.Apply(ctx, adjusted)
	if err != nil {
		return s, "", fmt.Errorf("%s: %w", op.Name, err)
	}
	out = out.WithBeats(saved)

	if !q.Write {
		return out, "", nil
	}

	path = OutputName(q.Output, s.Name, op.Suffix)
	bitDepth := q.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	if err := out.Save(path, bitDepth); err != nil {
		return out, "", fmt.Errorf("save %s: %w", path, err)
	}
	log.Info("written", "op", op.Name, "path", path, "frames", out.Audio.Len())

	return out, path, nil
}
