// SPDX-License-Identifier: EPL-2.0

package assemble

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/pattern"
	"github.com/ik5/beatswap/utils"
)

// Assemble rearranges buf according to p, walking the beatmap bm.
//
// The beatmap is normalized against the buffer length first. The output
// starts with the audio before the first boundary, followed by every
// planned segment joined with linear crossfades of opts.Smoothing samples.
// Tokens that index outside the beatmap are skipped. An empty buffer or
// beatmap yields an empty buffer.
func Assemble(ctx context.Context, buf audio.Buffer, bm beatmap.BeatMap, p *pattern.Pattern, opts Options) (audio.Buffer, error) {
	if buf.Empty() || bm.Len() == 0 {
		return audio.NewBuffer(buf.Channels(), 0), nil
	}
	if err := ctx.Err(); err != nil {
		return audio.Buffer{}, err
	}

	log := opts.logger()
	norm := bm.Normalize(buf.Len())

	var (
		plan []segment
		err  error
	)
	switch p.Mode {
	case pattern.Random:
		plan = planRandom(norm, opts)
	case pattern.Reverse:
		plan = planReverse(norm)
	default:
		plan, err = planNormal(norm, p, log)
		if err != nil {
			return audio.Buffer{}, err
		}
	}

	log.Debug("assembling",
		slog.String("mode", p.Mode.String()),
		slog.Int("size", p.Size),
		slog.Int("boundaries", norm.Len()),
		slog.Int("segments", len(plan)),
	)

	parts, err := render(ctx, buf, plan, opts)
	if err != nil {
		return audio.Buffer{}, err
	}

	return stitch(buf.Slice(0, norm.At(0)), parts, opts.smoothing())
}

// render extracts and processes every planned segment into its own slot.
func render(ctx context.Context, buf audio.Buffer, plan []segment, opts Options) ([]audio.Buffer, error) {
	parts := make([]audio.Buffer, len(plan))
	trim := 0
	if opts.Mode == Replace {
		trim = opts.smoothing()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i, seg := range plan {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			raw := buf.Slice(int(seg.start), int(seg.end)-trim)
			parts[i] = seg.chain.Apply(raw, seg.implicitReverse)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render segments: %w", err)
	}

	return parts, nil
}

// stitch appends parts to lead in order, inserting a ramp from the last
// output sample to each part's first sample.
func stitch(lead audio.Buffer, parts []audio.Buffer, smoothing int) (audio.Buffer, error) {
	total := lead.Len()
	for _, p := range parts {
		total += p.Len() + smoothing
	}

	out := audio.Buffer{Data: make([][]float64, lead.Channels())}
	for c := range out.Data {
		out.Data[c] = append(make([]float64, 0, total), lead.Data[c]...)
	}

	for _, part := range parts {
		if part.Empty() {
			continue
		}
		if part.Channels() != out.Channels() {
			return audio.Buffer{}, fmt.Errorf("segment has %d channels, output %d: %w", part.Channels(), out.Channels(), audio.ErrChannelMismatch)
		}

		if smoothing > 0 && !out.Empty() {
			last := out.Len() - 1
			for c := range out.Data {
				out.Data[c] = append(out.Data[c], utils.Linspace(out.Data[c][last], part.Data[c][0], smoothing)...)
			}
		}

		if err := out.AppendBuffer(part); err != nil {
			return audio.Buffer{}, err
		}
	}

	return out, nil
}
