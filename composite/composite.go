// SPDX-License-Identifier: EPL-2.0

package composite

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
)

// offset is the shift applied to a boundary: shift times the gap to the
// next boundary, rounded to whole samples.
func offset(bm beatmap.BeatMap, i int, shift float64) int {
	return int(math.Round(shift * float64(bm.At(i+1)-bm.At(i))))
}

// BeatSample adds sample at every boundary that has a successor, moved by
// shift times the gap to that successor. A placement that would run past
// either end of buf is skipped and the loop carries on. buf is modified in
// place and returned.
//
// A mono sample is mixed into every channel; otherwise it is converted to
// the channel count of buf first.
func BeatSample(buf audio.Buffer, bm beatmap.BeatMap, sample audio.Buffer, shift float64) audio.Buffer {
	if sample.Empty() || buf.Empty() {
		return buf
	}
	if sample.Channels() != 1 && sample.Channels() != buf.Channels() {
		sample = sample.WithChannels(buf.Channels())
		if sample.Channels() != buf.Channels() {
			sample = sample.Mono()
		}
	}

	n, l := buf.Len(), sample.Len()
	for i := 0; i+1 < bm.Len(); i++ {
		pos := bm.At(i) + offset(bm, i, shift)
		if pos < 0 || pos+l > n {
			continue
		}

		for c, ch := range buf.Data {
			src := sample.Data[0]
			if sample.Channels() > 1 {
				src = sample.Data[c]
			}
			floats.Add(ch[pos:pos+l], src)
		}
	}

	return buf
}

// Sidechain multiplies envelope into buf at every boundary, starting
// smoothing samples early and moved by shift times the gap to the next
// boundary. Unlike BeatSample it stops at the first placement that does
// not fit, and the final boundary (which has no gap) always ends the run.
// buf is modified in place and returned.
func Sidechain(buf audio.Buffer, bm beatmap.BeatMap, envelope []float64, shift float64, smoothing int) audio.Buffer {
	if len(envelope) == 0 || buf.Empty() {
		return buf
	}

	n, l := buf.Len(), len(envelope)
	for i := 0; i+1 < bm.Len(); i++ {
		pos := bm.At(i) - smoothing + offset(bm, i, shift)
		if pos < 0 || pos+l > n {
			break
		}

		for _, ch := range buf.Data {
			floats.Mul(ch[pos:pos+l], envelope)
		}
	}

	return buf
}
