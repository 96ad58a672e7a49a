// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"math"
	"slices"

	"github.com/ik5/beatswap/audio"
	"gonum.org/v1/gonum/floats"
)

// maxCrushDecimals keeps the rounding scale inside float64 precision.
const maxCrushDecimals = 15

// maxSpeedRepeat bounds how many times Speed repeats each sample.
const maxSpeedRepeat = 4096

// SwapChannels exchanges the first two channels. Mono input is copied.
func SwapChannels(b audio.Buffer) audio.Buffer {
	out := b.Clone()
	if out.Channels() >= 2 {
		out.Data[0], out.Data[1] = out.Data[1], out.Data[0]
	}

	return out
}

// ZeroChannel silences channel ch if it exists.
func ZeroChannel(b audio.Buffer, ch int) audio.Buffer {
	out := b.Clone()
	if ch >= 0 && ch < out.Channels() {
		clear(out.Data[ch])
	}

	return out
}

// Volume multiplies every sample by v.
func Volume(b audio.Buffer, v float64) audio.Buffer {
	out := b.Clone()
	for _, ch := range out.Data {
		floats.Scale(v, ch)
	}

	return out
}

// Exponent maps x to sign(x)*|x|^(1/a). a == 0 leaves the samples alone.
func Exponent(b audio.Buffer, a float64) audio.Buffer {
	out := b.Clone()
	if a == 0 {
		return out
	}

	p := 1 / a
	for _, ch := range out.Data {
		for i, x := range ch {
			if x == 0 {
				continue
			}
			ch[i] = math.Copysign(math.Pow(math.Abs(x), p), x)
		}
	}

	return out
}

// Speed changes playback speed by nearest-neighbour resampling. Factors
// below 1 repeat each sample floor(1/z) times, others keep every floor(z)th
// sample. Non-positive factors leave the samples alone. The repeat count is
// capped at maxSpeedRepeat and a step past the end keeps only the first
// sample.
func Speed(b audio.Buffer, z float64) audio.Buffer {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return b.Clone()
	}

	out := audio.Buffer{Data: make([][]float64, b.Channels())}
	if z < 1 {
		rep := maxSpeedRepeat
		if inv := 1 / z; inv < maxSpeedRepeat {
			rep = int(inv)
		}
		for c, ch := range b.Data {
			dst := make([]float64, 0, len(ch)*rep)
			for _, x := range ch {
				for range rep {
					dst = append(dst, x)
				}
			}
			out.Data[c] = dst
		}
		return out
	}

	for c, ch := range b.Data {
		step := max(len(ch), 1)
		if z < float64(step) {
			step = int(z)
		}
		dst := make([]float64, 0, len(ch)/step+1)
		for i := 0; i < len(ch); i += step {
			dst = append(dst, ch[i])
		}
		out.Data[c] = dst
	}

	return out
}

// Bitcrush quantizes amplitudes. With z = 1/arg, samples are rounded (half
// to even) to max(floor(z), 1) decimals; when z < 1 the signal is scaled
// by z before rounding and back after, giving steps coarser than 0.1.
// arg == 0 or infinite leaves the samples alone.
func Bitcrush(b audio.Buffer, arg float64) audio.Buffer {
	out := b.Clone()
	if arg == 0 || math.IsNaN(arg) || math.IsInf(arg, 0) {
		return out
	}

	z := 1 / arg
	decimals := 1
	switch {
	case z >= maxCrushDecimals:
		decimals = maxCrushDecimals
	case z > 1:
		decimals = int(z)
	}
	scale := math.Pow10(decimals)

	for _, ch := range out.Data {
		if z < 1 {
			floats.Scale(z, ch)
		}
		for i, x := range ch {
			ch[i] = math.RoundToEven(x*scale) / scale
		}
		if z < 1 {
			floats.Scale(1/z, ch)
		}
	}

	return out
}

// Downsample holds every zth sample for z samples, keeping the length.
// z <= 1 leaves the samples alone.
func Downsample(b audio.Buffer, z int) audio.Buffer {
	out := b.Clone()
	if z <= 1 {
		return out
	}

	for _, ch := range out.Data {
		for i := range ch {
			ch[i] = ch[i-i%z]
		}
	}

	return out
}

// Reverse plays the samples back to front.
func Reverse(b audio.Buffer) audio.Buffer {
	out := b.Clone()
	for _, ch := range out.Data {
		slices.Reverse(ch)
	}

	return out
}
