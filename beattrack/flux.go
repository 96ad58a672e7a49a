// SPDX-License-Identifier: EPL-2.0

package beattrack

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
)

const (
	DefaultFrameSize = 2048
	DefaultHopSize   = 512
	DefaultMinBPM    = 60
	DefaultMaxBPM    = 200
)

// Flux is a spectral flux beat tracker.
type Flux struct {
	FrameSize int
	HopSize   int
	MinBPM    float64
	MaxBPM    float64
}

func NewFlux() Flux {
	return Flux{
		FrameSize: DefaultFrameSize,
		HopSize:   DefaultHopSize,
		MinBPM:    DefaultMinBPM,
		MaxBPM:    DefaultMaxBPM,
	}
}

func (f Flux) ID() string { return "flux" }

// Track returns one boundary per detected beat, positioned at the centre
// of the analysis frame holding the onset.
func (f Flux) Track(ctx context.Context, buf audio.Buffer, sampleRate int) (beatmap.BeatMap, error) {
	if sampleRate <= 0 {
		return beatmap.BeatMap{}, fmt.Errorf("sample rate %d: %w", sampleRate, beatmap.ErrInvalidParam)
	}
	if f.FrameSize <= 0 || f.HopSize <= 0 || f.MinBPM <= 0 || f.MaxBPM < f.MinBPM {
		return beatmap.BeatMap{}, fmt.Errorf("flux settings %+v: %w", f, beatmap.ErrInvalidParam)
	}

	mono := buf.Mono()
	if mono.Len() < f.FrameSize {
		return beatmap.BeatMap{}, ErrTooShort
	}

	onset, err := f.onsets(ctx, mono.Data[0])
	if err != nil {
		return beatmap.BeatMap{}, err
	}

	hopsPerMinute := 60 * float64(sampleRate) / float64(f.HopSize)
	minLag := max(int(math.Ceil(hopsPerMinute/f.MaxBPM)), 1)
	maxLag := min(int(hopsPerMinute/f.MinBPM), len(onset)-1)
	if maxLag < minLag {
		return beatmap.BeatMap{}, ErrTooShort
	}

	lag := bestLag(onset, minLag, maxLag)
	frames := follow(onset, lag, bestPhase(onset, lag))

	b := make([]int, 0, len(frames))
	for _, fr := range frames {
		pos := fr*f.HopSize + f.FrameSize/2
		if pos >= mono.Len() {
			break
		}
		b = append(b, pos)
	}

	return beatmap.New(b...), nil
}

// onsets computes the half-wave rectified spectral flux per hop.
func (f Flux) onsets(ctx context.Context, x []float64) ([]float64, error) {
	n := (len(x)-f.FrameSize)/f.HopSize + 1

	ones := make([]float64, f.FrameSize)
	for i := range ones {
		ones[i] = 1
	}
	win := window.Hann(ones)
	fft := fourier.NewFFT(f.FrameSize)

	frame := make([]float64, f.FrameSize)
	coeffs := make([]complex128, f.FrameSize/2+1)
	prev := make([]float64, len(coeffs))
	mag := make([]float64, len(coeffs))

	onset := make([]float64, n)
	for i := range n {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		start := i * f.HopSize
		floats.MulTo(frame, x[start:start+f.FrameSize], win)
		coeffs = fft.Coefficients(coeffs, frame)

		var flux float64
		for k, c := range coeffs {
			mag[k] = cmplx.Abs(c)
			if d := mag[k] - prev[k]; d > 0 {
				flux += d
			}
		}
		onset[i] = flux
		prev, mag = mag, prev
	}

	return onset, nil
}

// bestLag picks the autocorrelation peak of the onset envelope.
func bestLag(onset []float64, minLag, maxLag int) int {
	best, bestCorr := minLag, -1.0
	for lag := minLag; lag <= maxLag; lag++ {
		corr := floats.Dot(onset[:len(onset)-lag], onset[lag:])
		if corr > bestCorr {
			best, bestCorr = lag, corr
		}
	}

	return best
}

// bestPhase picks the offset in [0, lag) whose comb collects the most
// onset energy.
func bestPhase(onset []float64, lag int) int {
	best, bestSum := 0, -1.0
	for off := range min(lag, len(onset)) {
		var sum float64
		for i := off; i < len(onset); i += lag {
			sum += onset[i]
		}
		if sum > bestSum {
			best, bestSum = off, sum
		}
	}

	return best
}

// follow walks the beat grid from start, snapping each predicted beat to
// the strongest onset within a quarter period.
func follow(onset []float64, lag, start int) []int {
	tol := max(lag/4, 1)
	beats := []int{start}
	for pos := start; ; {
		pred := pos + lag
		if pred >= len(onset) {
			break
		}

		lo, hi := max(pred-tol, pos+1), min(pred+tol, len(onset)-1)
		next := pred
		if peak := floats.MaxIdx(onset[lo : hi+1]); onset[lo+peak] > 0 {
			next = lo + peak
		}

		beats = append(beats, next)
		pos = next
	}

	return beats
}
