// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides sources and buffers for tests.
package audiotest

import (
	"io"
	"math"
)

// Source streams fixed channel data as interleaved float32. It satisfies
// audio.Source and audio.Sizer without importing the audio package.
type Source struct {
	Rate int
	Data [][]float64
	// Chunk caps the frames returned per read; 0 fills dst.
	Chunk int
	// Stall makes every read return (0, nil).
	Stall bool
	// Err is returned once the data is drained instead of io.EOF.
	Err error

	pos int
}

// NewSource streams data at rate. Channels are expected to share a length.
func NewSource(rate int, data ...[]float64) *Source {
	return &Source{Rate: rate, Data: data}
}

// NewSilentSource streams frames of zeros.
func NewSilentSource(rate, channels, frames int) *Source {
	return NewSource(rate, Constant(channels, frames, 0)...)
}

// NewSineSource streams the same sine on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *Source {
	wave := make([]float64, frames)
	for i := range wave {
		wave[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
	}

	data := make([][]float64, channels)
	for c := range data {
		data[c] = wave
	}
	return NewSource(rate, data...)
}

func (s *Source) SampleRate() int { return s.Rate }
func (s *Source) Channels() int   { return len(s.Data) }
func (s *Source) BufSize() int    { return 64 * max(len(s.Data), 1) }
func (s *Source) Close() error    { return nil }

func (s *Source) Frames() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}

// Reset rewinds to the first frame.
func (s *Source) Reset() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.Stall {
		return 0, nil
	}

	ch := len(s.Data)
	left := s.Frames() - s.pos
	if ch == 0 || left <= 0 {
		if s.Err != nil {
			return 0, s.Err
		}
		return 0, io.EOF
	}

	n := min(len(dst)/ch, left)
	if s.Chunk > 0 {
		n = min(n, s.Chunk)
	}
	for f := range n {
		for c, data := range s.Data {
			dst[f*ch+c] = float32(data[s.pos+f])
		}
	}
	s.pos += n

	return n * ch, nil
}
