// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Buffer holds channel-major float64 samples. Every channel has the same
// length. Methods never modify the receiver unless their name says so.
type Buffer struct {
	Data [][]float64
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(channels, length int) Buffer {
	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, length)
	}

	return Buffer{Data: data}
}

// FromChannels wraps the given channel slices without copying them.
func FromChannels(channels ...[]float64) Buffer {
	return Buffer{Data: channels}
}

func (b Buffer) Channels() int { return len(b.Data) }

// Len is the number of frames.
func (b Buffer) Len() int {
	if len(b.Data) == 0 {
		return 0
	}

	return len(b.Data[0])
}

func (b Buffer) Empty() bool { return b.Len() == 0 }

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	out := Buffer{Data: make([][]float64, len(b.Data))}
	for c, ch := range b.Data {
		out.Data[c] = append([]float64(nil), ch...)
	}

	return out
}

// Slice copies frames [start, end). Bounds are clamped to the buffer and an
// inverted range yields an empty buffer.
func (b Buffer) Slice(start, end int) Buffer {
	n := b.Len()
	start = min(max(start, 0), n)
	end = min(max(end, start), n)

	out := Buffer{Data: make([][]float64, len(b.Data))}
	for c, ch := range b.Data {
		out.Data[c] = append(make([]float64, 0, end-start), ch[start:end]...)
	}

	return out
}

// AppendBuffer appends o to b in place.
func (b *Buffer) AppendBuffer(o Buffer) error {
	if len(b.Data) != len(o.Data) {
		return fmt.Errorf("append %d channels to %d: %w", len(o.Data), len(b.Data), ErrChannelMismatch)
	}

	for c := range b.Data {
		b.Data[c] = append(b.Data[c], o.Data[c]...)
	}

	return nil
}

// Source streams the buffer as interleaved float32 at sampleRate.
func (b Buffer) Source(sampleRate int) Source {
	return &bufferSource{buf: b, sampleRate: sampleRate}
}

type bufferSource struct {
	buf        Buffer
	sampleRate int
	pos        int
}

func (s *bufferSource) SampleRate() int { return s.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) BufSize() int    { return 4096 * max(s.buf.Channels(), 1) }
func (s *bufferSource) Close() error    { return nil }
func (s *bufferSource) Frames() int     { return s.buf.Len() }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := min(len(dst)/channels, s.buf.Len()-s.pos)
	if frames <= 0 {
		return 0, io.EOF
	}

	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = float32(s.buf.Data[c][s.pos+f])
		}
	}
	s.pos += frames

	return frames * channels, nil
}
