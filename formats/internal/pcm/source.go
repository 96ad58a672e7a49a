// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/utils"
)

// Reader is the part of the go-audio wav and aiff decoders the source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM to float32 in [-1, 1).
type Source struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	frames   int
	// unsigned8 marks 8-bit data as offset binary (WAV) instead of signed (AIFF).
	unsigned8 bool

	intBuf *goaudio.IntBuffer
	done   bool
}

// NewSource wraps dec. frames may be 0 when the length is unknown.
func NewSource(dec Reader, format *goaudio.Format, bitDepth, frames int, unsigned8 bool) *Source {
	return &Source{
		dec:       dec,
		format:    format,
		bitDepth:  bitDepth,
		frames:    frames,
		unsigned8: unsigned8,
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Frames() int     { return s.frames }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096 * max(s.format.NumChannels, 1)
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if ch := s.format.NumChannels; ch > 0 && len(dst)%ch != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		s.done = true
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("decode pcm: %w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		if s.unsigned8 && s.bitDepth == 8 {
			v -= 128
		}
		dst[i] = float32(utils.PCMToFloat64(v, s.bitDepth))
	}

	if errors.Is(err, io.EOF) || (err == nil && n < len(dst)) {
		s.done = true
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("decode pcm: %w", err)
	}

	return n, nil
}

// ReadSeeker returns r itself when it can seek, otherwise its contents
// buffered in memory. go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}

	return bytes.NewReader(data), nil
}

// Ints converts float samples to signed integers at bitDepth.
func Ints(dst []int, src []float32, bitDepth int) []int {
	dst = dst[:0]
	for _, x := range src {
		dst = append(dst, utils.Float64ToPCM(float64(x), bitDepth))
	}

	return dst
}
