// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/beatswap/audio"
)

// mockOggReader returns values in bursts of at most chunk, like the real
// reader does when a packet boundary is hit.
type mockOggReader struct {
	rate, channels int
	values         []float32
	chunk          int
	err            error
}

func (m *mockOggReader) SampleRate() int { return m.rate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if len(m.values) == 0 {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	n := min(len(p), len(m.values))
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	copy(p, m.values[:n])
	m.values = m.values[n:]

	return n, nil
}

func newSource(m *mockOggReader) *source {
	return &source{dec: m, sampleRate: m.rate, channels: m.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("OggS but not really")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_ValueCounting(t *testing.T) {
	t.Parallel()

	// Stereo with short packets: n counts values, never frames.
	m := &mockOggReader{
		rate:     48000,
		channels: 2,
		values:   []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3},
		chunk:    4,
	}

	got, err := audio.ReadAll(newSource(m))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", got.Len())
	}

	want := [][]float32{{0.1, 0.2, 0.3}, {-0.1, -0.2, -0.3}}
	for c := range want {
		for i, w := range want[c] {
			if float32(got.Data[c][i]) != w {
				t.Errorf("channel %d sample %d = %v, want %v", c, i, got.Data[c][i], w)
			}
		}
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{rate: 8000, channels: 1, values: []float32{0.5}})

	dst := make([]float32, 4)
	if n, err := src.ReadSamples(dst); n != 1 || err != nil {
		t.Fatalf("first read = %d, %v", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("second read = %d, %v; want 0, EOF", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("read after EOF = %d, %v", n, err)
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{rate: 8000, channels: 2})
	if _, err := src.ReadSamples(make([]float32, 5)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("odd dst error = %v, want ErrInvalidDstSize", err)
	}

	boom := errors.New("corrupt page")
	src = newSource(&mockOggReader{rate: 8000, channels: 1, err: boom})
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("decoder failure = %v, want %v", err, boom)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggReader{}, sampleRate: 22050, channels: 6, frames: 99}

	if src.SampleRate() != 22050 || src.Channels() != 6 || src.Frames() != 99 {
		t.Errorf("metadata = %d Hz, %d ch, %d frames", src.SampleRate(), src.Channels(), src.Frames())
	}
	if src.BufSize() != 6*4096 {
		t.Errorf("BufSize() = %d", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
