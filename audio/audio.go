// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a stream of interleaved float32 samples in [-1, 1].
type Source interface {
	SampleRate() int
	Channels() int
	// ReadSamples fills dst and returns the number of values written,
	// not frames. io.EOF marks the end and may come with data.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize suggests a dst length, a multiple of Channels.
	BufSize() int
	Close() error
}

// Sizer is implemented by sources that know their length up front.
// Frames returns the expected number of frames, or 0 when unknown.
type Sizer interface {
	Frames() int
}

// Decoder opens a Source over encoded input.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format names such as "wav" or "mp3" to decoders. Names
// are case-insensitive. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds d under format, replacing any earlier decoder.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	r.decoders[strings.ToLower(format)] = d
	r.mu.Unlock()
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decoders[strings.ToLower(format)]
	return d, ok
}

// Lookup finds the decoder registered for the extension of path.
func (r *Registry) Lookup(path string) (Decoder, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, false
	}

	return r.Get(ext)
}

// Formats lists the registered names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		out = append(out, k)
	}
	slices.Sort(out)

	return out
}
