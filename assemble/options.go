// SPDX-License-Identifier: EPL-2.0

package assemble

import (
	"log/slog"
	"math/rand/v2"
	"runtime"
)

// DefaultSmoothing is the crossfade length in samples.
const DefaultSmoothing = 40

// SmoothingMode decides whether crossfades replace the tail of a segment
// or are added on top of it.
type SmoothingMode int

const (
	// Replace trims Smoothing samples from the end of each segment so the
	// crossfade takes their place and the output keeps its length.
	Replace SmoothingMode = iota
	// Add keeps segments whole; every crossfade lengthens the output.
	Add
)

func (m SmoothingMode) String() string {
	if m == Add {
		return "add"
	}
	return "replace"
}

// ParseSmoothingMode maps "replace" and "add" to a mode.
func ParseSmoothingMode(s string) (SmoothingMode, bool) {
	switch s {
	case "", "replace":
		return Replace, true
	case "add":
		return Add, true
	}

	return Replace, false
}

// Options tune Assemble.
type Options struct {
	Smoothing int
	Mode      SmoothingMode
	// Rand drives random mode. nil uses a source seeded from the runtime.
	Rand *rand.Rand
	// Workers bounds parallel segment rendering; <= 0 uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// DefaultOptions returns replace mode with the default smoothing.
func DefaultOptions() Options {
	return Options{Smoothing: DefaultSmoothing}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o Options) rand() *rand.Rand {
	if o.Rand == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o.Rand
}

func (o Options) smoothing() int {
	return max(o.Smoothing, 0)
}
