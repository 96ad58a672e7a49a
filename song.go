// SPDX-License-Identifier: EPL-2.0

package beatswap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/beatswap/assemble"
	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/beattrack"
	"github.com/ik5/beatswap/composite"
	"github.com/ik5/beatswap/formats"
	"github.com/ik5/beatswap/formats/wav"
	"github.com/ik5/beatswap/pattern"
)

// Song is a snapshot of audio and its beat boundaries. Methods never
// modify the receiver.
type Song struct {
	Audio      audio.Buffer
	Beats      beatmap.BeatMap
	SampleRate int
	// Name is the file the song came from. It keys the beatmap cache and
	// names output files.
	Name string
}

// Load decodes the file at path. A nil registry means formats.NewRegistry().
func Load(reg *audio.Registry, path string) (Song, error) {
	if reg == nil {
		reg = formats.NewRegistry()
	}

	src, err := formats.Open(reg, path)
	if err != nil {
		return Song{}, err
	}
	defer src.Close()

	return FromSource(src, path)
}

// FromSource drains src into a Song. It does not close src.
func FromSource(src audio.Source, name string) (Song, error) {
	if src.SampleRate() <= 0 {
		return Song{}, ErrInvalidSampleRate
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return Song{}, fmt.Errorf("read %s: %w", name, err)
	}

	return Song{Audio: buf, SampleRate: src.SampleRate(), Name: name}, nil
}

// LoadSample decodes path and resamples it to the song's rate.
func (s Song) LoadSample(reg *audio.Registry, path string) (audio.Buffer, error) {
	sample, err := Load(reg, path)
	if err != nil {
		return audio.Buffer{}, err
	}

	return sample.Audio.Resample(sample.SampleRate, s.SampleRate), nil
}

// Save writes the audio as a WAV file at bitDepth, creating parent
// directories as needed.
func (s Song) Save(path string, bitDepth int) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return wav.Encode(f, s.Audio.Source(s.SampleRate), bitDepth)
}

// WithBeats returns a copy using bm as its beatmap.
func (s Song) WithBeats(bm beatmap.BeatMap) Song {
	s.Beats = bm
	return s
}

// Transform applies beatmap operations in order.
func (s Song) Transform(ops ...beatmap.Op) (Song, error) {
	bm, err := beatmap.Transform(s.Beats, ops...)
	if err != nil {
		return s, err
	}

	return s.WithBeats(bm), nil
}

// Detect replaces the beatmap with the tracker's result.
func (s Song) Detect(ctx context.Context, tr beattrack.Tracker) (Song, error) {
	bm, err := tr.Track(ctx, s.Audio, s.SampleRate)
	if err != nil {
		return s, fmt.Errorf("track beats with %s: %w", tr.ID(), err)
	}

	return s.WithBeats(bm), nil
}

// AutoTrim drops leading near-silence and moves the beatmap with the
// audio. Boundaries that fall inside the trimmed part are mirrored to
// their distance from the new start.
func (s Song) AutoTrim() Song {
	n := s.Audio.LeadingSilence(audio.SilenceThreshold)
	if n == 0 {
		return s
	}

	out := s
	out.Audio = s.Audio.Slice(n, s.Audio.Len())

	b := s.Beats.Values()
	for i, v := range b {
		b[i] = abs(v - n)
	}
	out.Beats = beatmap.New(b...)

	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Beatswap parses expr and reassembles the audio along the beatmap.
func (s Song) Beatswap(ctx context.Context, expr, sep string, opts assemble.Options) (Song, error) {
	p, err := pattern.Parse(expr, sep)
	if err != nil {
		return s, err
	}

	buf, err := assemble.Assemble(ctx, s.Audio, s.Beats, p, opts)
	if err != nil {
		return s, err
	}

	out := s
	out.Audio = buf
	return out, nil
}

// Sidechain ducks the audio with envelope on every beat.
func (s Song) Sidechain(envelope []float64, shift float64, smoothing int) Song {
	out := s
	out.Audio = composite.Sidechain(s.Audio.Clone(), s.Beats, envelope, shift, smoothing)
	return out
}

// BeatSample mixes sample onto every beat.
func (s Song) BeatSample(sample audio.Buffer, shift float64) Song {
	out := s
	out.Audio = composite.BeatSample(s.Audio.Clone(), s.Beats, sample, shift)
	return out
}
