// SPDX-License-Identifier: EPL-2.0

package beattrack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
)

// Tracker produces a beatmap for a buffer.
type Tracker interface {
	// ID names the tracker and its settings. It is part of cache keys.
	ID() string
	Track(ctx context.Context, buf audio.Buffer, sampleRate int) (beatmap.BeatMap, error)
}

// Split places count boundaries evenly, starting at 0.
type Split struct {
	Count int
}

func (s Split) ID() string { return fmt.Sprintf("split%d", s.Count) }

func (s Split) Track(ctx context.Context, buf audio.Buffer, _ int) (beatmap.BeatMap, error) {
	if err := ctx.Err(); err != nil {
		return beatmap.BeatMap{}, err
	}
	if s.Count <= 0 {
		return beatmap.BeatMap{}, ErrInvalidSplit
	}

	step := buf.Len() / s.Count
	if step == 0 {
		return beatmap.BeatMap{}, ErrTooShort
	}

	b := make([]int, 0, s.Count)
	for i := range s.Count {
		b = append(b, i*step)
	}

	return beatmap.New(b...), nil
}

// New returns the tracker registered under name. split is only used by
// the "split" tracker.
func New(name string, split int) (Tracker, error) {
	switch strings.ToLower(name) {
	case "", "flux":
		return NewFlux(), nil
	case "split":
		if split <= 0 {
			return nil, ErrInvalidSplit
		}
		return Split{Count: split}, nil
	}

	return nil, fmt.Errorf("%q: %w", name, ErrUnknownTracker)
}

// Cached serves beatmaps from Cache and stores fresh results there.
type Cached struct {
	Tracker Tracker
	Cache   *beatmap.Cache
	// Name identifies the audio, usually its file name.
	Name   string
	Logger *slog.Logger
}

func (c Cached) ID() string { return c.Tracker.ID() }

func (c Cached) Track(ctx context.Context, buf audio.Buffer, sampleRate int) (beatmap.BeatMap, error) {
	log := c.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	id := c.Tracker.ID()
	m, err := c.Cache.Load(c.Name, id, buf.Len())
	switch {
	case err == nil:
		log.Debug("beatmap cache hit", "name", c.Name, "tracker", id, "beats", m.Len())
		return m, nil
	case errors.Is(err, beatmap.ErrNotCached):
	default:
		log.Warn("ignoring unreadable cached beatmap", "name", c.Name, "error", err)
	}

	m, err = c.Tracker.Track(ctx, buf, sampleRate)
	if err != nil {
		return beatmap.BeatMap{}, err
	}

	if err := c.Cache.Store(c.Name, id, buf.Len(), m); err != nil {
		log.Warn("could not cache beatmap", "name", c.Name, "error", err)
	} else {
		log.Debug("beatmap cached", "path", c.Cache.Path(c.Name, id, buf.Len()))
	}

	return m, nil
}
