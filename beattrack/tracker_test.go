// SPDX-License-Identifier: EPL-2.0

package beattrack

import (
	"context"
	"errors"
	"testing"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/internal/audiotest"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	buf := audio.FromChannels(audiotest.Ramp(2, 100)...)

	tests := []struct {
		count   int
		want    beatmap.BeatMap
		wantErr error
	}{
		{count: 4, want: beatmap.New(0, 25, 50, 75)},
		{count: 3, want: beatmap.New(0, 33, 66)},
		{count: 1, want: beatmap.New(0)},
		{count: 0, wantErr: ErrInvalidSplit},
		{count: 101, wantErr: ErrTooShort},
	}

	for _, tt := range tests {
		got, err := Split{Count: tt.count}.Track(context.Background(), buf, 44100)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Split{%d} error = %v, want %v", tt.count, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Split{%d} error = %v", tt.count, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Split{%d} = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestSplit_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Split{Count: 2}.Track(ctx, audio.NewBuffer(1, 10), 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		split   int
		wantID  string
		wantErr error
	}{
		{name: "flux", wantID: "flux"},
		{name: "", wantID: "flux"},
		{name: "Split", split: 8, wantID: "split8"},
		{name: "split", wantErr: ErrInvalidSplit},
		{name: "madmom", wantErr: ErrUnknownTracker},
	}

	for _, tt := range tests {
		tr, err := New(tt.name, tt.split)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.name, err)
		}
		if tr.ID() != tt.wantID {
			t.Errorf("New(%q).ID() = %q, want %q", tt.name, tr.ID(), tt.wantID)
		}
	}
}

type countingTracker struct {
	calls int
	m     beatmap.BeatMap
}

func (c *countingTracker) ID() string { return "count" }

func (c *countingTracker) Track(context.Context, audio.Buffer, int) (beatmap.BeatMap, error) {
	c.calls++
	return c.m, nil
}

func TestCached(t *testing.T) {
	t.Parallel()

	cache, err := beatmap.NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	inner := &countingTracker{m: beatmap.New(0, 10, 20)}
	tr := Cached{Tracker: inner, Cache: cache, Name: "/music/song.wav"}
	buf := audio.NewBuffer(2, 30)

	for range 3 {
		got, err := tr.Track(context.Background(), buf, 44100)
		if err != nil {
			t.Fatalf("Track() error = %v", err)
		}
		if !got.Equal(inner.m) {
			t.Fatalf("Track() = %v, want %v", got, inner.m)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner tracker called %d times, want 1", inner.calls)
	}

	// A different length is a different entry.
	if _, err := tr.Track(context.Background(), audio.NewBuffer(2, 31), 44100); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner tracker called %d times, want 2", inner.calls)
	}

	if tr.ID() != "count" {
		t.Errorf("ID() = %q, want count", tr.ID())
	}
}
