// SPDX-License-Identifier: EPL-2.0

package beatswap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/beatswap/assemble"
	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/beattrack"
	"github.com/ik5/beatswap/formats/wav"
	"github.com/ik5/beatswap/internal/audiotest"
	"github.com/ik5/beatswap/pattern"
)

func noSmoothing() assemble.Options {
	opts := assemble.DefaultOptions()
	opts.Smoothing = 0
	return opts
}

func rampSong(channels, length int, beats ...int) Song {
	return Song{
		Audio:      audio.FromChannels(audiotest.Ramp(channels, length)...),
		Beats:      beatmap.New(beats...),
		SampleRate: 1000,
		Name:       "ramp.wav",
	}
}

func writeWAV(t *testing.T, path string, buf audio.Buffer, rate int) {
	t.Helper()

	var out bytes.Buffer
	if err := wav.WritePCM16(&out, buf, rate); err != nil {
		t.Fatalf("WritePCM16() error = %v", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFromSource(t *testing.T) {
	t.Parallel()

	s, err := FromSource(audiotest.NewSineSource(8000, 2, 300, 440), "sine")
	if err != nil {
		t.Fatalf("FromSource() error = %v", err)
	}
	if s.SampleRate != 8000 || s.Audio.Channels() != 2 || s.Audio.Len() != 300 || s.Name != "sine" {
		t.Errorf("FromSource() = %d Hz, %d ch, %d frames, %q", s.SampleRate, s.Audio.Channels(), s.Audio.Len(), s.Name)
	}

	if _, err := FromSource(audiotest.NewSilentSource(0, 1, 10), "bad"); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("FromSource(rate 0) error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestLoadSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	want := audio.FromChannels(
		[]float64{0, 0.5, -0.5, 0.25},
		[]float64{0.25, 0, 0, -0.25},
	)
	writeWAV(t, in, want, 22050)

	s, err := Load(nil, in)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.SampleRate != 22050 || s.Name != in {
		t.Errorf("Load() = %d Hz, name %q", s.SampleRate, s.Name)
	}
	if !audiotest.Equal(s.Audio.Data, want.Data, 1e-4) {
		t.Errorf("Load() audio = %v, want %v", s.Audio.Data, want.Data)
	}

	out := filepath.Join(dir, "nested", "deeper", "out.wav")
	if err := s.Save(out, 24); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again, err := Load(nil, out)
	if err != nil {
		t.Fatalf("Load(saved) error = %v", err)
	}
	if !audiotest.Equal(again.Audio.Data, want.Data, 1e-4) {
		t.Errorf("saved audio = %v, want %v", again.Audio.Data, want.Data)
	}

	if _, err := Load(nil, filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestLoadSample_Resamples(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kick.wav")
	writeWAV(t, path, audio.NewBuffer(1, 100), 8000)

	song := Song{SampleRate: 16000}
	sample, err := song.LoadSample(nil, path)
	if err != nil {
		t.Fatalf("LoadSample() error = %v", err)
	}
	if sample.Len() != 200 {
		t.Errorf("LoadSample() len = %d, want 200", sample.Len())
	}
}

func TestAutoTrim(t *testing.T) {
	t.Parallel()

	left := []float64{0, 0, 0.00001, 0.5, 1, 1, 1, 1, 1, 1}
	right := []float64{0.9, 0.9, 0.9, 0.5, 1, 1, 1, 1, 1, 1}
	s := Song{Audio: audio.FromChannels(left, right), Beats: beatmap.New(0, 5, 8), SampleRate: 10}

	got := s.AutoTrim()
	if got.Audio.Len() != 7 || got.Audio.Data[0][0] != 0.5 || got.Audio.Data[1][0] != 0.5 {
		t.Errorf("AutoTrim() audio = %v", got.Audio.Data)
	}
	if want := beatmap.New(3, 2, 5); !got.Beats.Equal(want) {
		t.Errorf("AutoTrim() beats = %v, want %v", got.Beats, want)
	}
	if s.Audio.Len() != 10 || !s.Beats.Equal(beatmap.New(0, 5, 8)) {
		t.Error("AutoTrim() modified the receiver")
	}

	loud := rampSong(1, 10, 0, 5)
	loud.Audio.Data[0][0] = 1
	if again := loud.AutoTrim(); again.Audio.Len() != 10 || !again.Beats.Equal(loud.Beats) {
		t.Error("AutoTrim() changed a song without leading silence")
	}
}

func TestTransform(t *testing.T) {
	t.Parallel()

	s := rampSong(1, 100, 0, 10, 20, 30, 40)

	got, err := s.Transform(beatmap.ShiftOp{Amount: 0.5}, beatmap.TrimOp{Start: 0.01, End: beatmap.NoEnd, SampleRate: 1000})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if want := beatmap.New(15, 25, 35, 40); !got.Beats.Equal(want) {
		t.Errorf("Transform() = %v, want %v", got.Beats, want)
	}

	if _, err := s.Transform(beatmap.ScaleOp{Factor: -1}); !errors.Is(err, beatmap.ErrInvalidParam) {
		t.Errorf("Transform(bad scale) error = %v, want ErrInvalidParam", err)
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	s := rampSong(2, 100)
	got, err := s.Detect(context.Background(), beattrack.Split{Count: 4})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if want := beatmap.New(0, 25, 50, 75); !got.Beats.Equal(want) {
		t.Errorf("Detect() = %v, want %v", got.Beats, want)
	}

	if _, err := s.Detect(context.Background(), beattrack.Split{}); !errors.Is(err, beattrack.ErrInvalidSplit) {
		t.Errorf("Detect(bad split) error = %v", err)
	}
}

func TestBeatswap(t *testing.T) {
	t.Parallel()

	s := rampSong(2, 40, 0, 10, 20, 30)

	got, err := s.Beatswap(context.Background(), "1,3,2,4", ",", noSmoothing())
	if err != nil {
		t.Fatalf("Beatswap() error = %v", err)
	}

	var want []float64
	for _, r := range [][2]int{{0, 10}, {20, 30}, {10, 20}, {30, 40}} {
		for i := r[0]; i < r[1]; i++ {
			want = append(want, float64(i))
		}
	}
	for i, w := range want {
		if got.Audio.Data[0][i] != w || got.Audio.Data[1][i] != w+1000 {
			t.Fatalf("Beatswap() frame %d = %v/%v, want %v", i, got.Audio.Data[0][i], got.Audio.Data[1][i], w)
		}
	}
	if !got.Beats.Equal(s.Beats) || s.Audio.Data[0][10] != 10 {
		t.Error("Beatswap() touched the beatmap or the receiver")
	}

	if _, err := s.Beatswap(context.Background(), "1,1/0", ",", noSmoothing()); !errors.Is(err, pattern.ErrSyntax) {
		t.Errorf("Beatswap(bad pattern) error = %v, want ErrSyntax", err)
	}
}

func TestSidechainAndBeatSample(t *testing.T) {
	t.Parallel()

	s := Song{
		Audio:      audio.FromChannels(audiotest.Constant(2, 20, 1)...),
		Beats:      beatmap.New(0, 10, 20),
		SampleRate: 10,
	}

	ducked := s.Sidechain([]float64{0, 0.5}, 0, 0)
	if d := ducked.Audio.Data; d[0][0] != 0 || d[0][1] != 0.5 || d[1][10] != 0 || d[1][11] != 0.5 || d[0][2] != 1 {
		t.Errorf("Sidechain() = %v", ducked.Audio.Data)
	}

	added := s.BeatSample(audio.FromChannels([]float64{1, 2}), 0.5)
	if d := added.Audio.Data; d[0][5] != 2 || d[1][6] != 3 || d[0][15] != 2 || d[0][0] != 1 {
		t.Errorf("BeatSample() = %v", added.Audio.Data)
	}

	if s.Audio.Data[0][0] != 1 || s.Audio.Data[0][5] != 1 {
		t.Error("compositors modified the receiver")
	}
}
