// SPDX-License-Identifier: EPL-2.0

package assemble

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/internal/audiotest"
	"github.com/ik5/beatswap/pattern"
)

func mustParse(t testing.TB, s string) *pattern.Pattern {
	t.Helper()

	p, err := pattern.Parse(s, "")
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", s, err)
	}
	return p
}

func seq(ranges ...[2]int) []float64 {
	var out []float64
	for _, r := range ranges {
		if r[0] <= r[1] {
			for i := r[0]; i < r[1]; i++ {
				out = append(out, float64(i))
			}
		} else {
			for i := r[0] - 1; i >= r[1]; i-- {
				out = append(out, float64(i))
			}
		}
	}
	return out
}

func TestAssemble_Patterns(t *testing.T) {
	t.Parallel()

	buf := audio.FromChannels(audiotest.Ramp(1, 16)...)
	bm := beatmap.New(0, 4, 8, 12)

	tests := []struct {
		name    string
		pattern string
		bm      beatmap.BeatMap
		want    []float64
	}{
		{name: "identity", pattern: "0:1", bm: bm, want: seq([2]int{0, 16})},
		{name: "each beat reversed", pattern: "r0:1", bm: bm,
			want: seq([2]int{4, 0}, [2]int{8, 4}, [2]int{12, 8}, [2]int{16, 12})},
		{name: "inverted range reverses", pattern: "1:0", bm: bm,
			want: seq([2]int{4, 0}, [2]int{8, 4}, [2]int{12, 8}, [2]int{16, 12})},
		{name: "double reverse cancels", pattern: "r1:0", bm: bm, want: seq([2]int{0, 16})},
		{name: "swap middle beats", pattern: "1,3,2,4", bm: bm,
			want: seq([2]int{0, 4}, [2]int{8, 12}, [2]int{4, 8}, [2]int{12, 16})},
		{name: "first half of each beat", pattern: "0:0.5", bm: bm,
			want: seq([2]int{0, 2}, [2]int{4, 6}, [2]int{8, 10}, [2]int{12, 14})},
		{name: "skipped token", pattern: "!1,2", bm: bm, want: seq([2]int{4, 8}, [2]int{12, 16})},
		{name: "out of range token", pattern: "5", bm: bm, want: nil},
		{name: "lead-in kept", pattern: "0:1", bm: beatmap.New(4, 8, 12), want: seq([2]int{0, 16})},
		{name: "reverse mode", pattern: "reverse", bm: bm,
			want: seq([2]int{12, 16}, [2]int{8, 12}, [2]int{4, 8}, [2]int{0, 4})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := Options{Smoothing: 0}
			got, err := Assemble(context.Background(), buf, tt.bm, mustParse(t, tt.pattern), opts)
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			if got.Channels() != 1 {
				t.Fatalf("Assemble() channels = %d", got.Channels())
			}
			if !slices.Equal(got.Data[0], tt.want) && !(len(tt.want) == 0 && got.Len() == 0) {
				t.Errorf("Assemble(%q) = %v, want %v", tt.pattern, got.Data[0], tt.want)
			}
		})
	}
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	buf := audio.FromChannels(audiotest.Ramp(2, 16)...)
	want := buf.Clone()

	if _, err := Assemble(context.Background(), buf, beatmap.New(0, 4, 8, 12), mustParse(t, "r0:1v0.5c"), DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if !audiotest.Equal(buf.Data, want.Data, 0) {
		t.Error("Assemble() mutated its input buffer")
	}
}

func TestAssemble_ZeroLeftChannel(t *testing.T) {
	t.Parallel()

	buf := audio.FromChannels(audiotest.Ramp(2, 16)...)
	got, err := Assemble(context.Background(), buf, beatmap.New(0, 4, 8, 12), mustParse(t, "0:1c0"), Options{})
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range got.Data[0] {
		if v != 0 {
			t.Fatalf("channel 0 [%d] = %v, want 0", i, v)
		}
	}
	if !slices.Equal(got.Data[1], buf.Data[1]) {
		t.Errorf("channel 1 = %v, want untouched %v", got.Data[1], buf.Data[1])
	}
}

func TestAssemble_Smoothing(t *testing.T) {
	t.Parallel()

	buf := audio.FromChannels(audiotest.Ramp(1, 16)...)
	bm := beatmap.New(0, 4, 8, 12)

	tests := []struct {
		name string
		mode SmoothingMode
		want []float64
	}{
		{
			name: "replace trims tails",
			mode: Replace,
			want: []float64{0, 1, 1, 4, 4, 5, 5, 8, 8, 9, 9, 12, 12, 13},
		},
		{
			name: "add keeps segments whole",
			mode: Add,
			want: []float64{0, 1, 2, 3, 3, 4, 4, 5, 6, 7, 7, 8, 8, 9, 10, 11, 11, 12, 12, 13, 14, 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Assemble(context.Background(), buf, bm, mustParse(t, "0:1"), Options{Smoothing: 2, Mode: tt.mode})
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got.Data[0], tt.want) {
				t.Errorf("Assemble() = %v, want %v", got.Data[0], tt.want)
			}
		})
	}
}

func TestAssemble_RampValues(t *testing.T) {
	t.Parallel()

	// beat 1 then beat 0: ramp runs from 7 down to 0 over 5 samples
	buf := audio.FromChannels(audiotest.Ramp(1, 8)...)
	got, err := Assemble(context.Background(), buf, beatmap.New(0, 4), mustParse(t, "2,1"), Options{Smoothing: 5, Mode: Add})
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{4, 5, 6, 7, 7, 5.25, 3.5, 1.75, 0, 0, 1, 2, 3}
	if !slices.Equal(got.Data[0], want) {
		t.Errorf("Assemble() = %v, want %v", got.Data[0], want)
	}
}

func TestAssemble_RandomSeeded(t *testing.T) {
	t.Parallel()

	buf := audio.FromChannels(audiotest.Ramp(1, 16)...)
	bm := beatmap.New(0, 4, 8, 12)

	run := func() []float64 {
		opts := Options{Rand: rand.New(rand.NewPCG(1, 2))}
		got, err := Assemble(context.Background(), buf, bm, mustParse(t, "random"), opts)
		if err != nil {
			t.Fatal(err)
		}
		return got.Data[0]
	}

	first := run()
	if len(first) != 20 {
		t.Fatalf("random output len = %d, want 5 beats of 4", len(first))
	}
	for i := 0; i < len(first); i += 4 {
		b := first[i]
		if int(b)%4 != 0 || !slices.Equal(first[i:i+4], []float64{b, b + 1, b + 2, b + 3}) {
			t.Errorf("block %d = %v, want a whole beat", i/4, first[i:i+4])
		}
	}

	if second := run(); !slices.Equal(first, second) {
		t.Errorf("same seed produced %v then %v", first, second)
	}
}

func TestAssemble_ExtremeSpeed(t *testing.T) {
	t.Parallel()

	buf := audio.FromChannels(audiotest.Ramp(1, 16)...)
	bm := beatmap.New(0, 4, 8, 12)

	fast, err := Assemble(context.Background(), buf, bm, mustParse(t, "0:1s99999999999999999999"), Options{})
	if err != nil {
		t.Fatalf("Assemble(fast) error = %v", err)
	}
	if want := []float64{0, 4, 8, 12}; !slices.Equal(fast.Data[0], want) {
		t.Errorf("Assemble(fast) = %v, want %v", fast.Data[0], want)
	}

	slow, err := Assemble(context.Background(), buf, bm, mustParse(t, "0:1s1/99999999999999999999"), Options{})
	if err != nil {
		t.Fatalf("Assemble(slow) error = %v", err)
	}
	if slow.Len() <= buf.Len() {
		t.Errorf("Assemble(slow) len = %d, want longer than %d", slow.Len(), buf.Len())
	}
	if slow.Data[0][0] != 0 || slow.Data[0][slow.Len()-1] != 15 {
		t.Errorf("Assemble(slow) ends = %v, %v, want 0, 15", slow.Data[0][0], slow.Data[0][slow.Len()-1])
	}
}

func TestAssemble_Empty(t *testing.T) {
	t.Parallel()

	p := mustParse(t, "0:1")

	got, err := Assemble(context.Background(), audio.NewBuffer(2, 0), beatmap.New(0, 4), p, DefaultOptions())
	if err != nil || !got.Empty() || got.Channels() != 2 {
		t.Errorf("empty buffer: got %d ch x %d, err %v", got.Channels(), got.Len(), err)
	}

	got, err = Assemble(context.Background(), audio.NewBuffer(2, 16), beatmap.BeatMap{}, p, DefaultOptions())
	if err != nil || !got.Empty() {
		t.Errorf("empty beatmap: got %d frames, err %v", got.Len(), err)
	}
}

func TestAssemble_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Assemble(ctx, audio.NewBuffer(1, 16), beatmap.New(0, 4), mustParse(t, "0:1"), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Assemble() error = %v, want context.Canceled", err)
	}
}

func TestAssemble_UnvalidatedPattern(t *testing.T) {
	t.Parallel()

	p := &pattern.Pattern{Size: 1, Tokens: []pattern.Token{{Raw: "1/0"}}}
	_, err := Assemble(context.Background(), audio.NewBuffer(1, 16), beatmap.New(0, 4), p, DefaultOptions())
	if !errors.Is(err, pattern.ErrSyntax) {
		t.Errorf("Assemble() error = %v, want pattern.ErrSyntax", err)
	}
}

func TestParseSmoothingMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]SmoothingMode{"": Replace, "replace": Replace, "add": Add} {
		got, ok := ParseSmoothingMode(in)
		if !ok || got != want {
			t.Errorf("ParseSmoothingMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseSmoothingMode("blend"); ok {
		t.Error("ParseSmoothingMode(blend) ok = true")
	}
}

func BenchmarkAssemble(b *testing.B) {
	const beat = 22050
	buf := audio.FromChannels(audiotest.Constant(2, beat*64, 0.25)...)
	bounds := make([]int, 64)
	for i := range bounds {
		bounds[i] = i * beat
	}
	bm := beatmap.New(bounds...)
	p := mustParse(b, "1, 3v0.5, 2r, 4s2")

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Assemble(context.Background(), buf, bm, p, DefaultOptions())
	}
}
