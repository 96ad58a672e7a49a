// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestBuffer_Resample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src, dst int
		frames   int
		wantLen  int
	}{
		{name: "same rate", src: 44100, dst: 44100, frames: 1000, wantLen: 1000},
		{name: "downsample", src: 44100, dst: 22050, frames: 44100, wantLen: 22050},
		{name: "upsample", src: 8000, dst: 16000, frames: 8000, wantLen: 16000},
		{name: "invalid rate", src: 0, dst: 16000, frames: 10, wantLen: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := NewBuffer(2, tt.frames)
			got := buf.Resample(tt.src, tt.dst)
			if got.Len() != tt.wantLen || got.Channels() != 2 {
				t.Errorf("Resample() = %d ch x %d, want 2 x %d", got.Channels(), got.Len(), tt.wantLen)
			}
		})
	}
}

func TestBuffer_ResampleKeepsShape(t *testing.T) {
	t.Parallel()

	// a slow ramp survives resampling almost unchanged
	n := 1000
	ramp := make([]float64, n)
	for i := range ramp {
		ramp[i] = float64(i) / float64(n)
	}

	got := FromChannels(ramp).Resample(1000, 500)
	for i := 1; i < got.Len()-2; i++ {
		want := float64(2*i) / float64(n)
		if math.Abs(got.Data[0][i]-want) > 1e-9 {
			t.Fatalf("Resample()[%d] = %v, want %v", i, got.Data[0][i], want)
		}
	}
}
