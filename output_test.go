// SPDX-License-Identifier: EPL-2.0

package beatswap

import "testing"

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, output, input, suffix string
		want                        string
	}{
		{name: "directory prefix", output: "out/", input: "/music/track.mp3", suffix: SuffixBeatSwap, want: "out/track_BeatSwap.wav"},
		{name: "empty output", output: "", input: "track.flac", suffix: SuffixSidechain, want: "track_Sidechain.wav"},
		{name: "plain prefix", output: "new-", input: "a/b.ogg", suffix: SuffixBeatSample, want: "new-b_BeatSample.wav"},
		{name: "audio file output", output: "mix/final.mp3", input: "track.wav", suffix: SuffixBeatSwap, want: "mix/final.wav"},
		{name: "upper case extension", output: "FINAL.WAV", input: "track.wav", suffix: SuffixBeatSwap, want: "FINAL.wav"},
		{name: "unknown extension is a prefix", output: "take.1", input: "song.wav", suffix: SuffixBeatSwap, want: "take.1song_BeatSwap.wav"},
		{name: "stream input", output: "", input: "", suffix: SuffixBeatSwap, want: "stream_BeatSwap.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := OutputName(tt.output, tt.input, tt.suffix); got != tt.want {
				t.Errorf("OutputName(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.suffix, got, tt.want)
			}
		})
	}
}
