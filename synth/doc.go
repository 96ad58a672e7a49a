// SPDX-License-Identifier: EPL-2.0

// Package synth generates short test tones as beep streamers and renders
// them into audio.Buffer values that can be laid over beats.
//
//	buf, err := synth.ParseTone("sine:440:0.1", 44100)
//	song, err = song.BeatSample(buf, 0)
package synth
