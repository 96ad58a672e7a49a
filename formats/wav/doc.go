// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// Decoding goes through github.com/go-audio/wav and accepts 8, 16, 24 and
// 32-bit integer PCM with any channel count:
//
//	f, _ := os.Open("song.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	buf, err := audio.ReadAll(src)
//
// Two writers are provided. Encode streams an audio.Source through the
// go-audio encoder and needs an io.WriteSeeker:
//
//	out, _ := os.Create("out.wav")
//	err := wav.Encode(out, buf.Source(44100), 24)
//
// WritePCM16 writes a whole buffer as 16-bit PCM to any io.Writer, which
// is what the HTTP handlers use:
//
//	err := wav.WritePCM16(w, buf, 44100)
package wav
