// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample containers shared by every other package.
//
// # Streams and Buffers
//
// Decoders produce a Source, an interleaved float32 stream:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is drained; it may return
// samples together with io.EOF. Sources that know their length up front
// also implement Sizer.
//
// Beat editing needs random access, so ReadAll drains a Source into a
// Buffer: one []float64 per channel, all the same length. Buffer.Source
// turns a buffer back into a stream for encoders.
//
//	buf, err := audio.ReadAll(src)
//	if err != nil {
//	    return err
//	}
//	mono := buf.Mono()
//	lead := buf.LeadingSilence(audio.SilenceThreshold)
//
// Buffer methods return new buffers and leave the receiver alone, except
// AppendBuffer which grows it.
//
// # Format Registry
//
// A Registry maps format names and file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.Lookup("song.WAV")
//
// Samples are normalized to [-1, 1].
package audio
