// SPDX-License-Identifier: EPL-2.0

// Package beatswap rearranges songs by beat.
//
// A Song bundles decoded audio, its beat boundaries and its sample rate.
// Every method returns a new Song, so intermediate results can be kept and
// compared:
//
//	song, err := beatswap.Load(nil, "track.mp3")
//	song, err = song.Detect(ctx, beattrack.NewFlux())
//	swapped, err := song.Beatswap(ctx, "1, 3, 2, 4", ",", assemble.DefaultOptions())
//	err = swapped.Save("track_swapped.wav", 16)
//
// # Pattern Language
//
// A pattern is a list of tokens separated by a separator (comma by
// default). Each token selects a beat by number, optionally a fraction of
// it, and applies effects to it:
//
//	1, 3, 2, 4       swap the 2nd and 3rd beat of every four
//	1, 2, 3, 4r      play the 4th beat backwards
//	1:0.5, 1:0.5     play the first half of the first beat twice
//	1, 2v0.5, 3, !4  halve the 2nd beat's volume, skip the 4th
//	random           shuffle all beats
//	reverse          play beats in reverse order
//
// Suffix letters: c (channels), v (volume), t (exponent), s (speed),
// b (bitcrush), d (downsample), r (reverse). See the pattern and effect
// packages for the details.
//
// # Beats
//
// Beatmaps come from a beattrack.Tracker and may be cached on disk with
// beattrack.Cached. They are adjusted with beatmap operations (scale,
// shift, trim, autoscale, autoinsert) through Song.Transform.
//
// # Quick Pipelines
//
// Quick runs the usual sequence in one call: detect beats, trim leading
// silence, adjust the beatmap, apply one operation and write the result:
//
//	q := beatswap.DefaultQuickOptions()
//	q.Tracker = beattrack.NewFlux()
//	q.Write = true
//	out, path, err := beatswap.Quick(ctx, song, beatswap.SwapOp("1,3,2,4", ",", assemble.DefaultOptions()), q)
//
// # Formats
//
// Input is decoded by the formats registry (WAV, MP3, Ogg Vorbis, AIFF).
// Output is always WAV.
package beatswap
