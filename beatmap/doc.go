// SPDX-License-Identifier: EPL-2.0

// Package beatmap holds the ordered beat boundaries of a song and the
// transforms that reshape them.
//
// A BeatMap is an immutable sequence of sample indices. Every transform
// returns a new value, so a caller can keep the original around instead of
// saving and restoring it:
//
//	bm := beatmap.New(0, 22050, 44100, 66150)
//	half, _ := beatmap.Transform(bm, beatmap.ScaleOp{Factor: 0.5})
//	// bm is unchanged, half has a boundary every quarter second
//
// # Transforms
//
//   - Scale resamples the boundaries at a fractional step, interpolating
//     between neighbours. Factors below 1 subdivide beats, above 1 merge them.
//   - Shift moves every boundary a fraction of the way toward a neighbour.
//   - Trim drops boundaries before a start time (seconds) and, optionally,
//     after an end index (samples). The units differ on purpose.
//   - AutoInsert extrapolates boundaries backwards to cover a lead-in.
//   - AutoScale picks a Scale factor from the mean beat length.
//
// # Interchange
//
// Decode and Encode read and write the plain text format: whitespace
// separated decimal integers, one per line when written. Cache stores that
// format on disk keyed by file name, tracker and audio length.
package beatmap
