// SPDX-License-Identifier: EPL-2.0

// Package assemble builds new audio from beat-sized segments of a song.
//
// Planning walks the beatmap once per period, resolving each pattern token
// to a pair of fractional sample positions. Segments are then cut and run
// through their effect chains in parallel, each into its own slot, and
// finally stitched together in plan order with short linear crossfades.
//
//	p, _ := pattern.Parse("1, 3, 2, 4", "")
//	out, err := assemble.Assemble(ctx, song, beats, p, assemble.DefaultOptions())
package assemble
