// SPDX-License-Identifier: EPL-2.0

// Package pattern parses beat rearrangement patterns.
//
// A pattern is a list of tokens separated by a separator (comma by
// default). Each token selects a span of beats and may carry effect
// suffixes:
//
//	1,3,2,4        play beats 1, 3, 2, 4 of every four-beat period
//	0:1.5          from the start of beat 0 to the middle of beat 1
//	r1v0.5         beat 1 reversed at half volume
//	!2             skipped
//	random         random beats
//	reverse        all beats back to front
//
// Beat positions and suffix arguments are small arithmetic expressions over
// decimal numbers with + - / and %. Parse evaluates every one of them up
// front so a bad pattern fails before any audio is touched.
package pattern
