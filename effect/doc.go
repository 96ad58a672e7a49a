// SPDX-License-Identifier: EPL-2.0

// Package effect applies the per-beat effects requested by pattern token
// suffixes.
//
//	c      swap channels       c0  silence channel 0   c1  silence channel 1
//	v0.5   volume              t2  exponent 1/2 on magnitudes
//	s2     play faster         s0.5 play slower
//	b3     bitcrush            d3  downsample
//	r      reverse
//
// Every function returns a new buffer.
package effect
