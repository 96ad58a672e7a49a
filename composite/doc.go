// SPDX-License-Identifier: EPL-2.0

// Package composite layers material onto a song at its beat boundaries.
//
// BeatSample mixes a sample in at every beat. Sidechain multiplies the
// song by a ducking envelope at every beat, the classic pumping effect.
// Both work in place on the buffer they are given.
package composite
