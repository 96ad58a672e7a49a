// SPDX-License-Identifier: EPL-2.0

// Package beattrack finds beat boundaries in an audio.Buffer.
//
// Split cuts the audio into equal parts. Flux estimates the tempo from a
// spectral flux onset envelope and follows the onsets beat by beat.
// Cached puts a beatmap.Cache in front of any Tracker.
package beattrack
