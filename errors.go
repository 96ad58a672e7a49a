// SPDX-License-Identifier: EPL-2.0

package beatswap

import "errors"

var (
	// ErrNoBeats is returned when an operation needs a beatmap and neither
	// the song nor the options provide one.
	ErrNoBeats = errors.New("song has no beatmap and no tracker was given")

	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
