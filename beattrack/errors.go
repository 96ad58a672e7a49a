// SPDX-License-Identifier: EPL-2.0

package beattrack

import "errors"

var (
	// ErrTooShort is returned when the audio cannot hold a single beat.
	ErrTooShort = errors.New("audio too short for beat tracking")

	ErrUnknownTracker = errors.New("unknown tracker")
	ErrInvalidSplit   = errors.New("split count must be positive")
)
