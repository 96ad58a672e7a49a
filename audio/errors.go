// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrInvalidDstSize is returned by ReadSamples when dst does not hold
	// whole frames.
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	// ErrNoChannels is returned by ReadAll for a source without channels.
	ErrNoChannels      = errors.New("source reports no channels")
	ErrChannelMismatch = errors.New("channel count mismatch")
	// ErrUnknownFormat is returned when no decoder is registered for a
	// format name or extension.
	ErrUnknownFormat = errors.New("no decoder registered for format")
)
