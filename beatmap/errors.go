// SPDX-License-Identifier: EPL-2.0

package beatmap

import "errors"

var (
	// ErrInvalidBeatmap is returned when beatmap text cannot be parsed.
	ErrInvalidBeatmap = errors.New("invalid beatmap")

	// ErrInvalidParam is returned by Transform for out-of-domain parameters.
	ErrInvalidParam = errors.New("invalid transform parameter")

	// ErrNotCached is returned by Cache.Load on a miss.
	ErrNotCached = errors.New("beatmap not cached")
)
