// SPDX-License-Identifier: EPL-2.0

package beatmap

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// BeatMap is an immutable ordered list of beat boundary sample indices.
// The zero value is an empty beatmap.
type BeatMap struct {
	b []int
}

// New copies indices into a BeatMap.
func New(indices ...int) BeatMap {
	return BeatMap{b: slices.Clone(indices)}
}

// FromFloats truncates fractional positions toward zero.
func FromFloats(v []float64) BeatMap {
	b := make([]int, len(v))
	for i, x := range v {
		b[i] = int(x)
	}

	return BeatMap{b: b}
}

func (m BeatMap) Len() int { return len(m.b) }

func (m BeatMap) At(i int) int { return m.b[i] }

// Values returns a copy of the boundaries.
func (m BeatMap) Values() []int { return slices.Clone(m.b) }

// Equal reports whether both maps hold the same boundaries.
func (m BeatMap) Equal(o BeatMap) bool { return slices.Equal(m.b, o.b) }

// MeanGap is the average distance between consecutive boundaries, or 0
// with fewer than two.
func (m BeatMap) MeanGap() float64 {
	n := len(m.b)
	if n < 2 {
		return 0
	}

	return float64(m.b[n-1]-m.b[0]) / float64(n-1)
}

func (m BeatMap) String() string {
	parts := make([]string, len(m.b))
	for i, v := range m.b {
		parts[i] = strconv.Itoa(v)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// Normalize prepares a beatmap for assembly against a buffer of length
// frames: absolute values, indices past the end dropped, the buffer end
// appended, sorted ascending without duplicates.
func (m BeatMap) Normalize(length int) BeatMap {
	out := make([]int, 0, len(m.b)+1)
	for _, v := range m.b {
		if v < 0 {
			v = -v
		}
		if v <= length {
			out = append(out, v)
		}
	}
	out = append(out, length)
	slices.Sort(out)

	return BeatMap{b: slices.Compact(out)}
}

// Sub moves every boundary n samples earlier, folding negatives to their
// absolute value. It follows a trim of n leading samples from the audio.
func (m BeatMap) Sub(n int) BeatMap {
	out := make([]int, len(m.b))
	for i, v := range m.b {
		d := v - n
		if d < 0 {
			d = -d
		}
		out[i] = d
	}

	return BeatMap{b: out}
}

// truncate mirrors storing a float into an integer index.
func truncate(x float64) int {
	return int(math.Trunc(x))
}
