// SPDX-License-Identifier: EPL-2.0

package beatmap

import "math"

// NoEnd disables the end bound of Trim.
const NoEnd = -1

// Scale resamples the boundaries at positions 0, f, 2f, ... while the
// position stays below Len()-ceil(f), interpolating linearly between the
// two surrounding boundaries. f == 1 and non-positive f return m unchanged.
func (m BeatMap) Scale(f float64) BeatMap {
	if f == 1 || f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return m
	}

	limit := float64(len(m.b)) - math.Ceil(f)
	out := make([]int, 0, max(int(limit/f)+1, 0))
	for k := 0; ; k++ {
		a := float64(k) * f
		if a >= limit {
			break
		}

		lo := int(math.Floor(a))
		hi := int(math.Ceil(a))
		frac := a - float64(lo)
		out = append(out, truncate((1-frac)*float64(m.b[lo])+frac*float64(m.b[hi])))
	}

	return BeatMap{b: out}
}

// Shift moves each boundary a fraction of the way toward a neighbour.
// Positive amounts walk left to right pulling b[i] toward b[i+1]; negative
// amounts walk right to left pulling b[i+1] toward b[i].
func (m BeatMap) Shift(amount float64) BeatMap {
	out := m.Values()
	n := len(out)
	if amount == 0 || n < 2 {
		return BeatMap{b: out}
	}

	if amount > 0 {
		for i := 0; i < n-1; i++ {
			out[i] = truncate(float64(out[i]) + amount*float64(out[i+1]-out[i]))
		}
	} else {
		for i := n - 2; i >= 0; i-- {
			out[i+1] = truncate(float64(out[i+1]) - amount*float64(out[i]-out[i+1]))
		}
	}

	return BeatMap{b: out}
}

// Trim keeps boundaries at or after start seconds and, unless end is NoEnd
// (any negative value), at or before end. start is converted with
// sampleRate while end is already a sample index.
func (m BeatMap) Trim(start float64, end int, sampleRate int) BeatMap {
	from := start * float64(sampleRate)

	out := make([]int, 0, len(m.b))
	for _, v := range m.b {
		if float64(v) < from {
			continue
		}
		if end >= 0 && v > end {
			continue
		}
		out = append(out, v)
	}

	return BeatMap{b: out}
}

// AutoInsert prepends boundaries spaced by the first gap until the lead-in
// before the first boundary is shorter than that gap.
func (m BeatMap) AutoInsert() BeatMap {
	if len(m.b) < 2 {
		return m
	}

	gap := m.b[1] - m.b[0]
	if gap <= 0 || gap >= m.b[0] {
		return m
	}

	var head []int
	for first := m.b[0]; gap < first; {
		first -= gap
		head = append(head, first)
	}

	out := make([]int, 0, len(head)+len(m.b))
	for i := len(head) - 1; i >= 0; i-- {
		out = append(out, head[i])
	}
	out = append(out, m.b...)

	return BeatMap{b: out}
}

// AutoScaleFactor picks the Scale factor AutoScale applies from the mean
// beat length in samples. Long beats are split and short ones merged; the
// first matching bound wins, so every mean at or under 20000 doubles.
func (m BeatMap) AutoScaleFactor() float64 {
	if len(m.b) < 2 {
		return 1
	}

	mean := m.MeanGap()
	switch {
	case mean >= 160000:
		return 1.0 / 8
	case mean >= 80000:
		return 1.0 / 4
	case mean >= 40000:
		return 1.0 / 2
	case mean <= 20000:
		return 2
	}

	return 1
}

// AutoScale applies Scale(AutoScaleFactor()).
func (m BeatMap) AutoScale() BeatMap {
	return m.Scale(m.AutoScaleFactor())
}
