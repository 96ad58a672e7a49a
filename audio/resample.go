// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/beatswap/utils"

// Resample converts b from srcRate to dstRate with cubic interpolation,
// preserving the channel count. Matching or invalid rates return a copy.
func (b Buffer) Resample(srcRate, dstRate int) Buffer {
	n := b.Len()
	if srcRate <= 0 || dstRate <= 0 || srcRate == dstRate || n == 0 {
		return b.Clone()
	}

	// source samples per output sample
	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(int64(n) * int64(dstRate) / int64(srcRate))
	out := NewBuffer(b.Channels(), outLen)

	at := func(ch []float64, i int) float64 {
		return ch[min(max(i, 0), n-1)]
	}

	for i := range outLen {
		pos := float64(i) * ratio
		idx := int(pos)
		x := pos - float64(idx)
		for c, ch := range b.Data {
			out.Data[c][i] = utils.CubicInterpolate(at(ch, idx-1), at(ch, idx), at(ch, idx+1), at(ch, idx+2), x)
		}
	}

	return out
}
