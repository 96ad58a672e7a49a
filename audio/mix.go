// SPDX-License-Identifier: EPL-2.0

package audio

// Mono averages all channels into one.
func (b Buffer) Mono() Buffer {
	channels := b.Channels()
	if channels <= 1 {
		return b.Clone()
	}

	n := b.Len()
	out := make([]float64, n)
	inv := 1.0 / float64(channels)

	// Stereo is by far the common case.
	if channels == 2 {
		l, r := b.Data[0], b.Data[1]
		for i := range out {
			out[i] = (l[i] + r[i]) * 0.5
		}
		return FromChannels(out)
	}

	for i := range out {
		sum := 0.0
		for c := range channels {
			sum += b.Data[c][i]
		}
		out[i] = sum * inv
	}

	return FromChannels(out)
}

// Stereo duplicates a mono buffer, copies a stereo one and folds wider
// layouts by averaging even channels into the left and odd into the right.
func (b Buffer) Stereo() Buffer {
	switch b.Channels() {
	case 0:
		return NewBuffer(2, 0)
	case 1:
		return FromChannels(append([]float64(nil), b.Data[0]...), append([]float64(nil), b.Data[0]...))
	case 2:
		return b.Clone()
	}

	n := b.Len()
	left, right := make([]float64, n), make([]float64, n)
	var nl, nr float64
	for c, ch := range b.Data {
		dst := left
		if c%2 == 1 {
			dst = right
			nr++
		} else {
			nl++
		}
		for i, v := range ch {
			dst[i] += v
		}
	}
	for i := range n {
		left[i] /= nl
		right[i] /= nr
	}

	return FromChannels(left, right)
}

// WithChannels converts b to 1 or 2 channels. Other counts return a copy.
func (b Buffer) WithChannels(channels int) Buffer {
	switch {
	case channels == b.Channels():
		return b.Clone()
	case channels == 1:
		return b.Mono()
	case channels == 2:
		return b.Stereo()
	default:
		return b.Clone()
	}
}
