// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Ramp returns channel data where sample i of channel c is i + 1000*c.
// Segment positions can be read straight off the values.
func Ramp(channels, length int) [][]float64 {
	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, length)
		for i := range data[c] {
			data[c][i] = float64(i + 1000*c)
		}
	}

	return data
}

// Constant returns channel data filled with v.
func Constant(channels, length int, v float64) [][]float64 {
	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, length)
		for i := range data[c] {
			data[c][i] = v
		}
	}

	return data
}

// Clicks returns mono data of the given length with a decaying burst at
// every period samples, starting at offset.
func Clicks(length, offset, period, burst int) []float64 {
	out := make([]float64, length)
	for start := offset; start < length; start += period {
		for i := 0; i < burst && start+i < length; i++ {
			out[start+i] = float64(1-2*(i%2)) * math.Exp(-float64(i)/float64(burst)*4)
		}
	}

	return out
}

// Equal reports whether a and b hold the same samples within tol.
func Equal(a, b [][]float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for c := range a {
		if len(a[c]) != len(b[c]) {
			return false
		}
		for i := range a[c] {
			if math.Abs(a[c][i]-b[c][i]) > tol {
				return false
			}
		}
	}

	return true
}
