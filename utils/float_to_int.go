// SPDX-License-Identifier: EPL-2.0

package utils

// Float64ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float64ToInt16(x float64) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// FullScale returns the magnitude that maps to 1.0 for signed PCM at the
// given bit depth. Unknown depths are treated as 16-bit.
func FullScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// PCMToFloat64 converts a signed integer sample at bitDepth to [-1, 1).
func PCMToFloat64(v int, bitDepth int) float64 {
	return float64(v) / FullScale(bitDepth)
}

// Float64ToPCM converts x to a signed integer sample at bitDepth, clamping
// to the representable range.
func Float64ToPCM(x float64, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int(x * (FullScale(bitDepth) - 1))
}
