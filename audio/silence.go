// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// SilenceThreshold is the magnitude below which a sample counts as silent.
const SilenceThreshold = 0.0001

// LeadingSilence returns how many frames at the start of channel 0 have a
// magnitude below threshold. An all-silent buffer returns Len().
func (b Buffer) LeadingSilence(threshold float64) int {
	if b.Channels() == 0 {
		return 0
	}

	// Magnitude, not sign: a negative onset ends the lead too.
	for i, v := range b.Data[0] {
		if math.Abs(v) >= threshold {
			return i
		}
	}

	return b.Len()
}
