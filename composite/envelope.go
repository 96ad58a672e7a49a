// SPDX-License-Identifier: EPL-2.0

package composite

import (
	"math"

	"github.com/ik5/beatswap/utils"
)

// EnvelopeConfig shapes a ducking envelope.
type EnvelopeConfig struct {
	SampleRate int
	// Length of the release in seconds.
	Length float64
	// Curve is the exponent applied to the release ramp.
	Curve float64
	// Vol0 and Vol1 are the gain at the start and end of the release.
	Vol0, Vol1 float64
	// Smoothing is the length in samples of the fade from 1 to 0 before
	// the release.
	Smoothing int
}

// DefaultEnvelope is a half second squared release after a 40 sample dip.
func DefaultEnvelope() EnvelopeConfig {
	return EnvelopeConfig{
		SampleRate: 44100,
		Length:     0.5,
		Curve:      2,
		Vol0:       0,
		Vol1:       1,
		Smoothing:  40,
	}
}

// Envelope renders cfg: a linear fade from 1 to 0 over Smoothing samples
// followed by linspace(Vol0, Vol1, Length*SampleRate) raised to Curve.
func Envelope(cfg EnvelopeConfig) []float64 {
	release := utils.Linspace(cfg.Vol0, cfg.Vol1, int(cfg.Length*float64(cfg.SampleRate)))
	for i, v := range release {
		release[i] = math.Pow(v, cfg.Curve)
	}

	return append(utils.Linspace(1, 0, cfg.Smoothing), release...)
}
