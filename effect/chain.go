// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"
	"math"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/pattern"
)

// Defaults for suffixes written without an argument.
const (
	DefaultVolume     = 0.0
	DefaultExponent   = 2.0
	DefaultSpeed      = 2.0
	DefaultBitcrush   = 3.0
	DefaultDownsample = 3.0
)

// Step is one effect in a chain.
type Step struct {
	Name  string
	Apply func(audio.Buffer) audio.Buffer
}

// Chain is the ordered list of effects a token asks for. Steps run in the
// fixed order c, v, t, s, b, d followed by an optional reverse.
type Chain struct {
	Steps   []Step
	Reverse bool
}

// FromToken builds the chain for tok.
func FromToken(tok pattern.Token) (Chain, error) {
	var ch Chain

	if arg, ok := tok.Suffix('c'); ok {
		if arg == "" {
			ch.Steps = append(ch.Steps, Step{Name: "swap", Apply: SwapChannels})
		} else {
			v, _, err := tok.Arg('c', 0)
			if err != nil {
				return Chain{}, err
			}
			target := 1
			if v == 0 {
				target = 0
			}
			ch.Steps = append(ch.Steps, Step{
				Name:  fmt.Sprintf("zero%d", target),
				Apply: func(b audio.Buffer) audio.Buffer { return ZeroChannel(b, target) },
			})
		}
	}

	numeric := []struct {
		letter byte
		def    float64
		name   string
		fn     func(audio.Buffer, float64) audio.Buffer
	}{
		{'v', DefaultVolume, "volume", Volume},
		{'t', DefaultExponent, "exponent", Exponent},
		{'s', DefaultSpeed, "speed", Speed},
		{'b', DefaultBitcrush, "bitcrush", Bitcrush},
		{'d', DefaultDownsample, "downsample", func(b audio.Buffer, z float64) audio.Buffer {
			return Downsample(b, int(math.Trunc(z)))
		}},
	}

	for _, n := range numeric {
		v, ok, err := tok.Arg(n.letter, n.def)
		if err != nil {
			return Chain{}, err
		}
		if !ok {
			continue
		}

		fn := n.fn
		ch.Steps = append(ch.Steps, Step{
			Name:  fmt.Sprintf("%s(%g)", n.name, v),
			Apply: func(b audio.Buffer) audio.Buffer { return fn(b, v) },
		})
	}

	ch.Reverse = tok.Reversed()

	return ch, nil
}

// Apply runs the chain on seg and returns a new buffer; seg is not
// modified. The segment is reversed when exactly one of the token's own
// reverse flag and implicitReverse is set.
func (c Chain) Apply(seg audio.Buffer, implicitReverse bool) audio.Buffer {
	out := seg
	for _, s := range c.Steps {
		out = s.Apply(out)
	}

	if c.Reverse != implicitReverse {
		return Reverse(out)
	}
	if len(c.Steps) == 0 {
		return seg.Clone()
	}

	return out
}
