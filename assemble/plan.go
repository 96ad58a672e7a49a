// SPDX-License-Identifier: EPL-2.0

package assemble

import (
	"log/slog"
	"math"
	"strings"

	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/effect"
	"github.com/ik5/beatswap/pattern"
)

// segment is one planned piece of output, in fractional sample positions.
type segment struct {
	start, end      float64
	chain           effect.Chain
	implicitReverse bool
}

// position resolves beat value v in period j. Out-of-range lookups report
// false. The following boundary is only read for fractional values.
func position(bm beatmap.BeatMap, v float64, j, size int) (float64, bool) {
	fl := math.Floor(v)
	idx := int(fl) + j*size
	if idx < 0 || idx >= bm.Len() {
		return 0, false
	}

	pos := float64(bm.At(idx))
	if frac := v - fl; frac > 0 {
		if idx+1 >= bm.Len() {
			return 0, false
		}
		pos += frac * float64(bm.At(idx+1)-bm.At(idx))
	}

	return pos, true
}

// resolve scans a selector token for period j. ok is false when the token
// yields nothing or indexes outside the beatmap.
func resolve(tok pattern.Token, bm beatmap.BeatMap, j, size int) (seg segment, ok bool, err error) {
	raw := tok.Raw

	var (
		buf      strings.Builder
		start    float64
		hasStart bool
	)

	eval := func() (float64, error) {
		expr := buf.String()
		buf.Reset()

		v, err := pattern.Eval(expr)
		if err != nil {
			return 0, &pattern.SyntaxError{Token: raw, Expr: expr, Err: err}
		}
		return v, nil
	}

	for i := range len(raw) {
		c := raw[i]
		numeric := pattern.IsNumeric(c)

		if numeric {
			buf.WriteByte(c)
		} else if c == ':' && buf.Len() > 0 {
			v, err := eval()
			if err != nil {
				return segment{}, false, err
			}
			if start, ok = position(bm, v, j, size); !ok {
				return segment{}, false, nil
			}
			hasStart = true
			continue
		}

		if buf.Len() == 0 || (numeric && i < len(raw)-1) {
			continue
		}

		v, err := eval()
		if err != nil {
			return segment{}, false, err
		}
		end, ok := position(bm, v, j, size)
		if !ok {
			return segment{}, false, nil
		}
		if !hasStart {
			if start, ok = position(bm, v-1, j, size); !ok {
				return segment{}, false, nil
			}
		}

		seg = segment{start: start, end: end}
		if seg.start > seg.end {
			seg.start, seg.end = seg.end, seg.start
			seg.implicitReverse = true
		}
		return seg, true, nil
	}

	return segment{}, false, nil
}

func planNormal(bm beatmap.BeatMap, p *pattern.Pattern, log *slog.Logger) ([]segment, error) {
	size := max(p.Size, 1)
	iterations := bm.Len() / size

	chains := make([]effect.Chain, len(p.Tokens))
	for i, tok := range p.Tokens {
		if tok.Skip() {
			continue
		}
		ch, err := effect.FromToken(tok)
		if err != nil {
			return nil, err
		}
		chains[i] = ch
	}

	plan := make([]segment, 0, iterations*len(p.Tokens))
	for j := range iterations {
		for i, tok := range p.Tokens {
			if tok.Skip() {
				continue
			}

			seg, ok, err := resolve(tok, bm, j, size)
			if err != nil {
				return nil, err
			}
			if !ok {
				log.Debug("token skipped", slog.String("token", tok.Raw), slog.Int("period", j))
				continue
			}

			seg.chain = chains[i]
			plan = append(plan, seg)
		}
	}

	return plan, nil
}

func planReverse(bm beatmap.BeatMap) []segment {
	plan := make([]segment, 0, bm.Len())
	for i := bm.Len() - 1; i >= 1; i-- {
		plan = append(plan, segment{start: float64(bm.At(i - 1)), end: float64(bm.At(i))})
	}

	return plan
}

func planRandom(bm beatmap.BeatMap, opts Options) []segment {
	n := bm.Len()
	if n < 2 {
		return nil
	}

	rng := opts.rand()
	plan := make([]segment, 0, n)
	for range n {
		k := 1 + rng.IntN(n-1)
		plan = append(plan, segment{start: float64(bm.At(k - 1)), end: float64(bm.At(k))})
	}

	return plan
}
