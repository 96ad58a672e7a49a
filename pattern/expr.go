// SPDX-License-Identifier: EPL-2.0

package pattern

import (
	"fmt"
	"math"
	"strconv"
)

// IsNumeric reports whether c may appear in a numeric expression.
func IsNumeric(c byte) bool {
	switch c {
	case '.', '-', '/', '+', '%':
		return true
	}

	return c >= '0' && c <= '9'
}

// Eval evaluates an arithmetic expression built from decimal literals,
// binary + - / %, and unary + -. / and % bind tighter than + and -, and %
// is a floored modulo whose result takes the sign of the divisor.
func Eval(expr string) (float64, error) {
	if expr == "" {
		return 0, ErrEmptyExpr
	}

	p := exprParser{s: expr}
	v, err := p.sum()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.s) {
		return 0, fmt.Errorf("%q at %d: %w", p.s[p.pos], p.pos, ErrUnexpectedChar)
	}

	return v, nil
}

type exprParser struct {
	s   string
	pos int
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}

	return p.s[p.pos]
}

func (p *exprParser) sum() (float64, error) {
	v, err := p.product()
	if err != nil {
		return 0, err
	}

	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return v, nil
		}
		p.pos++

		rhs, err := p.product()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *exprParser) product() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}

	for {
		op := p.peek()
		if op != '/' && op != '%' {
			return v, nil
		}
		p.pos++

		rhs, err := p.unary()
		if err != nil {
			return 0, err
		}
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		if op == '/' {
			v /= rhs
		} else {
			v = floorMod(v, rhs)
		}
	}
}

func (p *exprParser) unary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}

	return p.number()
}

func (p *exprParser) number() (float64, error) {
	start := p.pos
	digits := 0
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
		digits++
	}
	if p.peek() == '.' {
		p.pos++
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
			digits++
		}
	}

	if digits == 0 {
		if p.pos >= len(p.s) {
			return 0, fmt.Errorf("missing operand at end: %w", ErrUnexpectedChar)
		}
		return 0, fmt.Errorf("%q at %d: %w", p.s[p.pos], p.pos, ErrUnexpectedChar)
	}

	return strconv.ParseFloat(p.s[start:p.pos], 64)
}

func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r
}
