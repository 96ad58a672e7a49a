// SPDX-License-Identifier: EPL-2.0

package pattern

import (
	"math"
	"strings"
	"unicode"
)

// DefaultSeparator splits tokens when Parse gets an empty separator.
const DefaultSeparator = ","

// SuffixLetters are the effect suffixes a selector token may carry, in
// the order they are applied.
const SuffixLetters = "cvtsbd"

// Mode selects how the assembler walks the beatmap.
type Mode int

const (
	Normal Mode = iota
	Random
	Reverse
)

func (m Mode) String() string {
	switch m {
	case Random:
		return "random"
	case Reverse:
		return "reverse"
	default:
		return "normal"
	}
}

// Pattern is a parsed rearrangement pattern.
type Pattern struct {
	// Size is the period: how many beats one pass over Tokens consumes.
	Size   int
	Mode   Mode
	Tokens []Token
}

// Token is one separator-delimited pattern element with whitespace removed.
type Token struct {
	Raw string
}

// Skip reports whether the token is disabled with '!'.
func (t Token) Skip() bool { return strings.Contains(t.Raw, "!") }

// Reversed reports whether the token asks for a reversed segment.
func (t Token) Reversed() bool { return strings.Contains(t.Raw, "r") }

// Suffix returns the numeric run following the first occurrence of letter.
// ok is false when the letter is absent; arg may be empty when present.
func (t Token) Suffix(letter byte) (arg string, ok bool) {
	i := strings.IndexByte(t.Raw, letter)
	if i < 0 {
		return "", false
	}

	j := i + 1
	for j < len(t.Raw) && IsNumeric(t.Raw[j]) {
		j++
	}

	return t.Raw[i+1 : j], true
}

// Arg evaluates the suffix for letter. Absent suffixes report ok false;
// a bare letter yields def.
func (t Token) Arg(letter byte, def float64) (v float64, ok bool, err error) {
	arg, ok := t.Suffix(letter)
	if !ok {
		return 0, false, nil
	}
	if arg == "" {
		return def, true, nil
	}

	v, err = Eval(arg)
	if err != nil {
		return 0, true, &SyntaxError{Token: t.Raw, Expr: arg, Err: err}
	}

	return v, true, nil
}

// Parse splits s on sep (DefaultSeparator when empty), computes the period
// size and checks that every numeric expression evaluates.
func Parse(s, sep string) (*Pattern, error) {
	if sep == "" {
		sep = DefaultSeparator
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	raw := strings.Split(s, sep)
	p := &Pattern{Tokens: make([]Token, len(raw))}
	for i, r := range raw {
		p.Tokens[i] = Token{Raw: r}
	}

	first := strings.ToLower(raw[0])
	switch {
	case strings.Contains(first, "random"):
		p.Mode = Random
	case strings.Contains(first, "reverse"):
		p.Mode = Reverse
	}

	size := 0.0
	for _, tok := range p.Tokens {
		m, err := tokenSize(tok.Raw)
		if err != nil {
			return nil, err
		}
		size = max(size, m)
	}
	p.Size = max(int(math.Floor(size)), 1)

	for _, tok := range p.Tokens {
		if tok.Skip() {
			continue
		}
		for i := range len(SuffixLetters) {
			if _, _, err := tok.Arg(SuffixLetters[i], 0); err != nil {
				return nil, err
			}
		}
	}

	return p, nil
}

// tokenSize returns the largest ceiling of the beat expressions in tok.
// Scanning ignores leading non-numeric characters and stops at the first
// non-numeric character after a number.
func tokenSize(tok string) (float64, error) {
	size := 0.0
	var buf strings.Builder

	flush := func() error {
		expr := buf.String()
		buf.Reset()
		if expr == "" {
			expr = "0"
		}

		v, err := Eval(expr)
		if err != nil {
			return &SyntaxError{Token: tok, Expr: expr, Err: err}
		}
		size = max(size, math.Ceil(v))
		return nil
	}

scan:
	for i := range len(tok) {
		c := tok[i]
		switch {
		case IsNumeric(c):
			buf.WriteByte(c)
		case c == ':':
			if err := flush(); err != nil {
				return 0, err
			}
		case buf.Len() > 0:
			break scan
		}
	}

	if err := flush(); err != nil {
		return 0, err
	}

	return size, nil
}
