// SPDX-License-Identifier: EPL-2.0

package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax matches every pattern parsing failure through errors.Is.
	ErrSyntax = errors.New("pattern syntax error")

	ErrEmptyExpr      = errors.New("empty expression")
	ErrUnexpectedChar = errors.New("unexpected character")
	ErrDivisionByZero = errors.New("division by zero")
)

// SyntaxError reports a numeric expression in a pattern token that could
// not be evaluated.
type SyntaxError struct {
	Token string
	Expr  string
	Err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern token %q: cannot evaluate %q: %v", e.Token, e.Expr, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
