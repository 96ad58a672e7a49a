// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	ErrUnknownWave = errors.New("unknown wave type")
	ErrInvalidTone = errors.New("invalid tone description")
	ErrInvalidRate = errors.New("sample rate must be positive")
)
