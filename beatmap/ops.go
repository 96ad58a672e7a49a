// SPDX-License-Identifier: EPL-2.0

package beatmap

import (
	"fmt"
	"math"
)

// Op is a beatmap transform with validated parameters.
type Op interface {
	Apply(m BeatMap) (BeatMap, error)
	String() string
}

// ScaleOp applies BeatMap.Scale. Factor must be positive and finite.
type ScaleOp struct{ Factor float64 }

func (o ScaleOp) Apply(m BeatMap) (BeatMap, error) {
	if !(o.Factor > 0) || math.IsInf(o.Factor, 0) {
		return m, fmt.Errorf("scale factor %v: %w", o.Factor, ErrInvalidParam)
	}

	return m.Scale(o.Factor), nil
}

func (o ScaleOp) String() string { return fmt.Sprintf("scale(%g)", o.Factor) }

// ShiftOp applies BeatMap.Shift.
type ShiftOp struct{ Amount float64 }

func (o ShiftOp) Apply(m BeatMap) (BeatMap, error) {
	if math.IsNaN(o.Amount) || math.IsInf(o.Amount, 0) {
		return m, fmt.Errorf("shift amount %v: %w", o.Amount, ErrInvalidParam)
	}

	return m.Shift(o.Amount), nil
}

func (o ShiftOp) String() string { return fmt.Sprintf("shift(%g)", o.Amount) }

// TrimOp applies BeatMap.Trim. Start is in seconds, End in samples (NoEnd
// to disable).
type TrimOp struct {
	Start      float64
	End        int
	SampleRate int
}

func (o TrimOp) Apply(m BeatMap) (BeatMap, error) {
	if o.Start < 0 || math.IsNaN(o.Start) {
		return m, fmt.Errorf("trim start %v: %w", o.Start, ErrInvalidParam)
	}
	if o.SampleRate <= 0 {
		return m, fmt.Errorf("trim sample rate %d: %w", o.SampleRate, ErrInvalidParam)
	}

	return m.Trim(o.Start, o.End, o.SampleRate), nil
}

func (o TrimOp) String() string {
	if o.End < 0 {
		return fmt.Sprintf("trim(%gs)", o.Start)
	}
	return fmt.Sprintf("trim(%gs, %d)", o.Start, o.End)
}

// AutoInsertOp applies BeatMap.AutoInsert.
type AutoInsertOp struct{}

func (AutoInsertOp) Apply(m BeatMap) (BeatMap, error) { return m.AutoInsert(), nil }
func (AutoInsertOp) String() string                  { return "autoinsert" }

// AutoScaleOp applies BeatMap.AutoScale.
type AutoScaleOp struct{}

func (AutoScaleOp) Apply(m BeatMap) (BeatMap, error) { return m.AutoScale(), nil }
func (AutoScaleOp) String() string                  { return "autoscale" }

// Transform applies ops in order and stops at the first invalid one.
func Transform(m BeatMap, ops ...Op) (BeatMap, error) {
	for _, op := range ops {
		next, err := op.Apply(m)
		if err != nil {
			return m, fmt.Errorf("%s: %w", op, err)
		}
		m = next
	}

	return m, nil
}
