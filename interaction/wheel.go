package interaction

import (
	"math"

	"github.com/gogpu/ggchart/coord"
)

// WheelStepUnits is the wheel delta of one notch on a classic mouse.
const WheelStepUnits = 120

const float64Epsilon = 0x1p-52

// Wheel converts raw wheel deltas into whole notches. High resolution
// devices report fractions of a notch; the remainder is carried to the
// next event so every device produces the same total.
type Wheel struct {
	acc float64
}

// Normalize adds delta (in wheel units) and returns the whole notches now
// available, truncated toward zero.
func (w *Wheel) Normalize(delta float64) (float64, error) {
	if err := coord.CheckFinite("interaction.Wheel.Normalize", "delta", delta); err != nil {
		return 0, err
	}
	w.acc += delta / WheelStepUnits
	notches := math.Trunc(w.acc)
	w.acc -= notches
	// Drop float residue so a full notch split in parts lands exactly.
	if math.Abs(w.acc) < 1e-9 {
		w.acc = 0
	}
	if math.Abs(w.acc) > 1-1e-9 {
		notches += math.Copysign(1, w.acc)
		w.acc = 0
	}
	return notches, nil
}

// Pending returns the carried fraction of a notch.
func (w *Wheel) Pending() float64 { return w.acc }

// Reset drops the carried fraction.
func (w *Wheel) Reset() { w.acc = 0 }

// ZoomFactor returns (1+stepRatio)^(-notches). Scrolling up (negative
// notches) yields a factor > 1, which zooms in.
func ZoomFactor(notches, stepRatio float64) (float64, error) {
	if err := coord.CheckFinite("interaction.ZoomFactor", "notches", notches); err != nil {
		return 0, err
	}
	if err := coord.CheckPositive("interaction.ZoomFactor", "step ratio", stepRatio); err != nil {
		return 0, err
	}
	f := math.Pow(1+stepRatio, -notches)
	if !coord.IsFinite(f) || f <= 0 {
		return 0, &coord.InputError{Op: "interaction.ZoomFactor", Field: "factor", Value: f, Reason: "must be finite and > 0"}
	}
	return f, nil
}

// PanDelta returns the time displacement of a horizontal wheel pan:
// notches*span*stepRatio. Positive notches move to later times.
func PanDelta(notches, span, stepRatio float64) (float64, error) {
	if err := coord.CheckFinite("interaction.PanDelta", "notches", notches); err != nil {
		return 0, err
	}
	if err := coord.CheckPositive("interaction.PanDelta", "step ratio", stepRatio); err != nil {
		return 0, err
	}
	d := notches * span * stepRatio
	if !coord.IsFinite(d) {
		return 0, &coord.InputError{Op: "interaction.PanDelta", Field: "delta", Value: d}
	}
	return d, nil
}

// PinchFactor validates a pinch scale factor. ok is false for a factor of
// one, which changes nothing.
func PinchFactor(f float64) (factor float64, ok bool, err error) {
	if err := coord.CheckPositive("interaction.PinchFactor", "factor", f); err != nil {
		return 0, false, err
	}
	if math.Abs(f-1) <= float64Epsilon {
		return 1, false, nil
	}
	return f, true, nil
}
