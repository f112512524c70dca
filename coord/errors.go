package coord

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors shared by every ggchart package.
var (
	// ErrInvalidInput is returned when a numeric argument is non-finite or
	// outside its accepted range.
	ErrInvalidInput = errors.New("coord: invalid input")

	// ErrInvalidDomain is returned when a domain cannot be represented, e.g.
	// non-positive bounds under logarithmic mode.
	ErrInvalidDomain = errors.New("coord: invalid domain")

	// ErrModeTransitionRejected is returned when a scale mode cannot be
	// entered from the current domain.
	ErrModeTransitionRejected = errors.New("coord: mode transition rejected")
)

// InputError describes a rejected numeric argument.
// It unwraps to ErrInvalidInput.
type InputError struct {
	Op     string
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be finite"
	}
	return fmt.Sprintf("%s: %s %s (got %v)", e.Op, e.Field, reason, e.Value)
}

// Unwrap returns ErrInvalidInput.
func (e *InputError) Unwrap() error { return ErrInvalidInput }

// CheckFinite returns an *InputError when v is NaN or infinite.
func CheckFinite(op, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Op: op, Field: field, Value: v}
	}
	return nil
}

// CheckPositive returns an *InputError unless v is finite and > 0.
func CheckPositive(op, field string, v float64) error {
	if !IsFinite(v) || v <= 0 {
		return &InputError{Op: op, Field: field, Value: v, Reason: "must be finite and > 0"}
	}
	return nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
