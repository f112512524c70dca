package ggchart

import (
	"errors"

	"github.com/gogpu/ggchart/coord"
)

// Errors returned by Engine methods. Test with errors.Is.
var (
	// ErrInvalidInput marks a non-finite or out-of-range argument.
	ErrInvalidInput = coord.ErrInvalidInput

	// ErrInvalidDomain marks a domain the active price mode cannot show.
	ErrInvalidDomain = coord.ErrInvalidDomain

	// ErrModeTransitionRejected marks a price mode switch refused for the
	// current domain.
	ErrModeTransitionRejected = coord.ErrModeTransitionRejected

	// ErrNoData is returned by operations that need samples when none are
	// loaded.
	ErrNoData = errors.New("ggchart: no data")
)

// InputError describes a rejected numeric argument.
type InputError = coord.InputError
