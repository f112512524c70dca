package timescale

import "github.com/gogpu/ggchart/coord"

// ResizeAnchor selects which side of the visible range stays put when the
// plot width changes under LockOnResize.
type ResizeAnchor uint8

const (
	// AnchorRight keeps the right edge fixed.
	AnchorRight ResizeAnchor = iota
	// AnchorLeft keeps the left edge fixed.
	AnchorLeft
	// AnchorCenter keeps the center fixed.
	AnchorCenter
)

// String returns the anchor name.
func (a ResizeAnchor) String() string {
	switch a {
	case AnchorLeft:
		return "left"
	case AnchorCenter:
		return "center"
	default:
		return "right"
	}
}

// Config holds the time scale policies.
type Config struct {
	// MinBarSpacing is the smallest bar width in pixels (zoom-out limit).
	MinBarSpacing float64
	// MaxBarSpacing is the largest bar width in pixels (zoom-in limit).
	// Zero disables the limit.
	MaxBarSpacing float64

	// FixLeftEdge clamps the visible range so it never starts before the data.
	FixLeftEdge bool
	// FixRightEdge clamps the visible range so it never ends after the data.
	FixRightEdge bool

	// LockOnResize keeps the bar spacing on resize and holds ResizeAnchor
	// fixed; otherwise the visible range is kept and the spacing stretches.
	LockOnResize bool
	ResizeAnchor ResizeAnchor

	// PreserveRightEdgeOnAppend shifts the visible range along with new
	// realtime bars while the last bar is in view.
	PreserveRightEdgeOnAppend bool
	// AppendToleranceBars is how far, in bars, the right edge may lag the
	// last bar and still count as tracking.
	AppendToleranceBars float64

	// LeftPadding and RightPadding are the fit-to-data padding ratios of
	// the data span.
	LeftPadding  float64
	RightPadding float64

	// MinSpan is the span a degenerate full range is expanded to.
	MinSpan float64

	// MinZoomSpan is the smallest visible span zooming in may reach, in
	// time units. The float64 resolution of the visible times raises it
	// further (see SpanLimits).
	MinZoomSpan float64
}

// DefaultConfig returns the default policies.
func DefaultConfig() Config {
	return Config{
		MinBarSpacing:             0.5,
		ResizeAnchor:              AnchorRight,
		PreserveRightEdgeOnAppend: true,
		AppendToleranceBars:       0.75,
		LeftPadding:               0.05,
		RightPadding:              0.05,
		MinSpan:                   1,
		MinZoomSpan:               1e-6,
	}
}

// Validate checks the numeric policies.
func (c Config) Validate() error {
	if err := coord.CheckPositive("timescale.Config", "min bar spacing", c.MinBarSpacing); err != nil {
		return err
	}
	if !coord.IsFinite(c.MaxBarSpacing) || c.MaxBarSpacing < 0 {
		return &coord.InputError{Op: "timescale.Config", Field: "max bar spacing", Value: c.MaxBarSpacing, Reason: "must be finite and >= 0"}
	}
	if c.MaxBarSpacing > 0 && c.MaxBarSpacing < c.MinBarSpacing {
		return &coord.InputError{Op: "timescale.Config", Field: "max bar spacing", Value: c.MaxBarSpacing, Reason: "must be >= min bar spacing"}
	}
	if !coord.IsFinite(c.AppendToleranceBars) || c.AppendToleranceBars < 0 {
		return &coord.InputError{Op: "timescale.Config", Field: "append tolerance", Value: c.AppendToleranceBars, Reason: "must be finite and >= 0"}
	}
	if !coord.IsFinite(c.LeftPadding) || c.LeftPadding < 0 {
		return &coord.InputError{Op: "timescale.Config", Field: "left padding", Value: c.LeftPadding, Reason: "must be finite and >= 0"}
	}
	if !coord.IsFinite(c.RightPadding) || c.RightPadding < 0 {
		return &coord.InputError{Op: "timescale.Config", Field: "right padding", Value: c.RightPadding, Reason: "must be finite and >= 0"}
	}
	if err := coord.CheckPositive("timescale.Config", "min zoom span", c.MinZoomSpan); err != nil {
		return err
	}
	return coord.CheckPositive("timescale.Config", "min span", c.MinSpan)
}
