// Package timescale holds the horizontal (time) scale of a chart.
//
// A TimeScale owns the full data range, the visible range and the plot
// width. Bar spacing and right offset are derived from those three values
// and a reference step (time units per bar), so the two representations
// can never drift apart:
//
//	BarSpacing  = Width * Step / (visibleEnd - visibleStart)
//	RightOffset = (visibleEnd - fullEnd) / Step
//
// Every operation validates its arguments before touching state; a
// rejected call returns an error wrapping coord.ErrInvalidInput and leaves
// the scale unchanged. Range-shape operations otherwise clamp and never
// fail.
package timescale
