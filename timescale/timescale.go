package timescale

import (
	"fmt"
	"math"

	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/internal/logging"
)

// minVisibleSpan is the least span a degenerate visible range is expanded to.
const minVisibleSpan = 1e-9

// shiftEpsilon suppresses visible-range moves smaller than float noise.
const shiftEpsilon = 1e-12

// resolutionUlps is the number of representable float64 steps a visible
// span must cover at the magnitude of its edges.
const resolutionUlps = 1 << 16

// State is a read-only snapshot of a TimeScale.
type State struct {
	FullStart    float64
	FullEnd      float64
	VisibleStart float64
	VisibleEnd   float64
	Width        float64
	Step         float64
	BarSpacing   float64
	RightOffset  float64
}

// TimeScale maps time to horizontal pixels.
// It is not safe for concurrent use.
type TimeScale struct {
	cfg Config

	fullStart, fullEnd float64
	visStart, visEnd   float64
	width              float64
	step               float64
}

// New creates a scale whose full and visible ranges are [start, end].
func New(start, end, width float64, cfg Config) (*TimeScale, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := coord.CheckPositive("timescale.New", "width", width); err != nil {
		return nil, err
	}
	lo, hi, err := normalizeRange("timescale.New", start, end, cfg.MinSpan)
	if err != nil {
		return nil, err
	}
	return &TimeScale{
		cfg:       cfg,
		fullStart: lo,
		fullEnd:   hi,
		visStart:  lo,
		visEnd:    hi,
		width:     width,
		step:      1,
	}, nil
}

// Config returns the active policies.
func (s *TimeScale) Config() Config { return s.cfg }

// SetConfig replaces the policies and re-applies the edge clamp.
func (s *TimeScale) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev := s.cfg
	s.cfg = cfg
	if err := s.commit("timescale.SetConfig", s.visStart, s.visEnd); err != nil {
		s.cfg = prev
		return err
	}
	return nil
}

// FullRange returns the data range.
func (s *TimeScale) FullRange() (start, end float64) { return s.fullStart, s.fullEnd }

// VisibleRange returns the visible range.
func (s *TimeScale) VisibleRange() (start, end float64) { return s.visStart, s.visEnd }

// Width returns the plot width in pixels.
func (s *TimeScale) Width() float64 { return s.width }

// ReferenceStep returns the time units per bar.
func (s *TimeScale) ReferenceStep() float64 { return s.step }

// SetReferenceStep sets the time units per bar. The visible range is kept.
func (s *TimeScale) SetReferenceStep(step float64) error {
	if err := coord.CheckPositive("timescale.SetReferenceStep", "step", step); err != nil {
		return err
	}
	s.step = step
	return nil
}

// BarSpacing returns the pixel width of one bar.
func (s *TimeScale) BarSpacing() float64 {
	return s.width * s.step / (s.visEnd - s.visStart)
}

// RightOffset returns the number of bars between the last bar and the
// right edge. Negative values mean the last bar is off screen.
func (s *TimeScale) RightOffset() float64 {
	return (s.visEnd - s.fullEnd) / s.step
}

// ScrollPositionBars is RightOffset under the name hosts use for scroll
// persistence.
func (s *TimeScale) ScrollPositionBars() float64 { return s.RightOffset() }

// State returns a snapshot of the scale.
func (s *TimeScale) State() State {
	return State{
		FullStart:    s.fullStart,
		FullEnd:      s.fullEnd,
		VisibleStart: s.visStart,
		VisibleEnd:   s.visEnd,
		Width:        s.width,
		Step:         s.step,
		BarSpacing:   s.BarSpacing(),
		RightOffset:  s.RightOffset(),
	}
}

// space returns the linear mapping of the visible range.
func (s *TimeScale) space() coord.LinearSpace {
	return coord.LinearSpace{Start: s.visStart, End: s.visEnd, Length: s.width}
}

// TimeToPixel maps t to a horizontal pixel.
func (s *TimeScale) TimeToPixel(t float64) (float64, error) {
	return s.space().ToPixel(t)
}

// PixelToTime maps a horizontal pixel to time.
func (s *TimeScale) PixelToTime(px float64) (float64, error) {
	return s.space().ToLogical(px)
}

// IndexSpace returns the bar-index view of the scale. The newest bar sits
// at index fullEnd/step.
func (s *TimeScale) IndexSpace() coord.TimeIndexSpace {
	return coord.TimeIndexSpace{
		BaseIndex:   s.fullEnd / s.step,
		RightOffset: s.RightOffset(),
		BarSpacing:  s.BarSpacing(),
		Width:       s.width,
	}
}

// SetVisibleRange sets the visible range. Reversed bounds are swapped and
// an empty range is widened to the smallest span resolvable at its
// magnitude.
func (s *TimeScale) SetVisibleRange(start, end float64) error {
	const op = "timescale.SetVisibleRange"
	lo, hi, err := normalizeRange(op, start, end, minVisibleSpan)
	if err != nil {
		return err
	}
	return s.commit(op, lo, hi)
}

// SetFullRange replaces the data range without moving the visible range.
func (s *TimeScale) SetFullRange(start, end float64) error {
	const op = "timescale.SetFullRange"
	lo, hi, err := normalizeRange(op, start, end, s.cfg.MinSpan)
	if err != nil {
		return err
	}
	prevStart, prevEnd := s.fullStart, s.fullEnd
	s.fullStart, s.fullEnd = lo, hi
	if err := s.commit(op, s.visStart, s.visEnd); err != nil {
		s.fullStart, s.fullEnd = prevStart, prevEnd
		return err
	}
	return nil
}

// PanByTime shifts the visible range by dt time units.
func (s *TimeScale) PanByTime(dt float64) error {
	if err := coord.CheckFinite("timescale.PanByTime", "delta", dt); err != nil {
		return err
	}
	return s.commit("timescale.PanByTime", s.visStart+dt, s.visEnd+dt)
}

// PanByPixels moves the content by dx pixels. Dragging right (dx > 0)
// reveals earlier times.
func (s *TimeScale) PanByPixels(dx float64) error {
	if err := coord.CheckFinite("timescale.PanByPixels", "delta", dx); err != nil {
		return err
	}
	dt := -dx / s.width * (s.visEnd - s.visStart)
	return s.commit("timescale.PanByPixels", s.visStart+dt, s.visEnd+dt)
}

// ZoomAroundPixel divides the visible span by factor while keeping the
// time under px at px. factor > 1 zooms in.
func (s *TimeScale) ZoomAroundPixel(px, factor float64) error {
	if err := coord.CheckFinite("timescale.ZoomAroundPixel", "pixel", px); err != nil {
		return err
	}
	if err := coord.CheckPositive("timescale.ZoomAroundPixel", "factor", factor); err != nil {
		return err
	}
	anchor := s.visStart + px/s.width*(s.visEnd-s.visStart)
	return s.zoom("timescale.ZoomAroundPixel", anchor, px, factor)
}

// ZoomAroundTime divides the visible span by factor while keeping t at its
// current pixel.
func (s *TimeScale) ZoomAroundTime(t, factor float64) error {
	if err := coord.CheckFinite("timescale.ZoomAroundTime", "time", t); err != nil {
		return err
	}
	if err := coord.CheckPositive("timescale.ZoomAroundTime", "factor", factor); err != nil {
		return err
	}
	px := (t - s.visStart) / (s.visEnd - s.visStart) * s.width
	return s.zoom("timescale.ZoomAroundTime", t, px, factor)
}

func (s *TimeScale) zoom(op string, anchor, px, factor float64) error {
	current := s.visEnd - s.visStart
	want := current / factor
	span := s.clampSpan(want)
	if span != want {
		logging.Logger().Debug("timescale: zoom span clamped",
			"want", want, "span", span, "bar_spacing", s.width*s.step/span)
	}
	// A zoom pinned at a limit would only re-derive the start and let
	// rounding walk the anchor.
	if span == current {
		return nil
	}
	// Solving the start from the clamped span keeps the anchor exact even
	// when the limits changed the requested factor.
	start := anchor - px/s.width*span
	return s.commit(op, start, start+span)
}

// SpanLimits returns the smallest and largest visible span allowed.
//
// The lower limit is the largest of MinZoomSpan, the span MaxBarSpacing
// implies and resolutionUlps float64 steps at the magnitude of the
// visible edges, so zooming near large epoch times keeps pixel mapping
// resolvable.
func (s *TimeScale) SpanLimits() (minSpan, maxSpan float64) {
	maxSpan = s.step * math.Max(s.width/s.cfg.MinBarSpacing, 1)
	minSpan = math.Max(s.cfg.MinZoomSpan, resolutionFloor(s.visStart, s.visEnd))
	if s.cfg.MaxBarSpacing > 0 {
		minSpan = math.Max(minSpan, s.step*math.Max(s.width/s.cfg.MaxBarSpacing, 1))
	}
	if minSpan > maxSpan {
		minSpan = maxSpan
	}
	return minSpan, maxSpan
}

func (s *TimeScale) clampSpan(span float64) float64 {
	lo, hi := s.SpanLimits()
	switch {
	case span < lo:
		return lo
	case span > hi:
		return hi
	}
	return span
}

// SetBarSpacing sets the bar width in pixels, keeping the right edge.
// The spacing is clamped to the configured limits.
func (s *TimeScale) SetBarSpacing(px float64) error {
	if err := coord.CheckPositive("timescale.SetBarSpacing", "bar spacing", px); err != nil {
		return err
	}
	span := s.clampSpan(s.width * s.step / px)
	return s.commit("timescale.SetBarSpacing", s.visEnd-span, s.visEnd)
}

// SetRightOffset moves the visible range so that bars empty bars sit to
// the right of the last bar. The span is kept.
func (s *TimeScale) SetRightOffset(bars float64) error {
	if err := coord.CheckFinite("timescale.SetRightOffset", "right offset", bars); err != nil {
		return err
	}
	span := s.visEnd - s.visStart
	end := s.fullEnd + bars*s.step
	return s.commit("timescale.SetRightOffset", end-span, end)
}

// ScrollToPositionBars is SetRightOffset that reports whether the visible
// range moved.
func (s *TimeScale) ScrollToPositionBars(bars float64) (bool, error) {
	const op = "timescale.ScrollToPositionBars"
	if err := coord.CheckFinite(op, "position", bars); err != nil {
		return false, err
	}
	before0, before1 := s.visStart, s.visEnd
	delta := s.fullEnd + bars*s.step - s.visEnd
	if math.Abs(delta) > shiftEpsilon {
		if err := s.commit(op, s.visStart+delta, s.visEnd+delta); err != nil {
			return false, err
		}
	}
	return s.visStart != before0 || s.visEnd != before1, nil
}

// ScrollToRealtime brings the last bar back to the right edge.
func (s *TimeScale) ScrollToRealtime() bool {
	moved, _ := s.ScrollToPositionBars(0)
	return moved
}

// Padding holds fit-to-data padding as ratios of the data span.
type Padding struct {
	Left  float64
	Right float64
}

// Padding returns the configured fit padding.
func (c Config) Padding() Padding {
	return Padding{Left: c.LeftPadding, Right: c.RightPadding}
}

// FitToData sets the full range to the extent of the finite times and the
// visible range to that extent plus pad.
func (s *TimeScale) FitToData(times []float64, pad Padding) error {
	if !coord.IsFinite(pad.Left) || pad.Left < 0 {
		return &coord.InputError{Op: "timescale.FitToData", Field: "left padding", Value: pad.Left, Reason: "must be finite and >= 0"}
	}
	if !coord.IsFinite(pad.Right) || pad.Right < 0 {
		return &coord.InputError{Op: "timescale.FitToData", Field: "right padding", Value: pad.Right, Reason: "must be finite and >= 0"}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range times {
		if !coord.IsFinite(t) {
			continue
		}
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	if lo > hi {
		return &coord.InputError{Op: "timescale.FitToData", Field: "times", Value: float64(len(times)), Reason: "must contain a finite time"}
	}
	const op = "timescale.FitToData"
	start, end, err := normalizeRange(op, lo, hi, s.cfg.MinSpan)
	if err != nil {
		return err
	}
	span := end - start
	prevStart, prevEnd := s.fullStart, s.fullEnd
	s.fullStart, s.fullEnd = start, end
	if err := s.commit(op, start-span*pad.Left, end+span*pad.Right); err != nil {
		s.fullStart, s.fullEnd = prevStart, prevEnd
		return err
	}
	return nil
}

// Resize changes the plot width.
//
// With LockOnResize the bar spacing is kept and the ResizeAnchor side of
// the visible range stays fixed while the opposite side moves. Without it
// the visible range is kept and the bar spacing stretches.
func (s *TimeScale) Resize(width float64) error {
	if err := coord.CheckPositive("timescale.Resize", "width", width); err != nil {
		return err
	}
	const op = "timescale.Resize"
	prev := s.width
	start, end := s.visStart, s.visEnd
	if s.cfg.LockOnResize && prev != width {
		span := (end - start) * width / prev
		switch s.cfg.ResizeAnchor {
		case AnchorLeft:
			end = start + span
		case AnchorCenter:
			mid := (start + end) / 2
			start, end = mid-span/2, mid+span/2
		default:
			start = end - span
		}
	}
	s.width = width
	if err := s.commit(op, start, end); err != nil {
		s.width = prev
		return err
	}
	return nil
}

// AppendRealtime extends the full range to t. When the right edge was
// within AppendToleranceBars of the previous last bar, on either side,
// the visible range
// follows the new bar; otherwise the user has scrolled away and the view
// stays. It reports whether the visible range moved. Times at or before
// the current end change nothing.
func (s *TimeScale) AppendRealtime(t float64) (bool, error) {
	const op = "timescale.AppendRealtime"
	if err := coord.CheckFinite(op, "time", t); err != nil {
		return false, err
	}
	if t <= s.fullEnd {
		return false, nil
	}
	tolerance := s.cfg.AppendToleranceBars * s.step
	tracking := s.cfg.PreserveRightEdgeOnAppend &&
		math.Abs(s.visEnd-s.fullEnd) <= tolerance+shiftEpsilon

	prevEnd := s.fullEnd
	delta := t - prevEnd
	s.fullEnd = t
	if !tracking {
		return false, nil
	}
	if err := s.commit(op, s.visStart+delta, s.visEnd+delta); err != nil {
		s.fullEnd = prevEnd
		return false, err
	}
	return true, nil
}

// commit applies the edge policy to [start, end] and stores the result.
// A range that collapses or overflows is rejected and the visible range
// is left unchanged.
func (s *TimeScale) commit(op string, start, end float64) error {
	start, end = s.clampEdges(start, end)
	if !coord.IsFinite(start) || !coord.IsFinite(end) || end <= start {
		logging.Logger().Debug("timescale: rejected visible range",
			"op", op, "start", start, "end", end)
		return fmt.Errorf("%s: visible range [%v, %v] is empty or non-finite: %w",
			op, start, end, coord.ErrInvalidDomain)
	}
	s.visStart, s.visEnd = start, end
	return nil
}

// clampEdges shifts the range into the full range on the fixed sides.
// When both sides are fixed and the span does not fit, the full range is
// returned.
func (s *TimeScale) clampEdges(start, end float64) (float64, float64) {
	if s.cfg.FixLeftEdge && s.cfg.FixRightEdge && end-start > s.fullEnd-s.fullStart {
		return s.fullStart, s.fullEnd
	}
	if s.cfg.FixLeftEdge && start < s.fullStart {
		d := s.fullStart - start
		start, end = start+d, end+d
	}
	if s.cfg.FixRightEdge && end > s.fullEnd {
		d := end - s.fullEnd
		start, end = start-d, end-d
	}
	return start, end
}

func normalizeRange(op string, start, end, minSpan float64) (float64, float64, error) {
	if err := coord.CheckFinite(op, "start", start); err != nil {
		return 0, 0, err
	}
	if err := coord.CheckFinite(op, "end", end); err != nil {
		return 0, 0, err
	}
	if start > end {
		start, end = end, start
	}
	if start == end {
		at := start
		span := math.Max(minSpan, resolutionFloor(at, at))
		start, end = at-span/2, at+span/2
		if !coord.IsFinite(start) || !coord.IsFinite(end) || !(end > start) {
			return 0, 0, fmt.Errorf("%s: empty range at %v cannot be widened: %w",
				op, at, coord.ErrInvalidDomain)
		}
	}
	return start, end, nil
}

// resolutionFloor returns the span of resolutionUlps float64 steps at the
// larger magnitude of a and b.
func resolutionFloor(a, b float64) float64 {
	m := math.Max(math.Abs(a), math.Abs(b))
	return resolutionUlps * (math.Nextafter(m, math.Inf(1)) - m)
}
