package pricescale

import (
	"fmt"
	"math"

	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/internal/logging"
)

// State is a read-only snapshot of a PriceScale.
type State struct {
	Mode          coord.PriceMode
	Min           float64
	Max           float64
	Base          float64
	Height        float64
	Margins       coord.Margins
	Inverted      bool
	AutoscaleSpan float64
}

// PriceScale maps prices to vertical pixels.
// It is not safe for concurrent use.
type PriceScale struct {
	cfg Config

	min, max      float64
	height        float64
	base          float64
	autoscaleSpan float64
}

// New creates a scale over [p0, p1] with the given plot height.
func New(p0, p1, height float64, cfg Config) (*PriceScale, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := coord.CheckPositive("pricescale.New", "height", height); err != nil {
		return nil, err
	}
	s := &PriceScale{cfg: cfg, height: height}
	lo, hi, err := s.checkDomain("pricescale.New", cfg.Mode, p0, p1)
	if err != nil {
		return nil, err
	}
	s.min, s.max = lo, hi
	s.base = resolveBase(cfg.Base, lo, Series{}, nil)
	return s, nil
}

// Config returns the active policies.
func (s *PriceScale) Config() Config { return s.cfg }

// Mode returns the display mode.
func (s *PriceScale) Mode() coord.PriceMode { return s.cfg.Mode }

// Domain returns the raw price domain.
func (s *PriceScale) Domain() (lo, hi float64) { return s.min, s.max }

// Base returns the resolved base price.
func (s *PriceScale) Base() float64 { return s.base }

// Height returns the plot height in pixels.
func (s *PriceScale) Height() float64 { return s.height }

// Inverted reports whether prices grow downwards.
func (s *PriceScale) Inverted() bool { return s.cfg.Inverted }

// Margins returns the top and bottom margins.
func (s *PriceScale) Margins() coord.Margins { return s.cfg.Margins }

// AutoscaleSpan returns the raw span chosen by the last autoscale, or 0.
func (s *PriceScale) AutoscaleSpan() float64 { return s.autoscaleSpan }

// State returns a snapshot of the scale.
func (s *PriceScale) State() State {
	return State{
		Mode:          s.cfg.Mode,
		Min:           s.min,
		Max:           s.max,
		Base:          s.base,
		Height:        s.height,
		Margins:       s.cfg.Margins,
		Inverted:      s.cfg.Inverted,
		AutoscaleSpan: s.autoscaleSpan,
	}
}

// Space returns the coordinate space for the current state.
func (s *PriceScale) Space() coord.PriceSpace {
	return s.spaceFor(s.min, s.max)
}

func (s *PriceScale) spaceFor(lo, hi float64) coord.PriceSpace {
	return coord.PriceSpace{
		Mode:     s.cfg.Mode,
		Base:     s.base,
		Min:      lo,
		Max:      hi,
		Height:   s.height,
		Margins:  s.cfg.Margins,
		Inverted: s.cfg.Inverted,
	}
}

// PriceToPixel maps a price to a vertical pixel.
func (s *PriceScale) PriceToPixel(price float64) (float64, error) {
	return s.Space().ToPixel(price)
}

// PixelToPrice maps a vertical pixel to a price.
func (s *PriceScale) PixelToPrice(px float64) (float64, error) {
	return s.Space().ToPrice(px)
}

// SetMode switches the display mode. Entering log mode from a domain with
// a non-positive bound fails with ErrModeTransitionRejected and leaves the
// scale unchanged.
func (s *PriceScale) SetMode(m coord.PriceMode) error {
	if m > coord.PriceModeIndexedTo100 {
		return &coord.InputError{Op: "pricescale.SetMode", Field: "mode", Value: float64(m), Reason: "is unknown"}
	}
	if m == coord.PriceModeLog && (s.min <= 0 || s.max <= 0) {
		logging.Logger().Warn("pricescale: log mode rejected",
			"min", s.min, "max", s.max)
		return fmt.Errorf("pricescale.SetMode: domain [%v, %v] has a non-positive bound: %w: %w",
			s.min, s.max, coord.ErrModeTransitionRejected, coord.ErrInvalidDomain)
	}
	s.cfg.Mode = m
	return nil
}

// SetDomain sets the raw price domain. Reversed bounds are swapped and an
// empty domain is widened by MinSpan.
func (s *PriceScale) SetDomain(p0, p1 float64) error {
	lo, hi, err := s.checkDomain("pricescale.SetDomain", s.cfg.Mode, p0, p1)
	if err != nil {
		return err
	}
	s.setDomain(lo, hi)
	return nil
}

func (s *PriceScale) setDomain(lo, hi float64) {
	s.min, s.max = lo, hi
	if !s.cfg.Base.Explicit && s.cfg.Base.Source == BaseDomainStart {
		s.base = coord.SanitizeBase(lo)
	}
}

// checkDomain normalizes [p0, p1] and checks it is usable under mode.
func (s *PriceScale) checkDomain(op string, mode coord.PriceMode, p0, p1 float64) (float64, float64, error) {
	if err := coord.CheckFinite(op, "min", p0); err != nil {
		return 0, 0, err
	}
	if err := coord.CheckFinite(op, "max", p1); err != nil {
		return 0, 0, err
	}
	if p0 > p1 {
		p0, p1 = p1, p0
	}
	if p0 == p1 {
		half := s.cfg.MinSpan / 2
		if mode == coord.PriceModeLog && p0-half <= 0 {
			p0, p1 = p0/(1+s.cfg.MinSpan), p1*(1+s.cfg.MinSpan)
		} else {
			p0, p1 = p0-half, p1+half
		}
	}
	if mode == coord.PriceModeLog && p0 <= 0 {
		return 0, 0, fmt.Errorf("%s: log domain [%v, %v] must be > 0: %w", op, p0, p1, coord.ErrInvalidDomain)
	}
	if p0 == p1 {
		return 0, 0, fmt.Errorf("%s: domain collapses at %v: %w", op, p0, coord.ErrInvalidDomain)
	}
	return p0, p1, nil
}

// SetInverted flips the vertical direction.
func (s *PriceScale) SetInverted(inverted bool) { s.cfg.Inverted = inverted }

// SetMargins sets the top and bottom margins.
func (s *PriceScale) SetMargins(m coord.Margins) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.cfg.Margins = m
	return nil
}

// SetHeight sets the plot height in pixels.
func (s *PriceScale) SetHeight(h float64) error {
	if err := coord.CheckPositive("pricescale.SetHeight", "height", h); err != nil {
		return err
	}
	s.height = h
	return nil
}

// SetBasePolicy replaces the base policy. A dynamic policy takes effect
// at the next ResolveBase; until then the domain start is used.
func (s *PriceScale) SetBasePolicy(p BasePolicy) error {
	if !p.Explicit && p.Source > BaseLastVisibleData {
		return &coord.InputError{Op: "pricescale.SetBasePolicy", Field: "source", Value: float64(p.Source), Reason: "is unknown"}
	}
	s.cfg.Base = p
	s.base = resolveBase(p, s.min, Series{}, nil)
	return nil
}

// ResolveBase recomputes the base from data. win limits the visible
// sources and may be nil. It reports whether the base changed.
func (s *PriceScale) ResolveBase(data Series, win *VisibleWindow) bool {
	base := resolveBase(s.cfg.Base, s.min, data, win)
	if sameBase(base, s.base) {
		return false
	}
	logging.Logger().Debug("pricescale: base resolved",
		"source", s.cfg.Base.Source.String(), "explicit", s.cfg.Base.Explicit, "base", base)
	s.base = base
	return true
}

// AutoscaleFrom fits the domain to the finite values plus padding. Under
// log mode non-positive values are ignored and the padding is applied in
// log space, so the bounds stay positive.
func (s *PriceScale) AutoscaleFrom(values []float64) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !coord.IsFinite(v) || (s.cfg.Mode == coord.PriceModeLog && v <= 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return s.autoscale("pricescale.AutoscaleFrom", lo, hi, len(values))
}

// AutoscaleFromCandles fits the domain to the candle lows and highs.
func (s *PriceScale) AutoscaleFromCandles(candles []coord.Candle) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	take := func(v float64) {
		if !coord.IsFinite(v) || (s.cfg.Mode == coord.PriceModeLog && v <= 0) {
			return
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for _, c := range candles {
		take(c.Low)
		take(c.High)
		take(c.Close)
	}
	return s.autoscale("pricescale.AutoscaleFromCandles", lo, hi, len(candles))
}

func (s *PriceScale) autoscale(op string, lo, hi float64, n int) error {
	if lo > hi {
		if s.cfg.Mode == coord.PriceModeLog && n > 0 {
			return fmt.Errorf("%s: no positive value for log mode: %w", op, coord.ErrInvalidDomain)
		}
		return &coord.InputError{Op: op, Field: "values", Value: float64(n), Reason: "must contain a finite value"}
	}

	if s.cfg.Mode == coord.PriceModeLog {
		tlo, thi := math.Log(lo), math.Log(hi)
		if tlo == thi {
			tlo, thi = tlo-s.cfg.MinSpan/2, thi+s.cfg.MinSpan/2
		}
		span := thi - tlo
		lo = math.Exp(tlo - span*s.cfg.BottomPadding)
		hi = math.Exp(thi + span*s.cfg.TopPadding)
	} else {
		if lo == hi {
			lo, hi = lo-s.cfg.MinSpan/2, hi+s.cfg.MinSpan/2
		}
		span := hi - lo
		lo -= span * s.cfg.BottomPadding
		hi += span * s.cfg.TopPadding
	}

	lo, hi, err := s.checkDomain(op, s.cfg.Mode, lo, hi)
	if err != nil {
		return err
	}
	s.setDomain(lo, hi)
	s.autoscaleSpan = hi - lo
	return nil
}

// AxisDragScale zooms the domain around anchorPx. The span in transformed
// space is multiplied by exp(deltaPx/height*DragSensitivity), so dragging
// up (deltaPx < 0) zooms in. The price under anchorPx keeps its pixel.
// It returns the factor applied.
func (s *PriceScale) AxisDragScale(deltaPx, anchorPx float64) (float64, error) {
	if err := coord.CheckFinite("pricescale.AxisDragScale", "delta", deltaPx); err != nil {
		return 0, err
	}
	if err := coord.CheckFinite("pricescale.AxisDragScale", "anchor", anchorPx); err != nil {
		return 0, err
	}
	if deltaPx == 0 {
		return 1, nil
	}
	sp := s.Space()
	tlo, thi, err := sp.TransformedRange()
	if err != nil {
		return 0, err
	}
	anchor, err := sp.PixelToTransformed(anchorPx)
	if err != nil {
		return 0, err
	}

	factor := math.Exp(deltaPx / s.height * s.cfg.DragSensitivity)
	span := thi - tlo
	if target := span * factor; target < s.cfg.MinSpan {
		factor = s.cfg.MinSpan / span
	}
	if !coord.IsFinite(factor) || factor <= 0 {
		return 0, &coord.InputError{Op: "pricescale.AxisDragScale", Field: "factor", Value: factor, Reason: "must be finite and > 0"}
	}

	nlo := anchor + (tlo-anchor)*factor
	nhi := anchor + (thi-anchor)*factor
	if err := s.setTransformedDomain("pricescale.AxisDragScale", sp, nlo, nhi); err != nil {
		return 0, err
	}
	return factor, nil
}

// AxisDragPan moves the domain so the price under anchorPx follows the
// pointer to anchorPx+deltaPx.
func (s *PriceScale) AxisDragPan(deltaPx, anchorPx float64) error {
	if err := coord.CheckFinite("pricescale.AxisDragPan", "delta", deltaPx); err != nil {
		return err
	}
	if err := coord.CheckFinite("pricescale.AxisDragPan", "anchor", anchorPx); err != nil {
		return err
	}
	if deltaPx == 0 {
		return nil
	}
	sp := s.Space()
	tlo, thi, err := sp.TransformedRange()
	if err != nil {
		return err
	}
	from, err := sp.PixelToTransformed(anchorPx)
	if err != nil {
		return err
	}
	to, err := sp.PixelToTransformed(anchorPx + deltaPx)
	if err != nil {
		return err
	}
	shift := from - to
	return s.setTransformedDomain("pricescale.AxisDragPan", sp, tlo+shift, thi+shift)
}

// setTransformedDomain converts [tlo, thi] back to raw prices with the
// current base and stores them.
func (s *PriceScale) setTransformedDomain(op string, sp coord.PriceSpace, tlo, thi float64) error {
	lo, err := sp.Untransform(tlo)
	if err != nil {
		return err
	}
	hi, err := sp.Untransform(thi)
	if err != nil {
		return err
	}
	lo, hi, err = s.checkDomain(op, s.cfg.Mode, lo, hi)
	if err != nil {
		return err
	}
	s.setDomain(lo, hi)
	return nil
}
