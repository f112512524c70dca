package ggchart

import (
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/pricescale"
)

// SetPriceMode switches the price display mode. Entering log mode with a
// non-positive domain bound fails with ErrModeTransitionRejected.
func (e *Engine) SetPriceMode(m coord.PriceMode) error {
	if err := e.price.SetMode(m); err != nil {
		return err
	}
	e.resolveBase()
	return nil
}

// SetPriceDomain sets the raw price domain.
func (e *Engine) SetPriceDomain(p0, p1 float64) error {
	if err := e.price.SetDomain(p0, p1); err != nil {
		return err
	}
	e.resolveBase()
	return nil
}

// SetPriceBasePolicy sets how percentage and indexed modes pick their
// base price.
func (e *Engine) SetPriceBasePolicy(p pricescale.BasePolicy) error {
	if err := e.price.SetBasePolicy(p); err != nil {
		return err
	}
	e.resolveBase()
	return nil
}

// SetPriceInverted flips the price axis.
func (e *Engine) SetPriceInverted(inverted bool) {
	e.price.SetInverted(inverted)
}

// SetPriceMargins sets the empty bands above and below the price domain.
func (e *Engine) SetPriceMargins(m coord.Margins) error {
	return e.price.SetMargins(m)
}

// Autoscale fits the price domain to the samples in the visible range, or
// to all samples when none are visible. Candles take priority over points.
func (e *Engine) Autoscale() error {
	vs, ve := e.time.VisibleRange()
	switch {
	case len(e.candles) > 0:
		lo, hi := visibleSpan(len(e.candles), func(i int) float64 { return e.candles[i].Time }, vs, ve)
		vis := e.candles[lo:hi]
		if len(vis) == 0 {
			vis = e.candles
		}
		if err := e.price.AutoscaleFromCandles(vis); err != nil {
			return err
		}
	case len(e.points) > 0:
		lo, hi := visibleSpan(len(e.points), func(i int) float64 { return e.points[i].Time }, vs, ve)
		vis := e.points[lo:hi]
		if len(vis) == 0 {
			vis = e.points
		}
		values := make([]float64, len(vis))
		for i, p := range vis {
			values[i] = p.Value
		}
		if err := e.price.AutoscaleFrom(values); err != nil {
			return err
		}
	default:
		return ErrNoData
	}
	e.resolveBase()
	return nil
}

// AxisDragScale scales the price domain by a vertical drag on the price
// axis, keeping the price under anchorPx fixed. Dragging down (deltaPx >
// 0) compresses the view. It returns the factor applied to the span.
func (e *Engine) AxisDragScale(deltaPx, anchorPx float64) (float64, error) {
	f, err := e.price.AxisDragScale(deltaPx, anchorPx)
	if err != nil {
		return 0, err
	}
	e.resolveBase()
	return f, nil
}

// AxisDragPan shifts the price domain so the price under anchorPx
// follows the pointer by deltaPx.
func (e *Engine) AxisDragPan(deltaPx, anchorPx float64) error {
	if err := e.price.AxisDragPan(deltaPx, anchorPx); err != nil {
		return err
	}
	e.resolveBase()
	return nil
}
