package ggchart

import (
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/interaction"
)

// PanByPixels moves the content by dx pixels. Dragging right (dx > 0)
// reveals earlier times.
func (e *Engine) PanByPixels(dx float64) error {
	return e.trackVisible(func() error { return e.time.PanByPixels(dx) })
}

// ZoomAroundPixel divides the visible span by factor keeping the time
// under px fixed. factor > 1 zooms in.
func (e *Engine) ZoomAroundPixel(px, factor float64) error {
	return e.trackVisible(func() error { return e.time.ZoomAroundPixel(px, factor) })
}

// WheelZoom zooms around anchorPx by a vertical wheel delta in wheel
// units (120 per notch). Scrolling up (delta < 0) zooms in. Fractions of
// a notch are carried to the next call.
func (e *Engine) WheelZoom(delta, anchorPx float64) error {
	if err := coord.CheckFinite("ggchart.WheelZoom", "anchor", anchorPx); err != nil {
		return err
	}
	notches, err := e.input.Wheel.Normalize(delta)
	if err != nil || notches == 0 {
		return err
	}
	f, err := interaction.ZoomFactor(notches, e.wheelZoomRatio)
	if err != nil {
		return err
	}
	return e.ZoomAroundPixel(anchorPx, f)
}

// WheelPan pans by a horizontal wheel delta in wheel units. Positive
// deltas move toward later times.
func (e *Engine) WheelPan(delta float64) error {
	notches, err := e.panWhl.Normalize(delta)
	if err != nil || notches == 0 {
		return err
	}
	vs, ve := e.time.VisibleRange()
	dt, err := interaction.PanDelta(notches, ve-vs, e.wheelPanRatio)
	if err != nil {
		return err
	}
	return e.trackVisible(func() error { return e.time.PanByTime(dt) })
}

// PinchZoom zooms around anchorPx by a pinch scale factor. A factor of
// one does nothing.
func (e *Engine) PinchZoom(factor, anchorPx float64) error {
	f, ok, err := interaction.PinchFactor(factor)
	if err != nil || !ok {
		return err
	}
	return e.ZoomAroundPixel(anchorPx, f)
}

// FitToData shows all samples plus the configured padding.
func (e *Engine) FitToData() error {
	if len(e.points) == 0 && len(e.candles) == 0 {
		return ErrNoData
	}
	times := e.allTimes()
	pad := e.time.Config().Padding()
	return e.trackVisible(func() error { return e.time.FitToData(times, pad) })
}

// SetVisibleRange sets the visible time range.
func (e *Engine) SetVisibleRange(start, end float64) error {
	return e.trackVisible(func() error { return e.time.SetVisibleRange(start, end) })
}

// SetBarSpacing sets the pixel distance between bars, keeping the right
// edge.
func (e *Engine) SetBarSpacing(px float64) error {
	return e.trackVisible(func() error { return e.time.SetBarSpacing(px) })
}

// SetRightOffset places bars of empty space right of the newest bar.
func (e *Engine) SetRightOffset(bars float64) error {
	return e.trackVisible(func() error { return e.time.SetRightOffset(bars) })
}

// ScrollToRealtime brings the newest bar back to the right edge and
// reports whether the view moved.
func (e *Engine) ScrollToRealtime() bool {
	var moved bool
	_ = e.trackVisible(func() error {
		moved = e.time.ScrollToRealtime()
		return nil
	})
	return moved
}

// Resize changes the plot size.
func (e *Engine) Resize(width, height float64) error {
	if err := coord.CheckPositive("ggchart.Resize", "width", width); err != nil {
		return err
	}
	if err := coord.CheckPositive("ggchart.Resize", "height", height); err != nil {
		return err
	}
	if err := e.trackVisible(func() error { return e.time.Resize(width) }); err != nil {
		return err
	}
	return e.price.SetHeight(height)
}
