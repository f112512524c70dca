package ggchart

import (
	"math"

	"github.com/gogpu/ggchart/axis"
	"github.com/gogpu/ggchart/cache"
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/interaction"
	"github.com/gogpu/ggchart/pricescale"
	"github.com/gogpu/ggchart/timescale"
)

// TimeScale returns a snapshot of the time scale.
func (e *Engine) TimeScale() timescale.State { return e.time.State() }

// PriceScale returns a snapshot of the price scale.
func (e *Engine) PriceScale() pricescale.State { return e.price.State() }

// TimeToPixel maps a time to an x coordinate.
func (e *Engine) TimeToPixel(t float64) (float64, error) { return e.time.TimeToPixel(t) }

// PixelToTime maps an x coordinate to a time.
func (e *Engine) PixelToTime(x float64) (float64, error) { return e.time.PixelToTime(x) }

// PriceToPixel maps a raw price to a y coordinate.
func (e *Engine) PriceToPixel(p float64) (float64, error) { return e.price.PriceToPixel(p) }

// PixelToPrice maps a y coordinate to a raw price.
func (e *Engine) PixelToPrice(y float64) (float64, error) { return e.price.PixelToPrice(y) }

// CrosshairState is a snapshot of the crosshair.
type CrosshairState struct {
	Mode interaction.CrosshairMode
	// X and Y are where the crosshair lines are drawn.
	X, Y    float64
	Visible bool
	Snap    interaction.Snap
	Snapped bool
}

// Crosshair returns a snapshot of the crosshair.
func (e *Engine) Crosshair() CrosshairState {
	c := &e.input.Crosshair
	x, y, ok := c.Position()
	snap, snapped := c.Snap()
	return CrosshairState{Mode: c.Mode(), X: x, Y: y, Visible: ok, Snap: snap, Snapped: snapped}
}

// Axes holds the tick plans of both axes for one frame.
type Axes struct {
	Time  axis.Plan
	Price axis.Plan
}

// BuildAxes plans the ticks and labels of both axes.
func (e *Engine) BuildAxes() (Axes, error) {
	vs, ve := e.time.VisibleRange()
	fs, fe := e.time.FullRange()
	tp, err := e.planner.PlanTime(axis.TimeInput{
		VisibleStart: vs,
		VisibleEnd:   ve,
		FullStart:    fs,
		FullEnd:      fe,
		Width:        e.time.Width(),
	})
	if err != nil {
		return Axes{}, err
	}
	var dataSpan float64
	if e.priceHi > e.priceLo {
		dataSpan = e.priceHi - e.priceLo
	}
	pp, err := e.planner.PlanPrice(axis.PriceInput{Space: e.price.Space(), DataSpan: dataSpan})
	if err != nil {
		return Axes{}, err
	}
	return Axes{Time: tp, Price: pp}, nil
}

// CrosshairLabels holds the axis labels of the crosshair.
type CrosshairLabels struct {
	Time  string
	Price string
}

// CrosshairLabels formats the crosshair's time and price labels. ok is
// false while the crosshair is not shown.
func (e *Engine) CrosshairLabels() (labels CrosshairLabels, ok bool) {
	x, y, ok := e.input.Crosshair.Position()
	if !ok {
		return CrosshairLabels{}, false
	}
	var t, price float64
	if snap, snapped := e.input.Crosshair.Snap(); snapped {
		t, price = snap.Time, snap.Price
	} else {
		var err error
		if t, err = e.time.PixelToTime(x); err != nil {
			return CrosshairLabels{}, false
		}
		if price, err = e.price.PixelToPrice(y); err != nil {
			return CrosshairLabels{}, false
		}
	}

	vs, ve := e.time.VisibleRange()
	span := ve - vs
	sp := e.price.Space()
	display, step := price, math.Abs(price)/100
	if sp.Mode != coord.PriceModeLog {
		d, err := sp.Transform(price)
		if err != nil {
			return CrosshairLabels{}, false
		}
		lo, hi, _ := sp.TransformedRange()
		display, step = d, math.Abs(hi-lo)/100
	}
	return CrosshairLabels{
		Time:  e.planner.TimeLabel(t, span, span/10),
		Price: e.planner.PriceLabel(display, step, sp.Mode),
	}, true
}

// Diagnostics is a read-only summary of engine state.
type Diagnostics struct {
	LabelCache cache.Stats

	Points  int
	Candles int

	VisibleStart float64
	VisibleEnd   float64
	BarSpacing   float64
	RightOffset  float64

	PriceMode coord.PriceMode
	PriceMin  float64
	PriceMax  float64
	PriceBase float64

	CrosshairMode interaction.CrosshairMode
	Panning       bool
	KineticActive bool
}

// Diagnostics returns a summary of the engine state.
func (e *Engine) Diagnostics() Diagnostics {
	vs, ve := e.time.VisibleRange()
	lo, hi := e.price.Domain()
	return Diagnostics{
		LabelCache:    e.labels.Stats(),
		Points:        len(e.points),
		Candles:       len(e.candles),
		VisibleStart:  vs,
		VisibleEnd:    ve,
		BarSpacing:    e.time.BarSpacing(),
		RightOffset:   e.time.RightOffset(),
		PriceMode:     e.price.Mode(),
		PriceMin:      lo,
		PriceMax:      hi,
		PriceBase:     e.price.Base(),
		CrosshairMode: e.input.Crosshair.Mode(),
		Panning:       e.input.Mode() == interaction.ModePanning,
		KineticActive: e.input.Kinetic.Active(),
	}
}

// IndexSpace returns the bar-index view of the time scale.
func (e *Engine) IndexSpace() coord.TimeIndexSpace { return e.time.IndexSpace() }
