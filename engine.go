package ggchart

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"golang.org/x/text/language"

	"github.com/gogpu/ggchart/axis"
	"github.com/gogpu/ggchart/cache"
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/interaction"
	"github.com/gogpu/ggchart/pricescale"
	"github.com/gogpu/ggchart/timescale"
)

// Engine owns the state of one chart view.
//
// Every mutating method either applies completely or returns an error and
// leaves the engine as it was. Moving the visible time range or changing
// the crosshair mode invalidates the label cache; data changes and
// visible range moves re-resolve a dynamic price base.
type Engine struct {
	time    *timescale.TimeScale
	price   *pricescale.PriceScale
	input   *interaction.State
	panWhl  interaction.Wheel
	labels  *cache.LabelCache
	planner *axis.Planner

	points  []coord.Point
	candles []coord.Candle
	// times are the snapping times: candle times when candles are
	// loaded, point times otherwise.
	times []float64
	// priceLo and priceHi bound the finite sample prices.
	priceLo, priceHi float64

	wheelZoomRatio float64
	wheelPanRatio  float64
}

// New creates an engine for a plot of width x height pixels.
//
// Example:
//
//	e, err := ggchart.New(800, 400, ggchart.WithCrosshairMode(interaction.CrosshairMagnet))
func New(width, height float64, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	if err := coord.CheckPositive("ggchart.New", "width", width); err != nil {
		return nil, err
	}
	if err := coord.CheckPositive("ggchart.New", "height", height); err != nil {
		return nil, err
	}

	ts, err := timescale.New(0, 1, width, o.timeScale)
	if err != nil {
		return nil, fmt.Errorf("ggchart: time scale: %w", err)
	}
	p0, p1 := 0.0, 1.0
	if o.priceScale.Mode == coord.PriceModeLog {
		p0, p1 = 1, 10
	}
	ps, err := pricescale.New(p0, p1, height, o.priceScale)
	if err != nil {
		return nil, fmt.Errorf("ggchart: price scale: %w", err)
	}
	in, err := interaction.NewState(o.kinetic, o.crosshair)
	if err != nil {
		return nil, fmt.Errorf("ggchart: interaction: %w", err)
	}

	m := o.measurer
	if m == nil {
		fm, err := axis.DefaultMeasurer()
		if err != nil {
			return nil, fmt.Errorf("ggchart: default measurer: %w", err)
		}
		m = fm
	}
	axisCfg := o.axis
	if o.locale != language.Und {
		axisCfg.Locale = o.locale
	}
	labels := cache.NewLabelCache(o.cacheCapacity)
	planner, err := axis.NewPlanner(axisCfg, m, labels)
	if err != nil {
		return nil, fmt.Errorf("ggchart: axis: %w", err)
	}

	Logger().Debug("ggchart: engine created", "width", width, "height", height,
		"price_mode", o.priceScale.Mode.String(), "crosshair", o.crosshair.String())
	return &Engine{
		time:           ts,
		price:          ps,
		input:          in,
		labels:         labels,
		planner:        planner,
		priceLo:        math.Inf(1),
		priceHi:        math.Inf(-1),
		wheelZoomRatio: o.wheelZoomRatio,
		wheelPanRatio:  o.wheelPanRatio,
	}, nil
}

// SetData replaces the samples. Both slices must be sorted by time; the
// engine keeps its own copies. The full time range and reference step
// follow the new data; the visible range is left to FitToData.
func (e *Engine) SetData(points []coord.Point, candles []coord.Candle) error {
	if i := unsortedAt(len(points), func(i int) float64 { return points[i].Time }); i >= 0 {
		return &InputError{Op: "ggchart.SetData", Field: "points", Value: float64(i), Reason: "must be sorted by time"}
	}
	if i := unsortedAt(len(candles), func(i int) float64 { return candles[i].Time }); i >= 0 {
		return &InputError{Op: "ggchart.SetData", Field: "candles", Value: float64(i), Reason: "must be sorted by time"}
	}

	e.points = slices.Clone(points)
	e.candles = slices.Clone(candles)
	e.rebuildIndex()

	err := e.trackVisible(func() error {
		lo, hi, ok := e.timeExtent()
		if !ok {
			return nil
		}
		if step, ok := timescale.ResolveReferenceStep(e.times); ok {
			if err := e.time.SetReferenceStep(step); err != nil {
				return err
			}
		}
		return e.time.SetFullRange(lo, hi)
	})
	e.resolveBase()
	Logger().Debug("ggchart: data set", "points", len(e.points), "candles", len(e.candles))
	return err
}

// AppendPoint adds a point after the last one. A point at the last
// point's time replaces it. When the view was tracking the newest bar it
// follows the new one.
func (e *Engine) AppendPoint(p coord.Point) error {
	if err := coord.CheckFinite("ggchart.AppendPoint", "time", p.Time); err != nil {
		return err
	}
	n := len(e.points)
	if n == 0 && len(e.candles) == 0 {
		return e.SetData([]coord.Point{p}, nil)
	}
	if n > 0 {
		last := e.points[n-1].Time
		switch {
		case p.Time < last:
			return &InputError{Op: "ggchart.AppendPoint", Field: "time", Value: p.Time, Reason: "must not precede the last point"}
		case p.Time == last:
			e.points[n-1] = p
			e.rebuildPriceExtent()
			e.resolveBase()
			return nil
		}
	}
	e.points = append(e.points, p)
	if len(e.candles) == 0 {
		e.times = append(e.times, p.Time)
	}
	e.extendPriceExtent(p.Value)
	return e.appended(p.Time)
}

// AppendCandle adds a candle after the last one. A candle at the last
// candle's time replaces it.
func (e *Engine) AppendCandle(c coord.Candle) error {
	if err := coord.CheckFinite("ggchart.AppendCandle", "time", c.Time); err != nil {
		return err
	}
	n := len(e.candles)
	if n == 0 && len(e.points) == 0 {
		return e.SetData(nil, []coord.Candle{c})
	}
	if n > 0 {
		last := e.candles[n-1].Time
		switch {
		case c.Time < last:
			return &InputError{Op: "ggchart.AppendCandle", Field: "time", Value: c.Time, Reason: "must not precede the last candle"}
		case c.Time == last:
			e.candles[n-1] = c
			e.rebuildPriceExtent()
			e.resolveBase()
			return nil
		}
	}
	e.candles = append(e.candles, c)
	if n == 0 {
		e.rebuildIndex()
	} else {
		e.times = append(e.times, c.Time)
		e.extendPriceExtent(c.Low, c.High, c.Close)
	}
	return e.appended(c.Time)
}

func (e *Engine) appended(t float64) error {
	err := e.trackVisible(func() error {
		_, err := e.time.AppendRealtime(t)
		return err
	})
	e.resolveBase()
	return err
}

// rebuildIndex recomputes the snapping times and the price extent.
func (e *Engine) rebuildIndex() {
	e.times = e.times[:0]
	if len(e.candles) > 0 {
		for _, c := range e.candles {
			e.times = append(e.times, c.Time)
		}
	} else {
		for _, p := range e.points {
			e.times = append(e.times, p.Time)
		}
	}
	e.rebuildPriceExtent()
}

func (e *Engine) rebuildPriceExtent() {
	e.priceLo, e.priceHi = math.Inf(1), math.Inf(-1)
	for _, p := range e.points {
		e.extendPriceExtent(p.Value)
	}
	for _, c := range e.candles {
		e.extendPriceExtent(c.Low, c.High, c.Close)
	}
}

func (e *Engine) extendPriceExtent(values ...float64) {
	for _, v := range values {
		if coord.IsFinite(v) {
			e.priceLo = math.Min(e.priceLo, v)
			e.priceHi = math.Max(e.priceHi, v)
		}
	}
}

// timeExtent returns the finite time extent over both series.
func (e *Engine) timeExtent() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range e.points {
		if coord.IsFinite(p.Time) {
			lo, hi = math.Min(lo, p.Time), math.Max(hi, p.Time)
		}
	}
	for _, c := range e.candles {
		if coord.IsFinite(c.Time) {
			lo, hi = math.Min(lo, c.Time), math.Max(hi, c.Time)
		}
	}
	return lo, hi, lo <= hi
}

// allTimes returns the times of both series.
func (e *Engine) allTimes() []float64 {
	out := make([]float64, 0, len(e.points)+len(e.candles))
	for _, p := range e.points {
		out = append(out, p.Time)
	}
	for _, c := range e.candles {
		out = append(out, c.Time)
	}
	return out
}

// unsortedAt returns the first index whose time precedes its
// predecessor, or -1.
func unsortedAt(n int, at func(int) float64) int {
	for i := 1; i < n; i++ {
		if at(i) < at(i-1) {
			return i
		}
	}
	return -1
}

// visibleSpan returns the [lo, hi) index range of sorted times inside
// [start, end].
func visibleSpan(n int, at func(int) float64, start, end float64) (lo, hi int) {
	lo = sort.Search(n, func(i int) bool { return at(i) >= start })
	hi = sort.Search(n, func(i int) bool { return at(i) > end })
	return lo, hi
}

// trackVisible runs fn and, when the visible range moved, invalidates
// the label cache and re-resolves the price base.
func (e *Engine) trackVisible(fn func() error) error {
	s0, e0 := e.time.VisibleRange()
	err := fn()
	if s1, e1 := e.time.VisibleRange(); s1 != s0 || e1 != e0 {
		e.labels.InvalidateAll()
		e.resolveBase()
	}
	return err
}

// resolveBase re-resolves a dynamic price base against the data and the
// visible range.
func (e *Engine) resolveBase() {
	vs, ve := e.time.VisibleRange()
	e.price.ResolveBase(
		pricescale.Series{Points: e.points, Candles: e.candles},
		&pricescale.VisibleWindow{Start: vs, End: ve},
	)
}
