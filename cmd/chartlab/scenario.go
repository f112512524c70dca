package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/axis"
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/interaction"
	"github.com/gogpu/ggchart/pricescale"
)

// Scenario is the YAML document chartlab replays.
type Scenario struct {
	Width     float64        `yaml:"width"`
	Height    float64        `yaml:"height"`
	Locale    string         `yaml:"locale"`
	Crosshair string         `yaml:"crosshair"`
	// Measurer selects label measuring: face (default), shaping or
	// estimate.
	Measurer  string         `yaml:"measurer"`
	Price     PriceSection   `yaml:"price"`
	Time      TimeSection    `yaml:"time"`
	Data      DataSection    `yaml:"data"`
	Steps     []Step         `yaml:"steps"`
	Kinetic   *KineticParams `yaml:"kinetic"`
}

// PriceSection configures the price scale and its labels.
type PriceSection struct {
	Mode     string   `yaml:"mode"`
	Base     string   `yaml:"base"`
	BaseAt   *float64 `yaml:"base_value"`
	Inverted bool     `yaml:"inverted"`
	Format   string   `yaml:"format"`
	// Precision applies to the fixed format.
	Precision int     `yaml:"precision"`
	MinMove   float64 `yaml:"min_move"`
	TrimZeros bool    `yaml:"trim_zeros"`
}

// TimeSection configures time labels.
type TimeSection struct {
	Format        string        `yaml:"format"`
	Precision     *int          `yaml:"precision"`
	ShowSeconds   bool          `yaml:"show_seconds"`
	OffsetMinutes int           `yaml:"offset_minutes"`
	Session       *SessionHours `yaml:"session"`
}

// SessionHours is a trading session in minutes after midnight.
type SessionHours struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// KineticParams overrides the kinetic pan integrator.
type KineticParams struct {
	Decay        float64 `yaml:"decay"`
	StopVelocity float64 `yaml:"stop_velocity"`
	Hz           float64 `yaml:"hz"`
}

// DataSection holds inline samples or a generator.
type DataSection struct {
	Points   []PointYAML  `yaml:"points"`
	Candles  []CandleYAML `yaml:"candles"`
	Generate *Generator   `yaml:"generate"`
}

// PointYAML is one line sample.
type PointYAML struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// CandleYAML is one OHLC sample.
type CandleYAML struct {
	Time  float64 `yaml:"time"`
	Open  float64 `yaml:"open"`
	High  float64 `yaml:"high"`
	Low   float64 `yaml:"low"`
	Close float64 `yaml:"close"`
}

// Generator produces a seeded random walk.
type Generator struct {
	Kind  string  `yaml:"kind"`
	Count int     `yaml:"count"`
	Start float64 `yaml:"start"`
	Step  float64 `yaml:"step"`
	Price float64 `yaml:"price"`
	// Volatility is the standard deviation of one step as a fraction of
	// the price.
	Volatility float64 `yaml:"volatility"`
	Seed       uint64  `yaml:"seed"`
}

// Step is one interaction. Exactly one field is set.
type Step struct {
	Fit         bool        `yaml:"fit,omitempty"`
	Autoscale   bool        `yaml:"autoscale,omitempty"`
	Realtime    bool        `yaml:"realtime,omitempty"`
	Leave       bool        `yaml:"leave,omitempty"`
	PanStart    bool        `yaml:"pan_start,omitempty"`
	PanEnd      bool        `yaml:"pan_end,omitempty"`
	Pan         *float64    `yaml:"pan,omitempty"`
	WheelPan    *float64    `yaml:"wheel_pan,omitempty"`
	BarSpacing  *float64    `yaml:"bar_spacing,omitempty"`
	RightOffset *float64    `yaml:"right_offset,omitempty"`
	Zoom        *AnchorStep `yaml:"zoom,omitempty"`
	Wheel       *AnchorStep `yaml:"wheel,omitempty"`
	Pinch       *AnchorStep `yaml:"pinch,omitempty"`
	DragScale   *AnchorStep `yaml:"drag_scale,omitempty"`
	DragPan     *AnchorStep `yaml:"drag_pan,omitempty"`
	Visible     *RangeStep  `yaml:"visible,omitempty"`
	Domain      *RangeStep  `yaml:"domain,omitempty"`
	Pointer     *XYStep     `yaml:"pointer,omitempty"`
	Resize      *XYStep     `yaml:"resize,omitempty"`
	Mode        string      `yaml:"mode,omitempty"`
	Crosshair   string      `yaml:"crosshair,omitempty"`
	Append      *PointYAML  `yaml:"append,omitempty"`
	AppendBar   *CandleYAML `yaml:"append_candle,omitempty"`
	Kinetic     *KineticRun `yaml:"kinetic,omitempty"`
}

// AnchorStep is an amount applied around a pixel anchor.
type AnchorStep struct {
	Amount float64 `yaml:"amount"`
	Pixel  float64 `yaml:"pixel"`
}

// RangeStep is a [start, end] pair.
type RangeStep struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// XYStep is a pointer position or a plot size.
type XYStep struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// KineticRun flings the view and steps the integrator.
type KineticRun struct {
	Velocity float64 `yaml:"velocity"`
	Ticks    int     `yaml:"ticks"`
}

var errEmptyStep = errors.New("step sets no action")

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{Width: 800, Height: 400}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return s, nil
}

// options converts the scenario header to engine options.
func (s *Scenario) options() ([]ggchart.Option, error) {
	var opts []ggchart.Option

	pcfg := pricescale.DefaultConfig()
	pcfg.Inverted = s.Price.Inverted
	if s.Price.Mode != "" {
		m, err := coord.ParsePriceMode(s.Price.Mode)
		if err != nil {
			return nil, err
		}
		pcfg.Mode = m
	}
	switch {
	case s.Price.BaseAt != nil:
		pcfg.Base = pricescale.ExplicitBase(*s.Price.BaseAt)
	case s.Price.Base != "":
		src, err := pricescale.ParseBaseSource(s.Price.Base)
		if err != nil {
			return nil, err
		}
		pcfg.Base = pricescale.DynamicBase(src)
	}
	opts = append(opts, ggchart.WithPriceScaleConfig(pcfg))

	if s.Measurer != "" {
		m, err := newMeasurer(s.Measurer)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ggchart.WithMeasurer(m))
	}
	if s.Crosshair != "" {
		m, err := interaction.ParseCrosshairMode(s.Crosshair)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ggchart.WithCrosshairMode(m))
	}
	if s.Locale != "" {
		tag, err := language.Parse(s.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", s.Locale, err)
		}
		opts = append(opts, ggchart.WithLocale(tag))
	}
	if k := s.Kinetic; k != nil {
		kcfg := interaction.DefaultKineticConfig()
		if k.Decay != 0 {
			kcfg.Decay = k.Decay
		}
		if k.StopVelocity != 0 {
			kcfg.StopVelocity = k.StopVelocity
		}
		if k.Hz != 0 {
			kcfg.Dt = 1 / k.Hz
		}
		opts = append(opts, ggchart.WithKinetic(kcfg))
	}

	acfg := axis.DefaultConfig()
	if f := s.Price.Format; f != "" {
		p, err := axis.ParsePricePolicy(f)
		if err != nil {
			return nil, err
		}
		acfg.Price.Policy = p
	}
	if s.Price.Precision != 0 {
		acfg.Price.Precision = s.Price.Precision
	}
	if s.Price.MinMove != 0 {
		acfg.Price.MinMove = s.Price.MinMove
	}
	acfg.Price.TrimZeros = s.Price.TrimZeros

	if f := s.Time.Format; f != "" {
		p, err := axis.ParseTimePolicy(f)
		if err != nil {
			return nil, err
		}
		acfg.Time.Policy = p
	}
	if s.Time.Precision != nil {
		acfg.Time.Precision = *s.Time.Precision
	}
	acfg.Time.ShowSeconds = s.Time.ShowSeconds
	acfg.Time.OffsetMinutes = s.Time.OffsetMinutes
	if ss := s.Time.Session; ss != nil {
		acfg.Time.Session = &axis.Session{StartMinute: ss.Start, EndMinute: ss.End}
	}
	opts = append(opts, ggchart.WithAxisConfig(acfg))
	return opts, nil
}

// newMeasurer returns the label measurer called name, all at
// axis.DefaultFontSize.
func newMeasurer(name string) (axis.Measurer, error) {
	switch name {
	case "face":
		return axis.DefaultMeasurer()
	case "shaping":
		return axis.NewShapingMeasurer(goregular.TTF, axis.DefaultFontSize)
	case "estimate":
		return axis.EstimateMeasurer{FontSize: axis.DefaultFontSize}, nil
	}
	return nil, fmt.Errorf("unknown measurer %q (want face, shaping or estimate)", name)
}

// build creates the engine and loads the data without replaying steps.
func (s *Scenario) build(extra ...ggchart.Option) (*ggchart.Engine, error) {
	opts, err := s.options()
	if err != nil {
		return nil, err
	}
	e, err := ggchart.New(s.Width, s.Height, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	points, candles := s.Data.samples()
	if len(points) > 0 || len(candles) > 0 {
		if err := e.SetData(points, candles); err != nil {
			return nil, fmt.Errorf("load data: %w", err)
		}
	}
	return e, nil
}

// replay builds the engine and applies every step in order.
func (s *Scenario) replay(extra ...ggchart.Option) (*ggchart.Engine, error) {
	e, err := s.build(extra...)
	if err != nil {
		return nil, err
	}
	for i, st := range s.Steps {
		if err := st.apply(e); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return e, nil
}

func (d DataSection) samples() ([]coord.Point, []coord.Candle) {
	points := make([]coord.Point, 0, len(d.Points))
	for _, p := range d.Points {
		points = append(points, coord.Point{Time: p.Time, Value: p.Value})
	}
	candles := make([]coord.Candle, 0, len(d.Candles))
	for _, c := range d.Candles {
		candles = append(candles, coord.Candle{Time: c.Time, Open: c.Open, High: c.High, Low: c.Low, Close: c.Close})
	}
	if g := d.Generate; g != nil {
		p, c := g.generate()
		points = append(points, p...)
		candles = append(candles, c...)
	}
	return points, candles
}

// generate returns a geometric random walk. The same seed always yields
// the same series.
func (g *Generator) generate() ([]coord.Point, []coord.Candle) {
	step, price, vol := g.Step, g.Price, g.Volatility
	if step <= 0 {
		step = 60
	}
	if price <= 0 {
		price = 100
	}
	if vol <= 0 {
		vol = 0.01
	}
	rng := rand.New(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))
	next := func(p float64) float64 { return p * math.Exp(vol*rng.NormFloat64()) }

	var (
		points  []coord.Point
		candles []coord.Candle
	)
	for i := range g.Count {
		t := g.Start + float64(i)*step
		if g.Kind == "points" {
			price = next(price)
			points = append(points, coord.Point{Time: t, Value: price})
			continue
		}
		open := price
		hi, lo := open, open
		for range 4 {
			price = next(price)
			hi, lo = math.Max(hi, price), math.Min(lo, price)
		}
		candles = append(candles, coord.Candle{Time: t, Open: open, High: hi, Low: lo, Close: price})
	}
	return points, candles
}

func (st Step) apply(e *ggchart.Engine) error {
	switch {
	case st.Fit:
		return e.FitToData()
	case st.Autoscale:
		return e.Autoscale()
	case st.Realtime:
		e.ScrollToRealtime()
		return nil
	case st.Leave:
		e.PointerLeave()
		return nil
	case st.PanStart:
		e.PanStart()
		return nil
	case st.PanEnd:
		e.PanEnd()
		return nil
	case st.Pan != nil:
		return e.PanByPixels(*st.Pan)
	case st.WheelPan != nil:
		return e.WheelPan(*st.WheelPan)
	case st.BarSpacing != nil:
		return e.SetBarSpacing(*st.BarSpacing)
	case st.RightOffset != nil:
		return e.SetRightOffset(*st.RightOffset)
	case st.Zoom != nil:
		return e.ZoomAroundPixel(st.Zoom.Pixel, st.Zoom.Amount)
	case st.Wheel != nil:
		return e.WheelZoom(st.Wheel.Amount, st.Wheel.Pixel)
	case st.Pinch != nil:
		return e.PinchZoom(st.Pinch.Amount, st.Pinch.Pixel)
	case st.DragScale != nil:
		_, err := e.AxisDragScale(st.DragScale.Amount, st.DragScale.Pixel)
		return err
	case st.DragPan != nil:
		return e.AxisDragPan(st.DragPan.Amount, st.DragPan.Pixel)
	case st.Visible != nil:
		return e.SetVisibleRange(st.Visible.Start, st.Visible.End)
	case st.Domain != nil:
		return e.SetPriceDomain(st.Domain.Start, st.Domain.End)
	case st.Pointer != nil:
		return e.PointerMove(st.Pointer.X, st.Pointer.Y)
	case st.Resize != nil:
		return e.Resize(st.Resize.X, st.Resize.Y)
	case st.Mode != "":
		m, err := coord.ParsePriceMode(st.Mode)
		if err != nil {
			return err
		}
		return e.SetPriceMode(m)
	case st.Crosshair != "":
		m, err := interaction.ParseCrosshairMode(st.Crosshair)
		if err != nil {
			return err
		}
		return e.SetCrosshairMode(m)
	case st.Append != nil:
		return e.AppendPoint(coord.Point{Time: st.Append.Time, Value: st.Append.Value})
	case st.AppendBar != nil:
		c := st.AppendBar
		return e.AppendCandle(coord.Candle{Time: c.Time, Open: c.Open, High: c.High, Low: c.Low, Close: c.Close})
	case st.Kinetic != nil:
		if err := e.StartKineticPan(st.Kinetic.Velocity); err != nil {
			return err
		}
		_, err := e.StepKineticPan(st.Kinetic.Ticks)
		return err
	}
	return errEmptyStep
}
