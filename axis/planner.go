package axis

import (
	"math"

	"golang.org/x/text/language"

	"github.com/gogpu/ggchart/cache"
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/internal/logging"
)

// Tick is one planned axis tick.
type Tick struct {
	// Position is the pixel along the axis.
	Position float64
	// Value is the logical time or raw price.
	Value float64
	// Display is the value in display space: the transformed value for
	// percentage and indexed price modes, Value otherwise.
	Display float64
	Major   bool
	Label   string
}

// Plan is the tick layout of one axis for one frame.
type Plan struct {
	Axis  cache.Axis
	Ticks []Tick
	// TargetCount is the tick count the ladder aimed for.
	TargetCount int
	// MinSpacing is the spacing floor used for selection.
	MinSpacing float64
	// Density is the zoom density scale applied to the target spacing.
	Density float64
}

// Config holds planner tuning.
type Config struct {
	TimeTargetSpacing  float64
	TimeMinSpacing     float64
	PriceTargetSpacing float64
	PriceMinSpacing    float64

	MinTicks      int
	MaxTimeTicks  int
	MaxPriceTicks int

	// LabelPadding is added to label extents when computing the floor.
	LabelPadding float64
	// MaxTimeLabelWidth caps the widest time label used for the floor.
	MaxTimeLabelWidth float64

	TimeCurve  Curve
	PriceCurve Curve

	Locale language.Tag
	Time   TimeFormat
	Price  PriceFormat
}

// DefaultConfig returns the default planner tuning.
func DefaultConfig() Config {
	return Config{
		TimeTargetSpacing:  72,
		TimeMinSpacing:     56,
		PriceTargetSpacing: 26,
		PriceMinSpacing:    22,
		MinTicks:           2,
		MaxTimeTicks:       12,
		MaxPriceTicks:      16,
		LabelPadding:       4,
		MaxTimeLabelWidth:  (DefaultFontSize + 4) * 5,
		TimeCurve:          TimeCurve(),
		PriceCurve:         PriceCurve(),
		Locale:             language.English,
		Time:               DefaultTimeFormat(),
		Price:              DefaultPriceFormat(),
	}
}

// Validate checks spacings, counts and formats.
func (c Config) Validate() error {
	const op = "axis.Config"
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"time_target_spacing", c.TimeTargetSpacing},
		{"time_min_spacing", c.TimeMinSpacing},
		{"price_target_spacing", c.PriceTargetSpacing},
		{"price_min_spacing", c.PriceMinSpacing},
		{"max_time_label_width", c.MaxTimeLabelWidth},
	} {
		if err := coord.CheckPositive(op, f.name, f.v); err != nil {
			return err
		}
	}
	if !coord.IsFinite(c.LabelPadding) || c.LabelPadding < 0 {
		return &coord.InputError{Op: op, Field: "label_padding", Value: c.LabelPadding, Reason: "must be finite and >= 0"}
	}
	if c.MinTicks < 1 {
		return &coord.InputError{Op: op, Field: "min_ticks", Value: float64(c.MinTicks), Reason: "must be >= 1"}
	}
	if c.MaxTimeTicks < c.MinTicks {
		return &coord.InputError{Op: op, Field: "max_time_ticks", Value: float64(c.MaxTimeTicks), Reason: "must be >= min_ticks"}
	}
	if c.MaxPriceTicks < c.MinTicks {
		return &coord.InputError{Op: op, Field: "max_price_ticks", Value: float64(c.MaxPriceTicks), Reason: "must be >= min_ticks"}
	}
	if err := c.Time.Validate(); err != nil {
		return err
	}
	return c.Price.Validate()
}

// TimeInput describes the time axis for one frame.
type TimeInput struct {
	VisibleStart float64
	VisibleEnd   float64
	// FullStart and FullEnd give the data range; an empty range disables
	// density scaling.
	FullStart float64
	FullEnd   float64
	Width     float64
}

// PriceInput describes the price axis for one frame.
type PriceInput struct {
	Space coord.PriceSpace
	// DataSpan is the raw price span of the series; <= 0 disables density
	// scaling.
	DataSpan float64
}

// Planner builds tick plans and formats their labels through a shared
// LabelCache.
//
// It is not safe for concurrent use.
type Planner struct {
	cfg      Config
	measurer Measurer
	labels   *cache.LabelCache
	timeFmt  *TimeFormatter
	priceFmt *PriceFormatter
}

// NewPlanner returns a planner. A nil measurer uses EstimateMeasurer at
// DefaultFontSize; a nil cache gets a private one.
func NewPlanner(cfg Config, m Measurer, labels *cache.LabelCache) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tf, err := NewTimeFormatter(cfg.Locale, cfg.Time)
	if err != nil {
		return nil, err
	}
	pf, err := NewPriceFormatter(cfg.Locale, cfg.Price)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = EstimateMeasurer{FontSize: DefaultFontSize}
	}
	if labels == nil {
		labels = cache.NewLabelCache(0)
	}
	return &Planner{cfg: cfg, measurer: m, labels: labels, timeFmt: tf, priceFmt: pf}, nil
}

// Config returns the planner tuning.
func (p *Planner) Config() Config { return p.cfg }

// Labels returns the label cache.
func (p *Planner) Labels() *cache.LabelCache { return p.labels }

// Measurer returns the label measurer.
func (p *Planner) Measurer() Measurer { return p.measurer }

// PlanTime plans the time axis.
func (p *Planner) PlanTime(in TimeInput) (Plan, error) {
	const op = "axis.PlanTime"
	if err := coord.CheckPositive(op, "width", in.Width); err != nil {
		return Plan{}, err
	}
	if err := coord.CheckFinite(op, "visible_start", in.VisibleStart); err != nil {
		return Plan{}, err
	}
	if err := coord.CheckFinite(op, "visible_end", in.VisibleEnd); err != nil {
		return Plan{}, err
	}
	span := in.VisibleEnd - in.VisibleStart
	if err := coord.CheckPositive(op, "visible_span", span); err != nil {
		return Plan{}, err
	}

	density := 1.0
	if full := in.FullEnd - in.FullStart; full > 0 && coord.IsFinite(full) {
		density = DensityScale(span/full, p.cfg.TimeCurve)
	}
	count := TargetCountWithDensity(in.Width, p.cfg.TimeTargetSpacing, p.cfg.TimeMinSpacing,
		p.cfg.MinTicks, p.cfg.MaxTimeTicks, density)

	tf := p.timeFmt.Config()
	var cands []candidate
	if tf.Policy == TimeLogical {
		cands = linearLadder(in.VisibleStart, in.VisibleEnd, count)
	} else {
		cands = utcLadder(in.VisibleStart, in.VisibleEnd, count, tf.offsetSeconds(), tf.Session)
	}

	ticks := make([]Tick, 0, len(cands))
	var widest float64
	for _, c := range cands {
		label := p.timeLabel(cache.AxisTime, c.value, span, c.step)
		widest = max(widest, p.measurer.Width(label))
		ticks = append(ticks, Tick{
			Position: (c.value - in.VisibleStart) / span * in.Width,
			Value:    c.value,
			Display:  c.value,
			Major:    c.major,
			Label:    label,
		})
	}

	floor := max(p.cfg.TimeMinSpacing, min(widest, p.cfg.MaxTimeLabelWidth)+p.cfg.LabelPadding)
	sel := SelectPrioritized(ticks, floor)
	logging.Logger().Debug("time axis planned",
		"candidates", len(cands), "selected", len(sel), "target", count, "floor", floor, "density", density)
	return Plan{Axis: cache.AxisTime, Ticks: sel, TargetCount: count, MinSpacing: floor, Density: density}, nil
}

// PlanPrice plans the price axis. Log mode ticks sit on a decade ladder
// in raw prices; other modes use a 1/2/5 ladder in display space.
func (p *Planner) PlanPrice(in PriceInput) (Plan, error) {
	s := in.Space
	if err := s.Validate(); err != nil {
		return Plan{}, err
	}
	t0, t1, _ := s.TransformedRange()
	px0, _ := s.TransformedToPixel(t0)
	px1, _ := s.TransformedToPixel(t1)
	axisPx := math.Abs(px1 - px0)

	density := 1.0
	if in.DataSpan > 0 && coord.IsFinite(in.DataSpan) {
		density = DensityScale(math.Abs(s.Max-s.Min)/in.DataSpan, p.cfg.PriceCurve)
	}
	count := TargetCountWithDensity(axisPx, p.cfg.PriceTargetSpacing, p.cfg.PriceMinSpacing,
		p.cfg.MinTicks, p.cfg.MaxPriceTicks, density)

	logMode := s.Mode == coord.PriceModeLog
	var cands []candidate
	if logMode {
		cands = logLadder(min(s.Min, s.Max), max(s.Min, s.Max), count)
	} else {
		cands = linearLadder(min(t0, t1), max(t0, t1), count)
	}

	ticks := make([]Tick, 0, len(cands))
	for _, c := range cands {
		var value, pos float64
		var err error
		if logMode {
			value = c.value
			pos, err = s.ToPixel(value)
		} else {
			if value, err = s.Untransform(c.value); err == nil {
				pos, err = s.TransformedToPixel(c.value)
			}
		}
		if err != nil {
			continue
		}
		ticks = append(ticks, Tick{
			Position: pos,
			Value:    value,
			Display:  c.value,
			Major:    c.major,
			Label:    p.priceLabel(cache.AxisPrice, c.value, c.step, s.Mode),
		})
	}

	floor := max(p.cfg.PriceMinSpacing, p.measurer.LineHeight()+p.cfg.LabelPadding)
	sel := SelectPrioritized(ticks, floor)
	logging.Logger().Debug("price axis planned",
		"mode", s.Mode.String(), "candidates", len(cands), "selected", len(sel), "target", count, "floor", floor)
	return Plan{Axis: cache.AxisPrice, Ticks: sel, TargetCount: count, MinSpacing: floor, Density: density}, nil
}

// TimeLabel formats a crosshair time label.
func (p *Planner) TimeLabel(t, span, step float64) string {
	return p.timeLabel(cache.AxisCrosshairTime, t, span, step)
}

// PriceLabel formats a crosshair price label from its display value.
func (p *Planner) PriceLabel(display, step float64, mode coord.PriceMode) string {
	return p.priceLabel(cache.AxisCrosshairPrice, display, step, mode)
}

func (p *Planner) timeLabel(axis cache.Axis, t, span, step float64) string {
	key := p.labels.Key(axis, uint8(p.timeFmt.format.Policy), p.timeFmt.keySpan(span, step), t)
	return p.labels.GetOrFormat(key, func() string {
		return p.timeFmt.Format(t, span, step)
	})
}

func (p *Planner) priceLabel(axis cache.Axis, display, step float64, mode coord.PriceMode) string {
	key := p.labels.Key(axis, uint8(mode), p.priceFmt.keyStep(step), display)
	return p.labels.GetOrFormat(key, func() string {
		return p.priceFmt.Format(display, step, mode)
	})
}
