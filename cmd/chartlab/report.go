package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/axis"
)

// Report is what chartlab prints after a replay.
type Report struct {
	Visible    [2]float64     `yaml:"visible"`
	Domain     [2]float64     `yaml:"domain"`
	BarSpacing float64        `yaml:"bar_spacing"`
	PriceMode  string         `yaml:"price_mode"`
	PriceBase  float64        `yaml:"price_base"`
	TimeTicks  []TickReport   `yaml:"time_ticks"`
	PriceTicks []TickReport   `yaml:"price_ticks"`
	Crosshair  *CrosshairInfo `yaml:"crosshair,omitempty"`
	Cache      CacheReport    `yaml:"label_cache"`
}

// TickReport is one planned tick.
type TickReport struct {
	Pos   float64 `yaml:"pos"`
	Value float64 `yaml:"value"`
	Label string  `yaml:"label"`
	Major bool    `yaml:"major,omitempty"`
}

// CrosshairInfo is the visible crosshair.
type CrosshairInfo struct {
	Mode  string  `yaml:"mode"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Time  string  `yaml:"time"`
	Price string  `yaml:"price"`
	Index *int    `yaml:"snap_index,omitempty"`
}

// CacheReport summarizes the label cache.
type CacheReport struct {
	Entries    int     `yaml:"entries"`
	Hits       uint64  `yaml:"hits"`
	Misses     uint64  `yaml:"misses"`
	HitRate    float64 `yaml:"hit_rate"`
	Generation uint64  `yaml:"generation"`
}

func buildReport(e *ggchart.Engine) (*Report, error) {
	axes, err := e.BuildAxes()
	if err != nil {
		return nil, fmt.Errorf("build axes: %w", err)
	}
	d := e.Diagnostics()
	r := &Report{
		Visible:    [2]float64{d.VisibleStart, d.VisibleEnd},
		Domain:     [2]float64{d.PriceMin, d.PriceMax},
		BarSpacing: d.BarSpacing,
		PriceMode:  d.PriceMode.String(),
		PriceBase:  d.PriceBase,
		TimeTicks:  tickReports(axes.Time.Ticks),
		PriceTicks: tickReports(axes.Price.Ticks),
	}
	if labels, ok := e.CrosshairLabels(); ok {
		c := e.Crosshair()
		info := &CrosshairInfo{Mode: c.Mode.String(), X: c.X, Y: c.Y, Time: labels.Time, Price: labels.Price}
		if c.Snapped {
			idx := c.Snap.Index
			info.Index = &idx
		}
		r.Crosshair = info
	}
	// Read after BuildAxes so the counters include this frame.
	lc := e.Diagnostics().LabelCache
	r.Cache = CacheReport{Entries: lc.Len, Hits: lc.Hits, Misses: lc.Misses, HitRate: lc.HitRate, Generation: lc.Generation}
	return r, nil
}

func tickReports(ticks []axis.Tick) []TickReport {
	out := make([]TickReport, len(ticks))
	for i, t := range ticks {
		out[i] = TickReport{Pos: t.Position, Value: t.Value, Label: t.Label, Major: t.Major}
	}
	return out
}

func writeYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "visible\t[%g, %g]\tbar spacing %.2fpx\n", r.Visible[0], r.Visible[1], r.BarSpacing)
	fmt.Fprintf(tw, "price\t[%g, %g]\t%s base %g\n", r.Domain[0], r.Domain[1], r.PriceMode, r.PriceBase)
	fmt.Fprintln(tw)
	writeTicks(tw, "time", r.TimeTicks)
	writeTicks(tw, "price", r.PriceTicks)
	if c := r.Crosshair; c != nil {
		fmt.Fprintf(tw, "crosshair\t%s\t(%.1f, %.1f)\t%s\t%s\n", c.Mode, c.X, c.Y, c.Time, c.Price)
	}
	fmt.Fprintf(tw, "label cache\t%d entries\thit rate %.2f\tgeneration %d\n",
		r.Cache.Entries, r.Cache.HitRate, r.Cache.Generation)
	return tw.Flush()
}

func writeTicks(w io.Writer, name string, ticks []TickReport) {
	for _, t := range ticks {
		mark := ""
		if t.Major {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%8.1f\t%s%s\n", name, t.Pos, t.Label, mark)
	}
	fmt.Fprintln(w)
}
