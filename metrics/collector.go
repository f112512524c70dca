// Package metrics exports engine diagnostics to Prometheus.
//
// The engine is single-threaded, so the collector never touches it
// directly. It calls a function supplied by the host on every scrape; the
// host serializes that call with its own use of the engine, typically by
// taking the lock that guards the engine or by returning a snapshot saved
// at the end of the last frame.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/ggchart"
)

const namespace = "ggchart"

// Source returns the diagnostics to export.
type Source func() ggchart.Diagnostics

// Collector is a prometheus.Collector over engine diagnostics.
type Collector struct {
	source Source

	cacheEntries    *prometheus.Desc
	cacheCapacity   *prometheus.Desc
	cacheHits       *prometheus.Desc
	cacheMisses     *prometheus.Desc
	cacheEvictions  *prometheus.Desc
	cacheGeneration *prometheus.Desc
	samples         *prometheus.Desc
	visibleSpan     *prometheus.Desc
	barSpacing      *prometheus.Desc
	rightOffset     *prometheus.Desc
	priceMode       *prometheus.Desc
	priceBase       *prometheus.Desc
	crosshairMode   *prometheus.Desc
	panning         *prometheus.Desc
	kineticActive   *prometheus.Desc
}

// NewCollector returns a collector reading from src. constLabels are
// attached to every metric, so several charts can share a registry when
// each passes e.g. a distinct "chart" label.
func NewCollector(src Source, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, variable, constLabels)
	}
	return &Collector{
		source: src,

		cacheEntries:    desc("label_cache_entries", "Live entries in the label cache."),
		cacheCapacity:   desc("label_cache_capacity", "Soft limit of the label cache."),
		cacheHits:       desc("label_cache_hits_total", "Label cache hits."),
		cacheMisses:     desc("label_cache_misses_total", "Label cache misses."),
		cacheEvictions:  desc("label_cache_evictions_total", "Label cache entries evicted."),
		cacheGeneration: desc("label_cache_generation", "Current label cache generation."),
		samples:         desc("samples", "Loaded samples by series kind.", "kind"),
		visibleSpan:     desc("visible_span", "Width of the visible time range in time units."),
		barSpacing:      desc("bar_spacing_pixels", "Pixel distance between bars."),
		rightOffset:     desc("right_offset_bars", "Bars between the newest bar and the right edge."),
		priceMode:       desc("price_mode", "Active price mode, 1 for the active one.", "mode"),
		priceBase:       desc("price_base", "Resolved base price."),
		crosshairMode:   desc("crosshair_mode", "Active crosshair mode, 1 for the active one.", "mode"),
		panning:         desc("panning", "1 while a drag is in progress."),
		kineticActive:   desc("kinetic_active", "1 while a kinetic pan is running."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.cacheEntries, c.cacheCapacity, c.cacheHits, c.cacheMisses,
		c.cacheEvictions, c.cacheGeneration, c.samples, c.visibleSpan,
		c.barSpacing, c.rightOffset, c.priceMode, c.priceBase,
		c.crosshairMode, c.panning, c.kineticActive,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	d := c.source()
	gauge := func(desc *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v, labels...)
	}
	counter := func(desc *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v))
	}

	lc := d.LabelCache
	gauge(c.cacheEntries, float64(lc.Len))
	gauge(c.cacheCapacity, float64(lc.Capacity))
	counter(c.cacheHits, lc.Hits)
	counter(c.cacheMisses, lc.Misses)
	counter(c.cacheEvictions, lc.Evictions)
	gauge(c.cacheGeneration, float64(lc.Generation))

	gauge(c.samples, float64(d.Points), "points")
	gauge(c.samples, float64(d.Candles), "candles")
	gauge(c.visibleSpan, d.VisibleEnd-d.VisibleStart)
	gauge(c.barSpacing, d.BarSpacing)
	gauge(c.rightOffset, d.RightOffset)
	gauge(c.priceMode, 1, d.PriceMode.String())
	gauge(c.priceBase, d.PriceBase)
	gauge(c.crosshairMode, 1, d.CrosshairMode.String())
	gauge(c.panning, boolValue(d.Panning))
	gauge(c.kineticActive, boolValue(d.KineticActive))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
