package ggchart

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/gogpu/ggchart/axis"
	"github.com/gogpu/ggchart/interaction"
	"github.com/gogpu/ggchart/pricescale"
	"github.com/gogpu/ggchart/timescale"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := ggchart.New(800, 400,
//	    ggchart.WithCrosshairMode(interaction.CrosshairMagnet),
//	    ggchart.WithLocale(language.German),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	timeScale     timescale.Config
	priceScale    pricescale.Config
	kinetic       interaction.KineticConfig
	crosshair     interaction.CrosshairMode
	axis          axis.Config
	locale        language.Tag
	cacheCapacity int
	measurer      axis.Measurer
	logger        *slog.Logger

	wheelZoomRatio float64
	wheelPanRatio  float64
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		timeScale:      timescale.DefaultConfig(),
		priceScale:     pricescale.DefaultConfig(),
		kinetic:        interaction.DefaultKineticConfig(),
		crosshair:      interaction.CrosshairNormal,
		axis:           axis.DefaultConfig(),
		locale:         language.Und,
		wheelZoomRatio: 0.1,
		wheelPanRatio:  0.1,
	}
}

// WithTimeScaleConfig sets the time scale policies.
func WithTimeScaleConfig(cfg timescale.Config) Option {
	return func(o *options) {
		o.timeScale = cfg
	}
}

// WithPriceScaleConfig sets the price scale policies.
func WithPriceScaleConfig(cfg pricescale.Config) Option {
	return func(o *options) {
		o.priceScale = cfg
	}
}

// WithKinetic sets the kinetic pan integrator.
func WithKinetic(cfg interaction.KineticConfig) Option {
	return func(o *options) {
		o.kinetic = cfg
	}
}

// WithCrosshairMode sets the initial crosshair mode.
func WithCrosshairMode(m interaction.CrosshairMode) Option {
	return func(o *options) {
		o.crosshair = m
	}
}

// WithAxisConfig sets the tick planner tuning and label formats.
func WithAxisConfig(cfg axis.Config) Option {
	return func(o *options) {
		o.axis = cfg
	}
}

// WithLabelCacheCapacity sets the soft limit of the label cache.
// Values <= 0 select cache.DefaultCapacity.
func WithLabelCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}

// WithMeasurer sets the label measurer. The default measures with the Go
// Regular font at axis.DefaultFontSize.
func WithMeasurer(m axis.Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}

// WithLocale sets the label locale, overriding the one in the axis config.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// WithLogger installs l as the package logger (see SetLogger) when the
// engine is created. The logger is process-wide, not per engine: every
// Engine and scale logs through it, and the last New call given
// WithLogger wins.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithWheelRatios sets the fraction of the visible span one wheel notch
// zooms and pans by. Non-positive values keep the defaults (0.1).
func WithWheelRatios(zoom, pan float64) Option {
	return func(o *options) {
		if zoom > 0 {
			o.wheelZoomRatio = zoom
		}
		if pan > 0 {
			o.wheelPanRatio = pan
		}
	}
}
