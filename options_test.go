package ggchart

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/gogpu/ggchart/axis"
	"github.com/gogpu/ggchart/cache"
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/interaction"
	"github.com/gogpu/ggchart/pricescale"
	"github.com/gogpu/ggchart/timescale"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.crosshair != interaction.CrosshairNormal {
		t.Errorf("crosshair = %v, want normal", o.crosshair)
	}
	if o.locale != language.Und {
		t.Errorf("locale = %v, want und", o.locale)
	}
	if o.wheelZoomRatio != 0.1 || o.wheelPanRatio != 0.1 {
		t.Errorf("wheel ratios = %v/%v, want 0.1/0.1", o.wheelZoomRatio, o.wheelPanRatio)
	}
	if o.measurer != nil || o.logger != nil {
		t.Error("measurer and logger should default to nil")
	}
}

func TestWithWheelRatios(t *testing.T) {
	tests := []struct {
		name      string
		zoom, pan float64
		wantZoom  float64
		wantPan   float64
	}{
		{"both", 0.2, 0.3, 0.2, 0.3},
		{"zero keeps default", 0, 0.3, 0.1, 0.3},
		{"negative keeps default", 0.2, -1, 0.2, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			WithWheelRatios(tt.zoom, tt.pan)(&o)
			if o.wheelZoomRatio != tt.wantZoom || o.wheelPanRatio != tt.wantPan {
				t.Errorf("ratios = %v/%v, want %v/%v", o.wheelZoomRatio, o.wheelPanRatio, tt.wantZoom, tt.wantPan)
			}
		})
	}
}

func TestNewAppliesOptions(t *testing.T) {
	tcfg := timescale.DefaultConfig()
	tcfg.MaxBarSpacing = 40
	pcfg := pricescale.DefaultConfig()
	pcfg.Mode = coord.PriceModeLog

	e, err := New(640, 480,
		WithTimeScaleConfig(tcfg),
		WithPriceScaleConfig(pcfg),
		WithCrosshairMode(interaction.CrosshairMagnet),
		WithLabelCacheCapacity(64),
		WithMeasurer(axis.EstimateMeasurer{FontSize: 10}),
		WithLocale(language.German),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := e.time.Config().MaxBarSpacing; got != 40 {
		t.Errorf("MaxBarSpacing = %v, want 40", got)
	}
	ps := e.PriceScale()
	if ps.Mode != coord.PriceModeLog || ps.Min != 1 || ps.Max != 10 {
		t.Errorf("price scale = %+v, want log over [1, 10]", ps)
	}
	if e.Crosshair().Mode != interaction.CrosshairMagnet {
		t.Errorf("crosshair mode = %v, want magnet", e.Crosshair().Mode)
	}
	if got := e.Diagnostics().LabelCache.Capacity; got != 64 {
		t.Errorf("cache capacity = %d, want 64", got)
	}
	if got := e.planner.Config().Locale; got != language.German {
		t.Errorf("locale = %v, want de", got)
	}
	if _, ok := e.planner.Measurer().(axis.EstimateMeasurer); !ok {
		t.Errorf("measurer = %T, want EstimateMeasurer", e.planner.Measurer())
	}
}

func TestNewDefaultCacheCapacity(t *testing.T) {
	e, err := New(100, 100, WithMeasurer(axis.EstimateMeasurer{FontSize: 12}))
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Diagnostics().LabelCache.Capacity; got != cache.DefaultCapacity {
		t.Errorf("cache capacity = %d, want %d", got, cache.DefaultCapacity)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	bad := interaction.DefaultKineticConfig()
	bad.Decay = 1.5
	if _, err := New(100, 100, WithKinetic(bad)); err == nil {
		t.Error("New with decay 1.5 should fail")
	}

	acfg := axis.DefaultConfig()
	acfg.MinTicks = 0
	if _, err := New(100, 100, WithAxisConfig(acfg), WithMeasurer(axis.EstimateMeasurer{FontSize: 12})); err == nil {
		t.Error("New with MinTicks 0 should fail")
	}
}
