// Package ggchart is the coordinate and interaction core of a financial
// chart.
//
// # Overview
//
// An Engine owns the state of one chart view: a time scale (horizontal),
// a price scale (vertical), the crosshair and pan gestures, and a label
// cache shared by both axes. It maps logical values (times, prices) to
// pixels and back, applies pan and zoom gestures, and plans the axis ticks
// for the current frame. It draws nothing; the host renders the plans and
// coordinates it reads back.
//
// # Quick Start
//
//	e, err := ggchart.New(800, 400)
//	if err != nil {
//		return err
//	}
//	if err := e.SetData(nil, candles); err != nil {
//		return err
//	}
//	_ = e.FitToData()
//	_ = e.Autoscale()
//
//	// Scroll up one notch over x=600 to zoom in.
//	_ = e.WheelZoom(-120, 600)
//
//	axes, err := e.BuildAxes()
//
// # Sub-packages
//
//   - coord: value/pixel spaces, price modes and the error taxonomy
//   - timescale: visible time range, bar spacing, zoom and edge policies
//   - pricescale: price domain, display modes, base resolution, autoscale
//   - interaction: crosshair, nearest-sample search, kinetic pan, wheel
//   - axis: tick ladders, density, spacing selection, label formatting
//   - cache: generation-keyed label cache
//   - metrics: Prometheus collector over Engine diagnostics
//
// # Coordinate System
//
// Pixels grow right and down from the plot's top-left corner. Times are
// plain float64 values (unix seconds when UTC labels are enabled). Prices
// are raw values; the price mode decides the display space.
//
// # Thread Safety
//
// An Engine is not safe for concurrent use. Hosts that touch it from
// several goroutines must serialize access.
package ggchart

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
