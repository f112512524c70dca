// Package interaction holds pointer-driven chart state: the crosshair,
// nearest-sample lookup for magnet snapping, the kinetic pan integrator
// and wheel normalization.
//
// Nothing here touches a scale directly. The owner (usually the root
// ggchart.Engine) turns the values produced here into scale commands.
package interaction
