// Package pricescale holds the vertical (price) scale of a chart.
//
// A PriceScale stores its domain as raw prices and lays them out through
// a coord.PriceSpace, so switching between linear, logarithmic, percentage
// and indexed display never rewrites the domain. Interactive operations
// (axis drag scale and pan) work in the transformed space of the active
// mode and convert back to raw prices.
//
// Percentage and indexed modes need a base price. The base comes from a
// BasePolicy: an explicit value, or a dynamic source resolved from data
// with ResolveBase. A base of zero, NaN or infinity falls back to 1.
package pricescale
