package axis

import "math"

// Curve maps a zoom ratio (visible span / full span) to a spacing scale.
type Curve struct {
	// NeutralBand is the distance from 1 within which the scale stays 1.
	NeutralBand float64
	// ZoomInExponent applies to ratios below 1.
	ZoomInExponent float64
	// ZoomOutExponent applies to ratios above 1.
	ZoomOutExponent float64
	MinScale        float64
	MaxScale        float64
}

// TimeCurve returns the density curve used for the time axis.
func TimeCurve() Curve {
	return Curve{NeutralBand: 0.06, ZoomInExponent: 0.70, ZoomOutExponent: 0.62, MinScale: 0.45, MaxScale: 1.90}
}

// PriceCurve returns the density curve used for the price axis.
func PriceCurve() Curve {
	return Curve{NeutralBand: 0.10, ZoomInExponent: 0.75, ZoomOutExponent: 0.65, MinScale: 0.55, MaxScale: 1.80}
}

// DensityScale returns ratio^exponent clamped to the curve's bounds, or 1
// inside the neutral band and for non-finite or non-positive ratios.
// Malformed curve fields fall back to safe values.
func DensityScale(ratio float64, c Curve) float64 {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 1
	}
	band := c.NeutralBand
	if math.IsNaN(band) || math.IsInf(band, 0) || band < 0 {
		band = 0
	}
	if math.Abs(ratio-1) <= band {
		return 1
	}

	exp := c.ZoomOutExponent
	if ratio < 1 {
		exp = c.ZoomInExponent
	}
	if !(exp > 0) || math.IsInf(exp, 0) {
		exp = 1
	}

	lo := c.MinScale
	if !(lo >= 0.01) || math.IsInf(lo, 0) {
		lo = 0.01
	}
	hi := c.MaxScale
	if math.IsNaN(hi) || math.IsInf(hi, 0) || hi < lo {
		hi = lo
	}
	return min(max(math.Pow(ratio, exp), lo), hi)
}

// TargetCount returns floor(spanPx/spacing)+1 clamped to
// [minTicks, maxTicks], or minTicks for unusable inputs.
func TargetCount(spanPx, spacing float64, minTicks, maxTicks int) int {
	if !(spanPx > 0) || math.IsInf(spanPx, 0) || !(spacing > 0) || math.IsInf(spacing, 0) {
		return minTicks
	}
	hi := max(maxTicks, minTicks)
	raw := math.Floor(spanPx/spacing) + 1
	if raw >= float64(hi) {
		return hi
	}
	return max(int(raw), minTicks)
}

// TargetCountWithDensity scales the target spacing by density (clamped to
// [0.5, 1.9]) while never packing ticks closer than minSpacing.
func TargetCountWithDensity(spanPx, targetSpacing, minSpacing float64, minTicks, maxTicks int, density float64) int {
	base := TargetCount(spanPx, targetSpacing, minTicks, maxTicks)
	if !(density > 0) || math.IsInf(density, 0) {
		return base
	}

	scale := min(max(density, 0.50), 1.90)
	spacing := max(targetSpacing*scale, minSpacing)
	densityMax := int(min(max(math.Round(float64(maxTicks)/scale), float64(minTicks)), float64(maxTicks*3)))
	spacingCap := maxTicks * 3
	if spanPx > 0 && !math.IsInf(spanPx, 0) && minSpacing > 0 {
		spacingCap = int(math.Floor(spanPx / minSpacing))
	}
	effectiveMax := min(densityMax, max(spacingCap, minTicks))
	return TargetCount(spanPx, spacing, minTicks, effectiveMax)
}
