package timescale

import (
	"math"
	"sort"
)

// ResolveReferenceStep estimates the time per bar as the median positive
// gap between consecutive finite times. When every gap is zero it falls
// back to the mean gap. It reports false when no step can be resolved.
func ResolveReferenceStep(times []float64) (float64, bool) {
	ordered := make([]float64, 0, len(times))
	for _, t := range times {
		if !math.IsNaN(t) && !math.IsInf(t, 0) {
			ordered = append(ordered, t)
		}
	}
	if len(ordered) < 2 {
		return 0, false
	}
	sort.Float64s(ordered)

	deltas := make([]float64, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		if d := ordered[i] - ordered[i-1]; d > 0 && !math.IsInf(d, 0) {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) > 0 {
		sort.Float64s(deltas)
		mid := len(deltas) / 2
		if len(deltas)%2 == 1 {
			return deltas[mid], true
		}
		return (deltas[mid-1] + deltas[mid]) / 2, true
	}

	span := ordered[len(ordered)-1] - ordered[0]
	if span > 0 {
		return span / float64(len(ordered)-1), true
	}
	return 0, false
}
