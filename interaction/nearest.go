package interaction

import (
	"math"
	"sort"
)

// NearestSample returns the index of the time in ascending times closest
// to target, or -1 when times is empty or target is NaN. Ties go to the
// earlier sample.
//
// The search starts at an interpolated slot and gallops outward, so
// lookups on regularly spaced data touch a handful of elements.
func NearestSample(times []float64, target float64) int {
	n := len(times)
	if n == 0 || math.IsNaN(target) {
		return -1
	}
	return NearestSampleFrom(times, target, interpolatedSlot(times, target))
}

// NearestSampleFrom is NearestSample starting from hint. Any hint gives
// the same answer; a good one makes it faster.
func NearestSampleFrom(times []float64, target float64, hint int) int {
	n := len(times)
	if n == 0 || math.IsNaN(target) {
		return -1
	}
	hint = max(0, min(hint, n-1))

	i := lowerBound(times, target, hint)
	switch {
	case i == 0:
		return 0
	case i == n:
		return firstOfRun(times, n-1)
	}
	left, right := i-1, i
	if target-times[left] <= times[right]-target {
		return firstOfRun(times, left)
	}
	return right
}

// interpolatedSlot guesses the index of target assuming even spacing.
func interpolatedSlot(times []float64, target float64) int {
	n := len(times)
	first, last := times[0], times[n-1]
	if n == 1 || !(last > first) {
		return 0
	}
	f := (target - first) / (last - first) * float64(n-1)
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= float64(n-1):
		return n - 1
	}
	return int(math.Round(f))
}

// lowerBound returns the first index whose time is >= target, galloping
// from hint before the final binary search.
func lowerBound(times []float64, target float64, hint int) int {
	n := len(times)
	lo, hi := 0, n
	if times[hint] < target {
		lo = hint + 1
		step := 1
		for lo+step-1 < n && times[lo+step-1] < target {
			lo += step
			step *= 2
		}
		hi = min(lo+step-1, n)
	} else {
		hi = hint
		step := 1
		for hi-step >= 0 && times[hi-step] >= target {
			hi -= step
			step *= 2
		}
		lo = max(hi-step+1, 0)
	}
	return lo + sort.Search(hi-lo, func(k int) bool { return times[lo+k] >= target })
}

// firstOfRun walks back over equal times so duplicates resolve to the
// earliest index.
func firstOfRun(times []float64, i int) int {
	for i > 0 && times[i-1] == times[i] {
		i--
	}
	return i
}
