package axis

import (
	"math"
	"sort"
)

// SelectPrioritized returns the ticks, in ascending position, that are at
// least minSpacing pixels apart.
//
// Ticks are walked left to right. A tick that collides with the last kept
// one is dropped unless it is major and the last kept one is minor, in
// which case it replaces it when that does not collide further left. The
// last candidate gets the same chance to take the tail slot, so the axis
// end stays labelled. A minor tick never displaces a major one.
func SelectPrioritized(ticks []Tick, minSpacing float64) []Tick {
	if len(ticks) == 0 {
		return nil
	}
	items := make([]Tick, len(ticks))
	copy(items, ticks)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	if len(items) == 1 || !(minSpacing > 0) || math.IsInf(minSpacing, 0) {
		return items
	}

	sel := make([]Tick, 0, len(items))
	sel = append(sel, items[0])
	for _, it := range items[1:] {
		n := len(sel)
		last := sel[n-1]
		if it.Position-last.Position >= minSpacing {
			sel = append(sel, it)
			continue
		}
		if it.Major && !last.Major {
			if n <= 1 || it.Position-sel[n-2].Position >= minSpacing {
				sel[n-1] = it
			}
		}
	}

	tail := items[len(items)-1]
	n := len(sel)
	if math.Abs(sel[n-1].Position-tail.Position) <= 1e-9 {
		return sel
	}
	if n == 1 {
		if tail.Major || !sel[0].Major {
			sel[0] = tail
		}
		return sel
	}
	if tail.Position-sel[n-2].Position >= minSpacing && (!sel[n-1].Major || tail.Major) {
		sel[n-1] = tail
	}
	return sel
}
