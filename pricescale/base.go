package pricescale

import (
	"fmt"
	"math"

	"github.com/gogpu/ggchart/coord"
)

// BaseSource selects where a dynamic base price comes from.
type BaseSource uint8

const (
	// BaseDomainStart uses the lower bound of the price domain.
	BaseDomainStart BaseSource = iota
	// BaseFirstData uses the earliest sample.
	BaseFirstData
	// BaseLastData uses the latest sample.
	BaseLastData
	// BaseFirstVisibleData uses the earliest sample in the visible range.
	BaseFirstVisibleData
	// BaseLastVisibleData uses the latest sample in the visible range.
	BaseLastVisibleData
)

// String returns the source name.
func (s BaseSource) String() string {
	switch s {
	case BaseDomainStart:
		return "domain_start"
	case BaseFirstData:
		return "first_data"
	case BaseLastData:
		return "last_data"
	case BaseFirstVisibleData:
		return "first_visible_data"
	case BaseLastVisibleData:
		return "last_visible_data"
	default:
		return fmt.Sprintf("BaseSource(%d)", uint8(s))
	}
}

// ParseBaseSource parses the names produced by String.
func ParseBaseSource(s string) (BaseSource, error) {
	for src := BaseDomainStart; src <= BaseLastVisibleData; src++ {
		if src.String() == s {
			return src, nil
		}
	}
	return 0, fmt.Errorf("pricescale: unknown base source %q: %w", s, coord.ErrInvalidInput)
}

// BasePolicy is either an explicit base price or a dynamic source.
type BasePolicy struct {
	Explicit bool
	Value    float64
	Source   BaseSource
}

// ExplicitBase returns a policy that always uses v.
func ExplicitBase(v float64) BasePolicy {
	return BasePolicy{Explicit: true, Value: v}
}

// DynamicBase returns a policy that resolves the base from src.
func DynamicBase(src BaseSource) BasePolicy {
	return BasePolicy{Source: src}
}

// Series is the data a dynamic base is resolved from. Both slices are
// expected in ascending time order.
type Series struct {
	Points  []coord.Point
	Candles []coord.Candle
}

type candidate struct {
	time   float64
	price  float64
	candle bool
}

// VisibleWindow restricts base resolution to [Start, End].
type VisibleWindow struct {
	Start float64
	End   float64
}

func (w *VisibleWindow) contains(t float64) bool {
	return w == nil || (t >= w.Start && t <= w.End)
}

// dataExtreme returns the first or last sample price of data, restricted
// to win when it is not nil. Candles use their close.
func dataExtreme(data Series, last bool, win *VisibleWindow) (float64, bool) {
	var pt, cd *candidate

	n := len(data.Points)
	for i := range n {
		j := i
		if last {
			j = n - 1 - i
		}
		p := data.Points[j]
		if coord.IsFinite(p.Time) && win.contains(p.Time) {
			pt = &candidate{time: p.Time, price: p.Value}
			break
		}
	}
	n = len(data.Candles)
	for i := range n {
		j := i
		if last {
			j = n - 1 - i
		}
		c := data.Candles[j]
		if coord.IsFinite(c.Time) && win.contains(c.Time) {
			cd = &candidate{time: c.Time, price: c.Close, candle: true}
			break
		}
	}

	sel := pickCandidate(pt, cd, last)
	if sel == nil || !coord.IsFinite(sel.price) || sel.price == 0 {
		return 0, false
	}
	return sel.price, true
}

// pickCandidate prefers the earliest (or latest) timestamp. Equal
// timestamps go to the candle.
func pickCandidate(pt, cd *candidate, last bool) *candidate {
	switch {
	case pt == nil:
		return cd
	case cd == nil:
		return pt
	}
	if pt.time == cd.time {
		return cd
	}
	if (pt.time > cd.time) == last {
		return pt
	}
	return cd
}

// resolveBase computes the base for policy given the domain start.
func resolveBase(policy BasePolicy, domainStart float64, data Series, win *VisibleWindow) float64 {
	if policy.Explicit {
		return coord.SanitizeBase(policy.Value)
	}
	var (
		v  float64
		ok bool
	)
	switch policy.Source {
	case BaseFirstData:
		v, ok = dataExtreme(data, false, nil)
	case BaseLastData:
		v, ok = dataExtreme(data, true, nil)
	case BaseFirstVisibleData:
		if v, ok = dataExtreme(data, false, win); !ok {
			v, ok = dataExtreme(data, false, nil)
		}
	case BaseLastVisibleData:
		if v, ok = dataExtreme(data, true, win); !ok {
			v, ok = dataExtreme(data, true, nil)
		}
	}
	if !ok {
		v = domainStart
	}
	return coord.SanitizeBase(v)
}

func sameBase(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12
}
