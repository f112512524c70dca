package axis

import (
	"math"

	"github.com/shopspring/decimal"
)

// maxCandidates bounds ladder output for pathological ranges.
const maxCandidates = 4096

// candidate is a tick value before layout. step is the ladder spacing
// around it, used for label precision.
type candidate struct {
	value float64
	step  float64
	major bool
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten and returns it
// with the next decade step, whose multiples are major ticks.
func niceStep(raw float64) (step, decade float64) {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var n float64
	switch norm := raw / mag; {
	case norm <= 1:
		n = 1
	case norm <= 2:
		n = 2
	case norm <= 5:
		n = 5
	default:
		n = 10
	}
	step = n * mag
	decade = math.Pow(10, math.Floor(math.Log10(step)+1e-9)+1)
	return step, decade
}

// multiple returns k*step without binary noise (0.1*3 is 0.3, not
// 0.30000000000000004).
func multiple(k int64, step float64) float64 {
	return decimal.NewFromInt(k).Mul(decimal.NewFromFloat(step)).InexactFloat64()
}

func isMultiple(v, of float64) bool {
	r := v / of
	return math.Abs(r-math.Round(r)) <= 1e-9*math.Max(1, math.Abs(r))
}

// linearLadder returns 1/2/5 candidates in [lo, hi] aiming for count
// ticks. Multiples of the next decade are major.
func linearLadder(lo, hi float64, count int) []candidate {
	if !(hi > lo) || math.IsInf(hi-lo, 0) {
		return nil
	}
	step, decade := niceStep((hi - lo) / float64(max(count-1, 1)))
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	first := math.Ceil(lo/step - 1e-9)
	last := math.Floor(hi/step + 1e-9)
	if last-first+1 > maxCandidates || math.IsInf(first, 0) || math.IsInf(last, 0) {
		return nil
	}

	out := make([]candidate, 0, int(last-first)+1)
	for k := int64(first); k <= int64(last); k++ {
		v := multiple(k, step)
		out = append(out, candidate{value: v, step: step, major: isMultiple(v, decade)})
	}
	return out
}

// logMantissas are the ladders tried, densest first.
var logMantissas = [][]int64{{1, 2, 5}, {1, 5}, {1}}

// logLadder returns m*10^k candidates in [lo, hi] (both > 0) with at most
// maxTicks entries, thinning the mantissa ladder and then whole decades
// as needed. Powers of ten are major. When the range holds fewer than two
// ladder values it falls back to linearLadder.
func logLadder(lo, hi float64, maxTicks int) []candidate {
	if !(lo > 0) || !(hi > lo) || math.IsInf(hi, 0) {
		return nil
	}
	kLo := int32(math.Floor(math.Log10(lo)))
	kHi := int32(math.Ceil(math.Log10(hi)))
	if kHi-kLo > maxCandidates {
		return nil
	}
	maxTicks = max(maxTicks, 2)

	collect := func(mants []int64, every int32) []candidate {
		var out []candidate
		for k := kLo; k <= kHi; k++ {
			if every > 1 && ((k%every)+every)%every != 0 {
				continue
			}
			unit := decimal.New(1, k).InexactFloat64()
			for _, m := range mants {
				v := decimal.New(m, k).InexactFloat64()
				if v < lo || v > hi {
					continue
				}
				out = append(out, candidate{value: v, step: unit, major: m == 1})
			}
		}
		return out
	}

	var out []candidate
	for _, mants := range logMantissas {
		if out = collect(mants, 1); len(out) <= maxTicks {
			break
		}
	}
	if len(out) > maxTicks {
		every := int32(math.Ceil(float64(len(out)) / float64(maxTicks)))
		out = collect([]int64{1}, every)
	}
	if len(out) < 2 {
		return linearLadder(lo, hi, maxTicks)
	}
	return out
}

// utcSteps is the calendar ladder in seconds.
var utcSteps = []float64{
	1, 2, 5, 10, 15, 30,
	60, 120, 300, 600, 900, 1800,
	3600, 7200, 10800, 21600, 43200,
	86400, 172800, 604800,
	2592000, 7776000, 15552000, 31536000,
}

const secondsPerDay = 86400

// utcLadder returns candidates for unix-second times aligned to the local
// clock at offsetSec from UTC. Local midnights and session boundaries are
// major.
func utcLadder(lo, hi float64, count int, offsetSec float64, session *Session) []candidate {
	if !(hi > lo) || math.IsInf(hi-lo, 0) {
		return nil
	}
	intervals := float64(max(count-1, 1))
	step := utcSteps[len(utcSteps)-1]
	for _, s := range utcSteps {
		if (hi-lo)/s <= intervals {
			step = s
			break
		}
	}
	for (hi-lo)/step > intervals*2 {
		step *= 2
	}

	first := math.Ceil((lo+offsetSec)/step - 1e-9)
	last := math.Floor((hi+offsetSec)/step + 1e-9)
	if last-first+1 > maxCandidates {
		return nil
	}
	out := make([]candidate, 0, int(last-first)+1)
	for k := first; k <= last; k++ {
		local := k * step
		out = append(out, candidate{
			value: local - offsetSec,
			step:  step,
			major: isMajorLocal(local, session),
		})
	}
	return out
}

// isMajorLocal reports whether local (seconds since the local epoch) is a
// midnight or a session boundary.
func isMajorLocal(local float64, session *Session) bool {
	sec := int64(math.Round(local))
	tod := ((sec % secondsPerDay) + secondsPerDay) % secondsPerDay
	if tod == 0 {
		return true
	}
	return session != nil && session.IsBoundary(int(tod/60), int(tod%60))
}

// Session is a trading session in local minutes of day. A session whose
// end is before its start wraps past midnight.
type Session struct {
	StartMinute int
	EndMinute   int
}

// Contains reports whether minute lies inside the session, bounds
// included.
func (s Session) Contains(minute int) bool {
	if s.StartMinute < s.EndMinute {
		return minute >= s.StartMinute && minute <= s.EndMinute
	}
	return minute >= s.StartMinute || minute <= s.EndMinute
}

// IsBoundary reports whether minute:second is exactly the session start
// or end.
func (s Session) IsBoundary(minute, second int) bool {
	return second == 0 && (minute == s.StartMinute || minute == s.EndMinute)
}
