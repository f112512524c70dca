package coord

// Point is a single line or area sample.
type Point struct {
	Time  float64
	Value float64
}

// Candle is a single OHLC sample.
type Candle struct {
	Time  float64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Valid reports whether the point has finite coordinates.
func (p Point) Valid() bool {
	return IsFinite(p.Time) && IsFinite(p.Value)
}

// Valid reports whether the candle has a finite time and close.
func (c Candle) Valid() bool {
	return IsFinite(c.Time) && IsFinite(c.Close)
}
