package pricescale

import "github.com/gogpu/ggchart/coord"

// Config holds the price scale policies.
type Config struct {
	// TopPadding and BottomPadding pad autoscaled ranges, as ratios of the
	// data span (in transformed units under log mode).
	TopPadding    float64
	BottomPadding float64
	// MinSpan is the span degenerate ranges are expanded to and the
	// smallest transformed span an axis drag may produce.
	MinSpan float64

	Margins  coord.Margins
	Inverted bool
	Mode     coord.PriceMode
	Base     BasePolicy

	// DragSensitivity scales axis drag zoom: a drag of the full plot
	// height multiplies the span by e^DragSensitivity.
	DragSensitivity float64
}

// DefaultConfig returns the default policies.
func DefaultConfig() Config {
	return Config{
		TopPadding:      0.10,
		BottomPadding:   0.10,
		MinSpan:         1e-6,
		Margins:         coord.Margins{Top: 0.2, Bottom: 0.1},
		Mode:            coord.PriceModeLinear,
		Base:            DynamicBase(BaseDomainStart),
		DragSensitivity: 1,
	}
}

// Validate checks the numeric policies.
func (c Config) Validate() error {
	if !coord.IsFinite(c.TopPadding) || c.TopPadding < 0 {
		return &coord.InputError{Op: "pricescale.Config", Field: "top padding", Value: c.TopPadding, Reason: "must be finite and >= 0"}
	}
	if !coord.IsFinite(c.BottomPadding) || c.BottomPadding < 0 {
		return &coord.InputError{Op: "pricescale.Config", Field: "bottom padding", Value: c.BottomPadding, Reason: "must be finite and >= 0"}
	}
	if err := coord.CheckPositive("pricescale.Config", "min span", c.MinSpan); err != nil {
		return err
	}
	if err := coord.CheckPositive("pricescale.Config", "drag sensitivity", c.DragSensitivity); err != nil {
		return err
	}
	if c.Mode > coord.PriceModeIndexedTo100 {
		return &coord.InputError{Op: "pricescale.Config", Field: "mode", Value: float64(c.Mode), Reason: "is unknown"}
	}
	return c.Margins.Validate()
}
