package coord

import (
	"fmt"
	"math"
)

// PriceMode selects the transform applied to raw prices before they are
// laid out on the price axis.
type PriceMode uint8

const (
	// PriceModeLinear lays prices out unchanged.
	PriceModeLinear PriceMode = iota
	// PriceModeLog lays prices out by natural logarithm.
	PriceModeLog
	// PriceModePercentage lays prices out as percent change from a base.
	PriceModePercentage
	// PriceModeIndexedTo100 lays prices out indexed so the base reads 100.
	PriceModeIndexedTo100
)

// String returns the mode name.
func (m PriceMode) String() string {
	switch m {
	case PriceModeLinear:
		return "linear"
	case PriceModeLog:
		return "log"
	case PriceModePercentage:
		return "percentage"
	case PriceModeIndexedTo100:
		return "indexed_to_100"
	default:
		return fmt.Sprintf("PriceMode(%d)", uint8(m))
	}
}

// ParsePriceMode parses the names produced by String.
func ParsePriceMode(s string) (PriceMode, error) {
	switch s {
	case "linear", "normal", "":
		return PriceModeLinear, nil
	case "log", "logarithmic":
		return PriceModeLog, nil
	case "percentage", "percent":
		return PriceModePercentage, nil
	case "indexed_to_100", "indexed":
		return PriceModeIndexedTo100, nil
	}
	return 0, fmt.Errorf("coord: unknown price mode %q: %w", s, ErrInvalidInput)
}

// UsesBase reports whether the mode needs a transformed base.
func (m PriceMode) UsesBase() bool {
	return m == PriceModePercentage || m == PriceModeIndexedTo100
}

// SanitizeBase returns b, or 1 when b is zero, NaN or infinite.
func SanitizeBase(b float64) float64 {
	if b == 0 || !IsFinite(b) {
		return 1
	}
	return b
}

// Margins are the fractions of the plot height kept free above and below
// the price range.
type Margins struct {
	Top    float64
	Bottom float64
}

// Validate checks that both ratios are in [0,1] and leave room to draw.
func (m Margins) Validate() error {
	if !IsFinite(m.Top) || m.Top < 0 || m.Top > 1 {
		return &InputError{Op: "coord.Margins", Field: "top", Value: m.Top, Reason: "must be in [0,1]"}
	}
	if !IsFinite(m.Bottom) || m.Bottom < 0 || m.Bottom > 1 {
		return &InputError{Op: "coord.Margins", Field: "bottom", Value: m.Bottom, Reason: "must be in [0,1]"}
	}
	if m.Top+m.Bottom >= 1 {
		return &InputError{Op: "coord.Margins", Field: "top+bottom", Value: m.Top + m.Bottom, Reason: "must be < 1"}
	}
	return nil
}

// PriceSpace maps raw prices in [Min, Max] onto a vertical pixel extent.
type PriceSpace struct {
	Mode     PriceMode
	Base     float64
	Min      float64
	Max      float64
	Height   float64
	Margins  Margins
	Inverted bool
}

// Validate reports whether the space can map values.
func (s PriceSpace) Validate() error {
	if err := CheckFinite("coord.PriceSpace", "min", s.Min); err != nil {
		return err
	}
	if err := CheckFinite("coord.PriceSpace", "max", s.Max); err != nil {
		return err
	}
	if err := CheckPositive("coord.PriceSpace", "height", s.Height); err != nil {
		return err
	}
	if err := s.Margins.Validate(); err != nil {
		return err
	}
	if s.Mode == PriceModeLog && (s.Min <= 0 || s.Max <= 0) {
		return fmt.Errorf("coord.PriceSpace: log bounds [%v, %v] must be > 0: %w", s.Min, s.Max, ErrInvalidDomain)
	}
	lo, hi, err := s.TransformedRange()
	if err != nil {
		return err
	}
	if lo == hi {
		return fmt.Errorf("coord.PriceSpace: zero transformed span: %w", ErrInvalidDomain)
	}
	return nil
}

// Transform maps a raw price into the mode's transformed space.
func (s PriceSpace) Transform(price float64) (float64, error) {
	if err := CheckFinite("coord.PriceSpace.Transform", "price", price); err != nil {
		return 0, err
	}
	base := SanitizeBase(s.Base)
	switch s.Mode {
	case PriceModeLog:
		if price <= 0 {
			return 0, fmt.Errorf("coord.PriceSpace.Transform: log of %v: %w", price, ErrInvalidDomain)
		}
		return math.Log(price), nil
	case PriceModePercentage:
		return (price - base) / base * 100, nil
	case PriceModeIndexedTo100:
		return (price-base)/base*100 + 100, nil
	default:
		return price, nil
	}
}

// Untransform maps a transformed value back to a raw price.
func (s PriceSpace) Untransform(v float64) (float64, error) {
	if err := CheckFinite("coord.PriceSpace.Untransform", "value", v); err != nil {
		return 0, err
	}
	base := SanitizeBase(s.Base)
	var price float64
	switch s.Mode {
	case PriceModeLog:
		price = math.Exp(v)
	case PriceModePercentage:
		price = v/100*base + base
	case PriceModeIndexedTo100:
		price = (v-100)/100*base + base
	default:
		price = v
	}
	if !IsFinite(price) {
		return 0, &InputError{Op: "coord.PriceSpace.Untransform", Field: "value", Value: v, Reason: "overflows price range"}
	}
	return price, nil
}

// TransformedRange returns T(Min) and T(Max).
func (s PriceSpace) TransformedRange() (lo, hi float64, err error) {
	if lo, err = s.Transform(s.Min); err != nil {
		return 0, 0, err
	}
	if hi, err = s.Transform(s.Max); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// usable returns the top margin in pixels and the drawable height.
func (s PriceSpace) usable() (top, h float64) {
	top = s.Height * s.Margins.Top
	h = s.Height * (1 - s.Margins.Top - s.Margins.Bottom)
	return top, h
}

// TransformedToPixel maps a transformed value to a pixel.
func (s PriceSpace) TransformedToPixel(v float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.PriceSpace.TransformedToPixel", "value", v); err != nil {
		return 0, err
	}
	lo, hi, _ := s.TransformedRange()
	t := (v - lo) / (hi - lo)
	top, h := s.usable()
	if s.Inverted {
		return top + t*h, nil
	}
	return top + (1-t)*h, nil
}

// PixelToTransformed maps a pixel to a transformed value.
func (s PriceSpace) PixelToTransformed(px float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.PriceSpace.PixelToTransformed", "pixel", px); err != nil {
		return 0, err
	}
	lo, hi, _ := s.TransformedRange()
	top, h := s.usable()
	t := (px - top) / h
	if !s.Inverted {
		t = 1 - t
	}
	return lo + t*(hi-lo), nil
}

// ToPixel maps a raw price to a pixel.
func (s PriceSpace) ToPixel(price float64) (float64, error) {
	v, err := s.Transform(price)
	if err != nil {
		return 0, err
	}
	return s.TransformedToPixel(v)
}

// ToPrice maps a pixel to a raw price.
func (s PriceSpace) ToPrice(px float64) (float64, error) {
	v, err := s.PixelToTransformed(px)
	if err != nil {
		return 0, err
	}
	return s.Untransform(v)
}
