package coord

// LinearSpace maps the logical range [Start, End] onto [0, Length] pixels.
type LinearSpace struct {
	Start  float64
	End    float64
	Length float64
}

// NewLinearSpace validates and returns a LinearSpace.
func NewLinearSpace(start, end, length float64) (LinearSpace, error) {
	s := LinearSpace{Start: start, End: end, Length: length}
	if err := s.Validate(); err != nil {
		return LinearSpace{}, err
	}
	return s, nil
}

// Validate reports whether the space can map values.
func (s LinearSpace) Validate() error {
	if err := CheckFinite("coord.LinearSpace", "start", s.Start); err != nil {
		return err
	}
	if err := CheckFinite("coord.LinearSpace", "end", s.End); err != nil {
		return err
	}
	if s.Start == s.End {
		return &InputError{Op: "coord.LinearSpace", Field: "span", Value: 0, Reason: "must be non-zero"}
	}
	return CheckPositive("coord.LinearSpace", "length", s.Length)
}

// Span returns End - Start.
func (s LinearSpace) Span() float64 { return s.End - s.Start }

// ToPixel maps a logical value to a pixel offset.
func (s LinearSpace) ToPixel(v float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.LinearSpace.ToPixel", "value", v); err != nil {
		return 0, err
	}
	return (v - s.Start) / s.Span() * s.Length, nil
}

// ToLogical maps a pixel offset back to a logical value.
func (s LinearSpace) ToLogical(px float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.LinearSpace.ToLogical", "pixel", px); err != nil {
		return 0, err
	}
	return s.Start + px/s.Length*s.Span(), nil
}
