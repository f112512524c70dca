package coord

import "math"

// indexRoundScale rounds float indices to 1e-6 bars so that pixel jitter
// does not flip ceiling lookups.
const indexRoundScale = 1e6

// TimeIndexSpace maps bar indices to pixels.
//
// BaseIndex is the index of the newest bar, RightOffset the number of empty
// bars to its right, BarSpacing the pixel width of one bar and Width the
// pixel width of the plot.
type TimeIndexSpace struct {
	BaseIndex   float64
	RightOffset float64
	BarSpacing  float64
	Width       float64
}

// Validate reports whether the space can map values.
func (s TimeIndexSpace) Validate() error {
	if err := CheckFinite("coord.TimeIndexSpace", "base index", s.BaseIndex); err != nil {
		return err
	}
	if err := CheckFinite("coord.TimeIndexSpace", "right offset", s.RightOffset); err != nil {
		return err
	}
	if err := CheckPositive("coord.TimeIndexSpace", "bar spacing", s.BarSpacing); err != nil {
		return err
	}
	return CheckPositive("coord.TimeIndexSpace", "width", s.Width)
}

// IndexToPixel returns the pixel of the center of bar index i.
func (s TimeIndexSpace) IndexToPixel(i float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.TimeIndexSpace.IndexToPixel", "index", i); err != nil {
		return 0, err
	}
	deltaFromRight := s.BaseIndex + s.RightOffset - i
	return s.Width - (deltaFromRight+0.5)*s.BarSpacing - 1, nil
}

// PixelToIndex returns the fractional bar index at pixel x.
func (s TimeIndexSpace) PixelToIndex(x float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.TimeIndexSpace.PixelToIndex", "pixel", x); err != nil {
		return 0, err
	}
	deltaFromRight := (s.Width-1-x)/s.BarSpacing - 0.5
	return s.BaseIndex + s.RightOffset - deltaFromRight, nil
}

// PixelToIndexCeil returns the discrete bar whose slot contains x.
// Slot i covers the half-open float index interval (i-0.5, i+0.5].
func (s TimeIndexSpace) PixelToIndexCeil(x float64) (int, error) {
	f, err := s.PixelToIndex(x)
	if err != nil {
		return 0, err
	}
	f = math.Round(f*indexRoundScale) / indexRoundScale
	return int(math.Ceil(f - 0.5)), nil
}

// SolveRightOffsetForAnchor returns the right offset that keeps anchorIndex
// at the pixel it occupied under (prevSpacing, prevOffset) once the space
// uses s.BarSpacing.
func (s TimeIndexSpace) SolveRightOffsetForAnchor(prevSpacing, prevOffset, anchorIndex float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckPositive("coord.TimeIndexSpace.SolveRightOffsetForAnchor", "previous spacing", prevSpacing); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.TimeIndexSpace.SolveRightOffsetForAnchor", "previous offset", prevOffset); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.TimeIndexSpace.SolveRightOffsetForAnchor", "anchor index", anchorIndex); err != nil {
		return 0, err
	}
	before := (s.BaseIndex + prevOffset - anchorIndex + 0.5) * prevSpacing
	return before/s.BarSpacing - s.BaseIndex + anchorIndex - 0.5, nil
}

// PanRightOffset returns the right offset after moving the content by
// deltaPx pixels. Positive deltas reveal later bars.
func (s TimeIndexSpace) PanRightOffset(deltaPx float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := CheckFinite("coord.TimeIndexSpace.PanRightOffset", "delta", deltaPx); err != nil {
		return 0, err
	}
	return s.RightOffset + deltaPx/s.BarSpacing, nil
}
