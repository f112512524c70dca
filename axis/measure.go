package axis

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggchart/coord"
)

// DefaultFontSize is the label size in pixels used by DefaultMeasurer.
const DefaultFontSize = 12.0

// Measurer reports label extents in pixels.
type Measurer interface {
	// Width returns the horizontal advance of label.
	Width(label string) float64
	// LineHeight returns the height of one label line.
	LineHeight() float64
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FaceMeasurer measures labels with an OpenType face.
//
// It is not safe for concurrent use.
type FaceMeasurer struct {
	face       font.Face
	lineHeight float64
}

// NewFaceMeasurer parses an OpenType or TrueType font and returns a
// measurer at sizePx pixels.
func NewFaceMeasurer(ttf []byte, sizePx float64) (*FaceMeasurer, error) {
	if err := coord.CheckPositive("axis.NewFaceMeasurer", "size", sizePx); err != nil {
		return nil, err
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("axis: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("axis: create face: %w", err)
	}
	return &FaceMeasurer{face: face, lineHeight: fixedToFloat(face.Metrics().Height)}, nil
}

// DefaultMeasurer returns a FaceMeasurer over Go Regular at
// DefaultFontSize.
func DefaultMeasurer() (*FaceMeasurer, error) {
	return NewFaceMeasurer(goregular.TTF, DefaultFontSize)
}

// Width returns the advance of label.
func (m *FaceMeasurer) Width(label string) float64 {
	if label == "" {
		return 0
	}
	return fixedToFloat(font.MeasureString(m.face, label))
}

// LineHeight returns the face's recommended line height.
func (m *FaceMeasurer) LineHeight() float64 {
	return m.lineHeight
}

// Close releases the face.
func (m *FaceMeasurer) Close() error {
	return m.face.Close()
}

// EstimateMeasurer approximates widths from per-character units so
// layouts do not depend on font files.
type EstimateMeasurer struct {
	FontSize float64
}

// Width returns the estimated advance, at least one em.
func (m EstimateMeasurer) Width(label string) float64 {
	var units float64
	for _, r := range label {
		switch {
		case r >= '0' && r <= '9':
			units += 0.62
		case r == '.' || r == ',':
			units += 0.34
		case r == '-' || r == '+' || r == '%':
			units += 0.42
		case r == ' ':
			units += 0.33
		default:
			units += 0.58
		}
	}
	return math.Max(units*m.FontSize, m.FontSize)
}

// LineHeight returns 1.2 em.
func (m EstimateMeasurer) LineHeight() float64 {
	return m.FontSize * 1.2
}
