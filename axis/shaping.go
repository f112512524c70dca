package axis

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggchart/coord"
)

// ShapingMeasurer measures labels by shaping them with HarfBuzz, which
// accounts for kerning and ligatures.
//
// It is not safe for concurrent use.
type ShapingMeasurer struct {
	face       *font.Face
	size       fixed.Int26_6
	shaper     shaping.HarfbuzzShaper
	lang       language.Language
	lineHeight float64
}

// NewShapingMeasurer parses ttf and returns a measurer at sizePx pixels.
func NewShapingMeasurer(ttf []byte, sizePx float64) (*ShapingMeasurer, error) {
	if err := coord.CheckPositive("axis.NewShapingMeasurer", "size", sizePx); err != nil {
		return nil, err
	}
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("axis: parse font: %w", err)
	}
	m := &ShapingMeasurer{
		face: face,
		size: fixed.Int26_6(sizePx * 64),
		lang: language.NewLanguage("en"),
	}
	lb := m.shape([]rune("0")).LineBounds
	m.lineHeight = fixedToFloat(lb.Ascent - lb.Descent + lb.Gap)
	return m, nil
}

func (m *ShapingMeasurer) shape(runes []rune) shaping.Output {
	script := language.Latin
	for _, r := range runes {
		if r != ' ' {
			script = language.LookupScript(r)
			break
		}
	}
	return m.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      m.face,
		Size:      m.size,
		Script:    script,
		Language:  m.lang,
	})
}

// Width returns the shaped advance of label.
func (m *ShapingMeasurer) Width(label string) float64 {
	if label == "" {
		return 0
	}
	return fixedToFloat(m.shape([]rune(label)).Advance)
}

// LineHeight returns ascent plus descent plus line gap.
func (m *ShapingMeasurer) LineHeight() float64 {
	return m.lineHeight
}
