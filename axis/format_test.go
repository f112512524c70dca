package axis

import (
	"errors"
	"testing"

	"golang.org/x/text/language"

	"github.com/gogpu/ggchart/coord"
)

func TestPrecisionForStep(t *testing.T) {
	tests := []struct {
		step float64
		want int
	}{
		{1, 0},
		{50, 0},
		{0.5, 1},
		{0.25, 2},
		{0.1 + 0.2, 1},
		{0.001, 3},
		{0, 2},
		{-1, 2},
	}
	for _, tt := range tests {
		if got := PrecisionForStep(tt.step); got != tt.want {
			t.Errorf("PrecisionForStep(%v) = %d, want %d", tt.step, got, tt.want)
		}
	}
}

func newPriceFormatter(t *testing.T, tag language.Tag, f PriceFormat) *PriceFormatter {
	t.Helper()
	pf, err := NewPriceFormatter(tag, f)
	if err != nil {
		t.Fatalf("NewPriceFormatter: %v", err)
	}
	return pf
}

func TestPriceFormatter(t *testing.T) {
	fixed2 := PriceFormat{Policy: PriceFixed, Precision: 2}
	tests := []struct {
		name    string
		tag     language.Tag
		format  PriceFormat
		display float64
		step    float64
		mode    coord.PriceMode
		want    string
	}{
		{"fixed grouping", language.English, fixed2, 1234.5, 1, coord.PriceModeLinear, "1,234.50"},
		{"german separators", language.German, fixed2, 1234.5, 1, coord.PriceModeLinear, "1.234,50"},
		{"negative zero", language.English, fixed2, -0.001, 1, coord.PriceModeLinear, "0.00"},
		{"percent suffix", language.English, fixed2, 12.5, 1, coord.PriceModePercentage, "12.50%"},
		{"indexed has no suffix", language.English, fixed2, 112.5, 1, coord.PriceModeIndexedTo100, "112.50"},
		{"adaptive from step", language.English, DefaultPriceFormat(), 42.5, 0.5, coord.PriceModeLinear, "42.5"},
		{"adaptive normalizes step", language.English, DefaultPriceFormat(), 42, 3, coord.PriceModeLinear, "42"},
		{"adaptive fine step", language.English, DefaultPriceFormat(), 0.126, 0.02, coord.PriceModeLinear, "0.13"},
		{"min move", language.English, PriceFormat{Policy: PriceMinMove, MinMove: 0.25}, 10.37, 1, coord.PriceModeLinear, "10.25"},
		{"min move trimmed", language.English, PriceFormat{Policy: PriceMinMove, MinMove: 0.5, TrimZeros: true}, 10.1, 1, coord.PriceModeLinear, "10"},
		{"min move keeps fraction", language.English, PriceFormat{Policy: PriceMinMove, MinMove: 0.5, TrimZeros: true}, 10.4, 1, coord.PriceModeLinear, "10.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := newPriceFormatter(t, tt.tag, tt.format)
			if got := pf.Format(tt.display, tt.step, tt.mode); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.display, got, tt.want)
			}
		})
	}
}

func TestPriceFormatValidate(t *testing.T) {
	bad := []PriceFormat{
		{Policy: PriceFixed, Precision: -1},
		{Policy: PriceFixed, Precision: 13},
		{Policy: PriceMinMove, MinMove: 0},
		{Policy: PricePolicy(9)},
	}
	for _, f := range bad {
		if _, err := NewPriceFormatter(language.English, f); !errors.Is(err, coord.ErrInvalidInput) {
			t.Errorf("NewPriceFormatter(%+v) error = %v, want ErrInvalidInput", f, err)
		}
	}
}

func TestParsePolicies(t *testing.T) {
	for _, p := range []PricePolicy{PriceAdaptive, PriceFixed, PriceMinMove} {
		got, err := ParsePricePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePricePolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	for _, p := range []TimePolicy{TimeLogical, TimeUTC, TimeUTCAdaptive} {
		got, err := ParseTimePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseTimePolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseTimePolicy("lunar"); !errors.Is(err, coord.ErrInvalidInput) {
		t.Errorf("ParseTimePolicy(lunar) error = %v", err)
	}
}

// 2023-11-14 00:00:00 UTC.
const midnight = 1699920000

func newTimeFormatter(t *testing.T, tag language.Tag, f TimeFormat) *TimeFormatter {
	t.Helper()
	tf, err := NewTimeFormatter(tag, f)
	if err != nil {
		t.Fatalf("NewTimeFormatter: %v", err)
	}
	return tf
}

func TestTimeFormatter(t *testing.T) {
	session := &Session{StartMinute: 9*60 + 30, EndMinute: 16 * 60}
	tests := []struct {
		name   string
		tag    language.Tag
		format TimeFormat
		t      float64
		span   float64
		want   string
	}{
		{"logical", language.English, DefaultTimeFormat(), 1500, 100, "1500.00"},
		{"logical from step", language.English, TimeFormat{Policy: TimeLogical, Precision: -1}, 12.5, 1, "12.5"},
		{"logical german", language.German, DefaultTimeFormat(), 1500.25, 100, "1500,25"},
		{"utc minutes", language.English, TimeFormat{Policy: TimeUTC}, midnight + 80000, 0, "2023-11-14 22:13"},
		{"utc seconds", language.English, TimeFormat{Policy: TimeUTC, ShowSeconds: true}, midnight + 80000, 0, "2023-11-14 22:13:20"},
		{"adaptive short span", language.English, TimeFormat{Policy: TimeUTCAdaptive}, midnight + 80000, 300, "2023-11-14 22:13:20"},
		{"adaptive day span", language.English, TimeFormat{Policy: TimeUTCAdaptive}, midnight + 80000, 3600, "2023-11-14 22:13"},
		{"adaptive long span", language.English, TimeFormat{Policy: TimeUTCAdaptive}, midnight + 80000, 1e6, "2023-11-14"},
		{"day first locale", language.German, TimeFormat{Policy: TimeUTCAdaptive}, midnight + 80000, 1e6, "14/11/2023"},
		{"offset", language.English, TimeFormat{Policy: TimeUTC, OffsetMinutes: 60}, midnight + 80000, 0, "2023-11-14 23:13"},
		{"inside session", language.English, TimeFormat{Policy: TimeUTC, Session: session}, midnight + 14*3600, 0, "14:00"},
		{"session boundary", language.English, TimeFormat{Policy: TimeUTC, Session: session}, midnight + 9*3600 + 1800, 0, "2023-11-14 09:30"},
		{"outside session", language.English, TimeFormat{Policy: TimeUTC, Session: session}, midnight + 20*3600, 0, "2023-11-14 20:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := newTimeFormatter(t, tt.tag, tt.format)
			if got := tf.Format(tt.t, tt.span, tt.span/10); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestTimeFormatterIsMajor(t *testing.T) {
	session := &Session{StartMinute: 9*60 + 30, EndMinute: 16 * 60}
	tf := newTimeFormatter(t, language.English, TimeFormat{Policy: TimeUTC, Session: session})
	tests := []struct {
		t    float64
		want bool
	}{
		{midnight, true},
		{midnight + 9*3600 + 1800, true},
		{midnight + 16*3600, true},
		{midnight + 14*3600, false},
	}
	for _, tt := range tests {
		if got := tf.IsMajor(tt.t); got != tt.want {
			t.Errorf("IsMajor(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	logical := newTimeFormatter(t, language.English, DefaultTimeFormat())
	if logical.IsMajor(0) {
		t.Error("logical IsMajor(0) = true, want false")
	}
}

func TestTimeFormatValidate(t *testing.T) {
	bad := []TimeFormat{
		{Policy: TimePolicy(7)},
		{Policy: TimeUTC, OffsetMinutes: 15 * 60},
		{Policy: TimeUTC, Session: &Session{StartMinute: 600, EndMinute: 600}},
		{Policy: TimeUTC, Session: &Session{StartMinute: -1, EndMinute: 600}},
	}
	for _, f := range bad {
		if _, err := NewTimeFormatter(language.English, f); !errors.Is(err, coord.ErrInvalidInput) {
			t.Errorf("NewTimeFormatter(%+v) error = %v, want ErrInvalidInput", f, err)
		}
	}
}
