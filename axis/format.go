package axis

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gogpu/ggchart/coord"
)

// maxPrecision caps fraction digits derived from a step.
const maxPrecision = 12

// numberPrinter formats decimals with a locale's grouping and separator.
type numberPrinter struct {
	tag     language.Tag
	printer *message.Printer
	sep     string
}

func newNumberPrinter(tag language.Tag) *numberPrinter {
	p := message.NewPrinter(tag)
	sample := p.Sprint(number.Decimal(1.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	sep := "."
	_, first := utf8.DecodeRuneInString(sample)
	if r, size := utf8.DecodeRuneInString(sample[first:]); size > 0 && r != utf8.RuneError {
		sep = string(r)
	}
	return &numberPrinter{tag: tag, printer: p, sep: sep}
}

// decimal formats v with exactly precision fraction digits.
func (n *numberPrinter) decimal(v float64, precision int, grouping bool) string {
	precision = min(max(precision, 0), maxPrecision)
	if math.Abs(v) < 0.5*math.Pow(10, -float64(precision)) {
		v = 0
	}
	opts := []number.Option{
		number.MinFractionDigits(precision),
		number.MaxFractionDigits(precision),
	}
	if !grouping {
		opts = append(opts, number.NoSeparator())
	}
	return n.printer.Sprint(number.Decimal(v, opts...))
}

// trimZeros drops trailing fraction zeros and a bare separator.
func (n *numberPrinter) trimZeros(s string) string {
	i := strings.LastIndex(s, n.sep)
	if i < 0 {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, n.sep)
}

// PrecisionForStep returns the fraction digits needed to tell ticks step
// apart, capped at 12. Non-positive or non-finite steps give 2.
func PrecisionForStep(step float64) int {
	if !(step > 0) || math.IsInf(step, 0) {
		return 2
	}
	s := decimal.NewFromFloat(step).StringFixed(maxPrecision)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(strings.TrimRight(s[i+1:], "0"))
}

// normalizeStep rounds step up to 1, 2 or 5 times a power of ten.
func normalizeStep(step float64) float64 {
	if !(step > 0) || math.IsInf(step, 0) {
		return step
	}
	s, _ := niceStep(step)
	return s
}

// PricePolicy selects how price labels choose their precision.
type PricePolicy uint8

const (
	// PriceAdaptive derives precision from the tick step.
	PriceAdaptive PricePolicy = iota
	// PriceFixed always prints Precision digits.
	PriceFixed
	// PriceMinMove rounds to a multiple of MinMove.
	PriceMinMove
)

// String returns the policy name.
func (p PricePolicy) String() string {
	switch p {
	case PriceAdaptive:
		return "adaptive"
	case PriceFixed:
		return "fixed"
	case PriceMinMove:
		return "min_move"
	default:
		return fmt.Sprintf("PricePolicy(%d)", p)
	}
}

// ParsePricePolicy parses a policy name as returned by String.
func ParsePricePolicy(s string) (PricePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adaptive", "":
		return PriceAdaptive, nil
	case "fixed":
		return PriceFixed, nil
	case "min_move", "minmove":
		return PriceMinMove, nil
	}
	return 0, fmt.Errorf("axis: unknown price label policy %q: %w", s, coord.ErrInvalidInput)
}

// PriceFormat configures price labels.
type PriceFormat struct {
	Policy PricePolicy
	// Precision is used by PriceFixed.
	Precision int
	// MinMove is the tick size used by PriceMinMove.
	MinMove float64
	// TrimZeros drops trailing fraction zeros under PriceMinMove.
	TrimZeros bool
}

// DefaultPriceFormat returns adaptive formatting.
func DefaultPriceFormat() PriceFormat {
	return PriceFormat{Policy: PriceAdaptive, Precision: 2, MinMove: 0.01}
}

// Validate checks the fields used by the policy.
func (f PriceFormat) Validate() error {
	switch f.Policy {
	case PriceAdaptive:
	case PriceFixed:
		if f.Precision < 0 || f.Precision > maxPrecision {
			return &coord.InputError{Op: "axis.PriceFormat", Field: "precision", Value: float64(f.Precision), Reason: "must be in [0,12]"}
		}
	case PriceMinMove:
		if err := coord.CheckPositive("axis.PriceFormat", "min_move", f.MinMove); err != nil {
			return err
		}
	default:
		return &coord.InputError{Op: "axis.PriceFormat", Field: "policy", Value: float64(f.Policy), Reason: "is unknown"}
	}
	return nil
}

// PriceFormatter renders price axis labels for one locale.
type PriceFormatter struct {
	format PriceFormat
	num    *numberPrinter
}

// NewPriceFormatter returns a formatter for locale.
func NewPriceFormatter(locale language.Tag, format PriceFormat) (*PriceFormatter, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	return &PriceFormatter{format: format, num: newNumberPrinter(locale)}, nil
}

// Format returns the label for a display-space value. step is the tick
// spacing in display units; mode adds the percent suffix.
func (f *PriceFormatter) Format(display, step float64, mode coord.PriceMode) string {
	if math.IsNaN(display) || math.IsInf(display, 0) {
		return "-"
	}
	var text string
	switch f.format.Policy {
	case PriceFixed:
		text = f.num.decimal(display, f.format.Precision, true)
	case PriceMinMove:
		mm := decimal.NewFromFloat(f.format.MinMove)
		snapped := decimal.NewFromFloat(display).Div(mm).Round(0).Mul(mm)
		text = f.num.decimal(snapped.InexactFloat64(), PrecisionForStep(f.format.MinMove), true)
		if f.format.TrimZeros {
			text = f.num.trimZeros(text)
		}
	default:
		text = f.num.decimal(display, PrecisionForStep(normalizeStep(step)), true)
	}
	if mode == coord.PriceModePercentage {
		text += "%"
	}
	return text
}

// Config returns the formatter's configuration.
func (f *PriceFormatter) Config() PriceFormat { return f.format }

// TimePolicy selects how time labels are rendered.
type TimePolicy uint8

const (
	// TimeLogical prints the raw time value as a decimal.
	TimeLogical TimePolicy = iota
	// TimeUTC treats times as unix seconds with a fixed pattern.
	TimeUTC
	// TimeUTCAdaptive picks the pattern from the visible span.
	TimeUTCAdaptive
)

// String returns the policy name.
func (p TimePolicy) String() string {
	switch p {
	case TimeLogical:
		return "logical"
	case TimeUTC:
		return "utc"
	case TimeUTCAdaptive:
		return "utc_adaptive"
	default:
		return fmt.Sprintf("TimePolicy(%d)", p)
	}
}

// ParseTimePolicy parses a policy name as returned by String.
func ParseTimePolicy(s string) (TimePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "logical", "":
		return TimeLogical, nil
	case "utc":
		return TimeUTC, nil
	case "utc_adaptive", "adaptive":
		return TimeUTCAdaptive, nil
	}
	return 0, fmt.Errorf("axis: unknown time label policy %q: %w", s, coord.ErrInvalidInput)
}

// TimeFormat configures time labels.
type TimeFormat struct {
	Policy TimePolicy
	// Precision is the fraction digits for TimeLogical. Negative derives
	// it from the tick step.
	Precision int
	// ShowSeconds adds seconds under TimeUTC.
	ShowSeconds bool
	// OffsetMinutes shifts UTC to the local clock.
	OffsetMinutes int
	// Session, when set, shortens labels inside the session to the time
	// of day and marks its boundaries as major ticks.
	Session *Session
}

// DefaultTimeFormat returns logical formatting with two decimals.
func DefaultTimeFormat() TimeFormat {
	return TimeFormat{Policy: TimeLogical, Precision: 2}
}

// Validate checks the offset and session bounds.
func (f TimeFormat) Validate() error {
	if f.Policy > TimeUTCAdaptive {
		return &coord.InputError{Op: "axis.TimeFormat", Field: "policy", Value: float64(f.Policy), Reason: "is unknown"}
	}
	if f.Precision > maxPrecision {
		return &coord.InputError{Op: "axis.TimeFormat", Field: "precision", Value: float64(f.Precision), Reason: "must be <= 12"}
	}
	if f.OffsetMinutes < -14*60 || f.OffsetMinutes > 14*60 {
		return &coord.InputError{Op: "axis.TimeFormat", Field: "offset_minutes", Value: float64(f.OffsetMinutes), Reason: "must be within ±14h"}
	}
	if s := f.Session; s != nil {
		if s.StartMinute < 0 || s.StartMinute >= 24*60 || s.EndMinute < 0 || s.EndMinute >= 24*60 || s.StartMinute == s.EndMinute {
			return &coord.InputError{Op: "axis.TimeFormat", Field: "session", Value: float64(s.StartMinute), Reason: "must be two distinct minutes of day"}
		}
	}
	return nil
}

// offsetSeconds returns the local offset in seconds.
func (f TimeFormat) offsetSeconds() float64 {
	return float64(f.OffsetMinutes) * 60
}

// TimeFormatter renders time axis labels for one locale.
type TimeFormatter struct {
	format   TimeFormat
	num      *numberPrinter
	zone     *time.Location
	dayFirst bool
}

// NewTimeFormatter returns a formatter for locale. Locales other than
// English print dates day first.
func NewTimeFormatter(locale language.Tag, format TimeFormat) (*TimeFormatter, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	base, _ := locale.Base()
	return &TimeFormatter{
		format:   format,
		num:      newNumberPrinter(locale),
		zone:     time.FixedZone("", format.OffsetMinutes*60),
		dayFirst: locale != language.Und && base.String() != "en",
	}, nil
}

// Format returns the label for time t on an axis showing span time units
// with ticks step apart.
func (f *TimeFormatter) Format(t, span, step float64) string {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return "-"
	}
	if f.format.Policy == TimeLogical {
		p := f.format.Precision
		if p < 0 {
			p = PrecisionForStep(normalizeStep(step))
		}
		return f.num.decimal(t, p, false)
	}

	sec := math.Round(t)
	if sec > math.MaxInt64/2 || sec < math.MinInt64/2 {
		return "-"
	}
	tm := time.Unix(int64(sec), 0).In(f.zone)

	withTime, withSeconds := true, f.format.ShowSeconds
	if f.format.Policy == TimeUTCAdaptive {
		switch {
		case span <= 600:
			withSeconds = true
		case span <= 172800:
			withSeconds = false
		default:
			withTime, withSeconds = false, false
		}
	}

	clock := "15:04"
	if withSeconds {
		clock = "15:04:05"
	}
	if s := f.format.Session; s != nil && withTime {
		minute := tm.Hour()*60 + tm.Minute()
		if s.Contains(minute) && !s.IsBoundary(minute, tm.Second()) {
			return tm.Format(clock)
		}
	}

	date := "2006-01-02"
	if f.dayFirst {
		date = "02/01/2006"
	}
	if !withTime {
		return tm.Format(date)
	}
	return tm.Format(date + " " + clock)
}

// IsMajor reports whether t falls on a local midnight or session boundary.
// It is false for logical times, whose majors come from the step ladder.
func (f *TimeFormatter) IsMajor(t float64) bool {
	if f.format.Policy == TimeLogical || math.IsNaN(t) || math.IsInf(t, 0) {
		return false
	}
	return isMajorLocal(t+f.format.offsetSeconds(), f.format.Session)
}

// Config returns the formatter's configuration.
func (f *TimeFormatter) Config() TimeFormat { return f.format }

// keySpan returns the part of (span, step) the label text depends on, so
// labels that print the same share a cache entry.
func (f *TimeFormatter) keySpan(span, step float64) float64 {
	switch f.format.Policy {
	case TimeLogical:
		if f.format.Precision < 0 {
			return normalizeStep(step)
		}
		return 0
	case TimeUTCAdaptive:
		switch {
		case span <= 600:
			return 1
		case span <= 172800:
			return 2
		}
		return 3
	}
	return 0
}

// keyStep is the price counterpart of keySpan.
func (f *PriceFormatter) keyStep(step float64) float64 {
	if f.format.Policy == PriceAdaptive {
		return normalizeStep(step)
	}
	return 0
}
