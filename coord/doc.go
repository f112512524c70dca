// Package coord provides the pure coordinate transforms used by ggchart.
//
// # Spaces
//
// Three value types map logical units to pixel offsets:
//   - LinearSpace maps a time range onto a horizontal pixel extent.
//   - TimeIndexSpace maps bar indices onto pixels using bar spacing and a
//     right offset measured in bars.
//   - PriceSpace maps raw prices onto a vertical pixel extent through a
//     PriceMode transform, margins and optional inversion.
//
// All methods are pure: they read only their receiver and arguments and
// never mutate shared state. Non-finite input yields ErrInvalidInput rather
// than a NaN pixel.
//
// # Bar index convention
//
// TimeIndexSpace places the center of bar i at
//
//	x = Width - (BaseIndex + RightOffset - i + 0.5)*BarSpacing - 1
//
// so the newest bar (i == BaseIndex) with a zero right offset is centered
// half a bar left of the last pixel column.
//
// # Price modes
//
//	Linear        T(v) = v
//	Log           T(v) = ln(v)                 (v > 0)
//	Percentage    T(v) = (v-base)/base*100
//	IndexedTo100  T(v) = (v-base)/base*100 + 100
//
// A base of 0, NaN or ±Inf is replaced by 1 (see SanitizeBase).
package coord
