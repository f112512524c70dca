package interaction

import (
	"fmt"

	"github.com/gogpu/ggchart/coord"
)

// CrosshairMode selects how the crosshair follows the pointer.
type CrosshairMode uint8

const (
	// CrosshairNormal follows the raw pointer.
	CrosshairNormal CrosshairMode = iota
	// CrosshairMagnet snaps to the nearest data sample.
	CrosshairMagnet
	// CrosshairHidden hides the crosshair and ignores pointer moves.
	CrosshairHidden
)

// String returns the mode name.
func (m CrosshairMode) String() string {
	switch m {
	case CrosshairNormal:
		return "normal"
	case CrosshairMagnet:
		return "magnet"
	case CrosshairHidden:
		return "hidden"
	default:
		return fmt.Sprintf("CrosshairMode(%d)", uint8(m))
	}
}

// ParseCrosshairMode parses the names produced by String.
func ParseCrosshairMode(s string) (CrosshairMode, error) {
	for m := CrosshairNormal; m <= CrosshairHidden; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("interaction: unknown crosshair mode %q: %w", s, coord.ErrInvalidInput)
}

// Snap is the data sample a magnet crosshair locked onto.
type Snap struct {
	Index int
	Time  float64
	Price float64
	X     float64
	Y     float64
}

// Snapper resolves the sample nearest to a pointer position.
type Snapper interface {
	SnapAt(x, y float64) (Snap, bool)
}

// SnapperFunc adapts a function to Snapper.
type SnapperFunc func(x, y float64) (Snap, bool)

// SnapAt calls f.
func (f SnapperFunc) SnapAt(x, y float64) (Snap, bool) { return f(x, y) }

// Crosshair tracks the pointer and the magnet snap.
// The zero value is a normal-mode crosshair with no pointer.
type Crosshair struct {
	mode       CrosshairMode
	x, y       float64
	hasPointer bool
	snap       Snap
	hasSnap    bool
}

// Mode returns the current mode.
func (c *Crosshair) Mode() CrosshairMode { return c.mode }

// SetMode changes the mode and reports whether it changed. Switching to
// hidden clears the pointer and snap.
func (c *Crosshair) SetMode(m CrosshairMode) (bool, error) {
	if m > CrosshairHidden {
		return false, &coord.InputError{Op: "interaction.Crosshair.SetMode", Field: "mode", Value: float64(m), Reason: "is unknown"}
	}
	if m == c.mode {
		return false, nil
	}
	c.mode = m
	switch m {
	case CrosshairHidden:
		c.clear()
	case CrosshairNormal:
		c.snap, c.hasSnap = Snap{}, false
	}
	return true, nil
}

// PointerMove records a pointer position. In magnet mode snapper resolves
// the snap; a nil snapper leaves it empty. Hidden mode ignores the call.
func (c *Crosshair) PointerMove(x, y float64, snapper Snapper) error {
	if err := coord.CheckFinite("interaction.Crosshair.PointerMove", "x", x); err != nil {
		return err
	}
	if err := coord.CheckFinite("interaction.Crosshair.PointerMove", "y", y); err != nil {
		return err
	}
	switch c.mode {
	case CrosshairHidden:
		return nil
	case CrosshairMagnet:
		c.snap, c.hasSnap = Snap{}, false
		if snapper != nil {
			c.snap, c.hasSnap = snapper.SnapAt(x, y)
		}
	default:
		c.snap, c.hasSnap = Snap{}, false
	}
	c.x, c.y, c.hasPointer = x, y, true
	return nil
}

// PointerLeave clears the pointer and snap.
func (c *Crosshair) PointerLeave() { c.clear() }

func (c *Crosshair) clear() {
	c.x, c.y, c.hasPointer = 0, 0, false
	c.snap, c.hasSnap = Snap{}, false
}

// Pointer returns the last pointer position.
func (c *Crosshair) Pointer() (x, y float64, ok bool) { return c.x, c.y, c.hasPointer }

// Snap returns the magnet snap.
func (c *Crosshair) Snap() (Snap, bool) { return c.snap, c.hasSnap }

// Position returns where the crosshair lines are drawn: the snap point in
// magnet mode, the pointer otherwise.
func (c *Crosshair) Position() (x, y float64, ok bool) {
	if c.hasSnap {
		return c.snap.X, c.snap.Y, true
	}
	return c.Pointer()
}
