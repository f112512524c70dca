package ggchart

import (
	"github.com/gogpu/ggchart/coord"
	"github.com/gogpu/ggchart/interaction"
)

// SetCrosshairMode changes the crosshair mode. A change invalidates the
// label cache.
func (e *Engine) SetCrosshairMode(m interaction.CrosshairMode) error {
	changed, err := e.input.Crosshair.SetMode(m)
	if err != nil {
		return err
	}
	if changed {
		e.labels.InvalidateAll()
		Logger().Debug("ggchart: crosshair mode changed", "mode", m.String())
	}
	return nil
}

// PointerMove records the pointer. In magnet mode the crosshair snaps to
// the sample nearest in time, at its close (or value).
func (e *Engine) PointerMove(x, y float64) error {
	return e.input.Crosshair.PointerMove(x, y, interaction.SnapperFunc(e.snapAt))
}

// PointerLeave hides the crosshair until the next PointerMove.
func (e *Engine) PointerLeave() {
	e.input.Crosshair.PointerLeave()
}

func (e *Engine) snapAt(x, _ float64) (interaction.Snap, bool) {
	if len(e.times) == 0 {
		return interaction.Snap{}, false
	}
	t, err := e.time.PixelToTime(x)
	if err != nil {
		return interaction.Snap{}, false
	}
	i := interaction.NearestSample(e.times, t)
	if i < 0 {
		return interaction.Snap{}, false
	}

	var st, price float64
	if len(e.candles) > 0 {
		st, price = e.candles[i].Time, e.candles[i].Close
	} else {
		st, price = e.points[i].Time, e.points[i].Value
	}
	sx, err := e.time.TimeToPixel(st)
	if err != nil {
		return interaction.Snap{}, false
	}
	sy, err := e.price.PriceToPixel(price)
	if err != nil {
		return interaction.Snap{}, false
	}
	return interaction.Snap{Index: i, Time: st, Price: price, X: sx, Y: sy}, true
}

// PanStart marks the start of a drag and halts kinetic motion.
func (e *Engine) PanStart() {
	e.input.PanStart()
}

// PanEnd marks the end of a drag.
func (e *Engine) PanEnd() {
	e.input.PanEnd()
}

// StartKineticPan starts a kinetic pan at velocity pixels per second,
// typically the drag velocity at release.
func (e *Engine) StartKineticPan(velocity float64) error {
	return e.input.Kinetic.Start(velocity)
}

// StopKineticPan halts kinetic motion.
func (e *Engine) StopKineticPan() {
	e.input.Kinetic.Stop()
}

// StepKineticPan advances the kinetic pan by ticks fixed steps and
// reports whether the view moved. The host calls it from its frame clock.
func (e *Engine) StepKineticPan(ticks int) (bool, error) {
	if ticks < 0 {
		return false, &coord.InputError{Op: "ggchart.StepKineticPan", Field: "ticks", Value: float64(ticks), Reason: "must be >= 0"}
	}
	moved := false
	for range ticks {
		dx, ok := e.input.Kinetic.Step()
		if !ok {
			break
		}
		if err := e.PanByPixels(dx); err != nil {
			e.input.Kinetic.Stop()
			return moved, err
		}
		moved = true
	}
	return moved, nil
}
