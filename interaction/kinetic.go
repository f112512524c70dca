package interaction

import (
	"math"

	"github.com/gogpu/ggchart/coord"
)

// KineticConfig tunes the kinetic pan integrator. Velocities are in
// pixels per second.
type KineticConfig struct {
	// Decay multiplies the velocity once per step. Must be in (0,1).
	Decay float64
	// StopVelocity ends the motion once |velocity| falls below it.
	StopVelocity float64
	// Dt is the fixed step in seconds.
	Dt float64
}

// DefaultKineticConfig returns a 60 Hz integrator that loses 8% of its
// velocity per step.
func DefaultKineticConfig() KineticConfig {
	return KineticConfig{
		Decay:        0.92,
		StopVelocity: 5,
		Dt:           1.0 / 60,
	}
}

// Validate checks the configuration.
func (c KineticConfig) Validate() error {
	if !coord.IsFinite(c.Decay) || c.Decay <= 0 || c.Decay >= 1 {
		return &coord.InputError{Op: "interaction.KineticConfig", Field: "decay", Value: c.Decay, Reason: "must be in (0,1)"}
	}
	if err := coord.CheckPositive("interaction.KineticConfig", "stop velocity", c.StopVelocity); err != nil {
		return err
	}
	return coord.CheckPositive("interaction.KineticConfig", "dt", c.Dt)
}

// Kinetic integrates a decaying pan velocity with a fixed step, so a
// replay with the same inputs yields the same displacements.
type Kinetic struct {
	cfg      KineticConfig
	velocity float64
	active   bool
}

// NewKinetic returns an idle integrator.
func NewKinetic(cfg KineticConfig) (*Kinetic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Kinetic{cfg: cfg}, nil
}

// Config returns the configuration.
func (k *Kinetic) Config() KineticConfig { return k.cfg }

// SetConfig replaces the configuration. The motion, if any, continues.
func (k *Kinetic) SetConfig(cfg KineticConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	k.cfg = cfg
	return nil
}

// Active reports whether a motion is in progress.
func (k *Kinetic) Active() bool { return k.active }

// Velocity returns the current velocity.
func (k *Kinetic) Velocity() float64 { return k.velocity }

// Start begins a motion with velocity v. A zero velocity stops.
func (k *Kinetic) Start(v float64) error {
	if err := coord.CheckFinite("interaction.Kinetic.Start", "velocity", v); err != nil {
		return err
	}
	if math.Abs(v) < k.cfg.StopVelocity {
		k.Stop()
		return nil
	}
	k.velocity, k.active = v, true
	return nil
}

// Stop ends the motion.
func (k *Kinetic) Stop() {
	k.velocity, k.active = 0, false
}

// Step advances one fixed step and returns the displacement in pixels.
// ok is false when no motion was active.
func (k *Kinetic) Step() (displacement float64, ok bool) {
	if !k.active {
		return 0, false
	}
	displacement = k.velocity * k.cfg.Dt
	k.velocity *= k.cfg.Decay
	if math.Abs(k.velocity) < k.cfg.StopVelocity {
		k.Stop()
	}
	return displacement, true
}
