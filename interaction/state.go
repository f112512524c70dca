package interaction

// Mode is the drag state.
type Mode uint8

const (
	// ModeIdle means no drag is in progress.
	ModeIdle Mode = iota
	// ModePanning means the user is dragging the plot.
	ModePanning
)

// State groups the interaction state owned by one chart.
type State struct {
	Crosshair Crosshair
	Kinetic   *Kinetic
	Wheel     Wheel
	mode      Mode
}

// NewState returns an idle state with the given kinetic configuration.
func NewState(kinetic KineticConfig, crosshair CrosshairMode) (*State, error) {
	k, err := NewKinetic(kinetic)
	if err != nil {
		return nil, err
	}
	s := &State{Kinetic: k}
	if _, err := s.Crosshair.SetMode(crosshair); err != nil {
		return nil, err
	}
	return s, nil
}

// Mode returns the drag state.
func (s *State) Mode() Mode { return s.mode }

// PanStart enters the panning state and halts any kinetic motion.
func (s *State) PanStart() {
	s.mode = ModePanning
	s.Kinetic.Stop()
}

// PanEnd leaves the panning state.
func (s *State) PanEnd() { s.mode = ModeIdle }
