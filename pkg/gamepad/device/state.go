package device

import (
	"github.com/robotalks/padscan/pkg/gamepad"
)

const axisMax = 32767

// State accumulates events of a device.
type State struct {
	layout  *Layout
	buttons []bool
	axes    []int
}

// NewState creates the state for a device.
func NewState(name string, buttonCount, axisCount int) *State {
	s := &State{
		layout:  LayoutFor(name),
		buttons: make([]bool, buttonCount),
		axes:    make([]int, axisCount),
	}
	if s.layout != nil {
		// triggers rest at the negative end.
		for raw := range s.layout.Triggers {
			if raw < len(s.axes) {
				s.axes[raw] = -axisMax
			}
		}
	}
	return s
}

// Apply updates the state with an event. Out of range indices are ignored.
func (s *State) Apply(ev Event) {
	switch e := ev.(type) {
	case ButtonEvent:
		if n := e.Index(); n >= 0 && n < len(s.buttons) {
			s.buttons[n] = e.Pressed()
		}
	case AxisEvent:
		if n := e.Index(); n >= 0 && n < len(s.axes) {
			s.axes[n] = e.Value()
		}
	}
}

// Snapshot reads the current state.
func (s *State) Snapshot(id string) *gamepad.Snapshot {
	if s.layout == nil {
		return s.rawSnapshot(id)
	}
	snap := &gamepad.Snapshot{
		ID:      id,
		Mapping: gamepad.MappingStandard,
		Buttons: make([]gamepad.ButtonState, gamepad.StandardButtons),
		Axes:    make([]float64, gamepad.StandardAxes),
	}
	for raw, std := range s.layout.Buttons {
		if s.button(raw) {
			snap.Buttons[std] = gamepad.ButtonState{Pressed: true, Value: 1}
		}
	}
	for raw, std := range s.layout.Triggers {
		v := normalizeTrigger(s.axis(raw, -axisMax))
		snap.Buttons[std] = gamepad.ButtonState{Pressed: v > TriggerThreshold, Value: v}
	}
	if x := s.axis(s.layout.HatX, 0); x < 0 {
		snap.Buttons[gamepad.ButtonLeft] = gamepad.ButtonState{Pressed: true, Value: 1}
	} else if x > 0 {
		snap.Buttons[gamepad.ButtonRight] = gamepad.ButtonState{Pressed: true, Value: 1}
	}
	if y := s.axis(s.layout.HatY, 0); y < 0 {
		snap.Buttons[gamepad.ButtonUp] = gamepad.ButtonState{Pressed: true, Value: 1}
	} else if y > 0 {
		snap.Buttons[gamepad.ButtonDown] = gamepad.ButtonState{Pressed: true, Value: 1}
	}
	for raw, std := range s.layout.Axes {
		snap.Axes[std] = normalizeAxis(s.axis(raw, 0))
	}
	return snap
}

func (s *State) rawSnapshot(id string) *gamepad.Snapshot {
	snap := &gamepad.Snapshot{
		ID:      id,
		Buttons: make([]gamepad.ButtonState, len(s.buttons)),
		Axes:    make([]float64, len(s.axes)),
	}
	for n, pressed := range s.buttons {
		if pressed {
			snap.Buttons[n] = gamepad.ButtonState{Pressed: true, Value: 1}
		}
	}
	for n, v := range s.axes {
		snap.Axes[n] = normalizeAxis(v)
	}
	return snap
}

func (s *State) button(n int) bool {
	return n >= 0 && n < len(s.buttons) && s.buttons[n]
}

func (s *State) axis(n, absent int) int {
	if n < 0 || n >= len(s.axes) {
		return absent
	}
	return s.axes[n]
}

// normalizeAxis converts a raw axis value to [-1, 1].
func normalizeAxis(raw int) float64 {
	v := float64(raw) / axisMax
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// normalizeTrigger converts a raw trigger axis value to [0, 1].
func normalizeTrigger(raw int) float64 {
	return (normalizeAxis(raw) + 1) / 2
}
