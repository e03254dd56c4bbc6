// Package gamepad defines device snapshots and the rules deciding
// which controls of a gamepad are actuated.
package gamepad

// MappingStandard is the mapping type of devices laid out as the
// standard gamepad: 17 buttons and 4 axes in a fixed order.
const MappingStandard = "standard"

// ButtonState is the state of a button in a snapshot.
type ButtonState struct {
	Pressed bool
	// Value is in [0, 1]; analog buttons (triggers) report
	// intermediate values.
	Value float64
}

// Snapshot is one frame's reading of a connected gamepad.
type Snapshot struct {
	ID      string
	Mapping string
	Buttons []ButtonState
	// Axes are in [-1, 1].
	Axes []float64
}

// Source lists currently connected gamepads. The returned slice
// may contain nil entries for empty slots.
type Source interface {
	Gamepads() ([]*Snapshot, error)
}

// SourceFunc is the func form of Source.
type SourceFunc func() ([]*Snapshot, error)

// Gamepads implements Source.
func (f SourceFunc) Gamepads() ([]*Snapshot, error) {
	return f()
}

// Connected drops the empty slots.
func Connected(slots []*Snapshot) []*Snapshot {
	pads := make([]*Snapshot, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			pads = append(pads, s)
		}
	}
	return pads
}
