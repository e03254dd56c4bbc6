package gamepad

import (
	"encoding/json"
	"math"
	"strings"
)

// Deadzone is the axis displacement at or below which an axis
// is considered at rest.
const Deadzone = 0.2

// InputKind tells buttons from axes.
type InputKind string

// Input kinds.
const (
	KindButton InputKind = "button"
	KindAxis   InputKind = "axis"
)

// Input is an actuated control.
type Input struct {
	Kind  InputKind `json:"type"`
	Name  string    `json:"name"`
	Value float64   `json:"value"`
}

// Actuation is the set of actuated controls of a snapshot.
type Actuation struct {
	Buttons []Input
	Axes    []Input
}

// AxisActuated reports whether an axis value is outside the deadzone.
func AxisActuated(v float64) bool {
	return math.Abs(v) > Deadzone
}

// Actuated computes the actuated buttons and axes, both in index order.
func Actuated(s *Snapshot) (a Actuation) {
	for n, b := range s.Buttons {
		if b.Pressed {
			a.Buttons = append(a.Buttons, Input{
				Kind:  KindButton,
				Name:  ButtonName(n, s.Mapping),
				Value: b.Value,
			})
		}
	}
	for n, v := range s.Axes {
		if AxisActuated(v) {
			a.Axes = append(a.Axes, Input{
				Kind:  KindAxis,
				Name:  AxisName(n, s.Mapping),
				Value: v,
			})
		}
	}
	return
}

// Empty indicates nothing is actuated.
func (a Actuation) Empty() bool {
	return len(a.Buttons) == 0 && len(a.Axes) == 0
}

// Inputs returns buttons followed by axes.
func (a Actuation) Inputs() []Input {
	inputs := make([]Input, 0, len(a.Buttons)+len(a.Axes))
	inputs = append(inputs, a.Buttons...)
	return append(inputs, a.Axes...)
}

// Names joins the names of all actuated controls.
func (a Actuation) Names() string {
	inputs := a.Inputs()
	names := make([]string, len(inputs))
	for n, in := range inputs {
		names[n] = in.Name
	}
	return strings.Join(names, ", ")
}

// FormatInputs dumps inputs as a tab indented JSON array.
func FormatInputs(inputs []Input) string {
	if inputs == nil {
		inputs = []Input{}
	}
	out, err := json.MarshalIndent(inputs, "", "\t")
	if err != nil {
		// only NaN or Inf values can't be encoded.
		return "[]"
	}
	return string(out)
}
