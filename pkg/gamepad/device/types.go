// Package device reads joystick devices and keeps their latest
// state for sampling.
package device

import (
	"errors"
	"io"
)

// ErrUnsupported indicates joystick devices can't be read on this platform.
var ErrUnsupported = errors.New("joystick devices unsupported on this platform")

// Event defines the base event interface.
type Event interface {
	// IsInit indicates this is the init state.
	IsInit() bool
	// Index returns either Axis or Button index.
	Index() int
}

// AxisEvent represents the change on an axis.
type AxisEvent interface {
	Event
	// Value is the raw value in [-32767, 32767].
	Value() int
}

// ButtonEvent represents the change on a button.
type ButtonEvent interface {
	Event
	Pressed() bool
}

// Device represents an opened joystick.
type Device interface {
	io.Closer
	// Index returns the index of the device on the system.
	Index() int
	// Name returns the name of the device.
	Name() string
	// AxisCount returns the number of Axis on the device.
	AxisCount() int
	// ButtonCount returns the number of buttons on the device.
	ButtonCount() int
	// ReadEvent reads one event from the device.
	ReadEvent() (Event, error)
}

// OpenFunc opens the device at path, which is the index-th joystick.
type OpenFunc func(path string, index int) (Device, error)
