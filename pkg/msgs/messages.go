// Package msgs defines the messages published to remote viewers.
//
// Producer: padscan
// Consumer: padmon, any MQTT subscriber
package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/padscan/pkg/gamepad"
)

// Input is an actuated button or axis.
type Input struct {
	Kind  string  `protobuf:"bytes,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Name  string  `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Value float64 `protobuf:"fixed64,3,opt,name=value,proto3" json:"value,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Input) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Input) Reset() { *m = Input{} }

// String implements proto.Message.
func (m *Input) String() string { return proto.CompactTextString(m) }

// DisplayBlock is the display of one device.
type DisplayBlock struct {
	DeviceId string   `protobuf:"bytes,1,opt,name=device_id,proto3" json:"device_id,omitempty"`
	Label    string   `protobuf:"bytes,2,opt,name=label,proto3" json:"label,omitempty"`
	Inputs   []*Input `protobuf:"bytes,3,rep,name=inputs,proto3" json:"inputs,omitempty"`
	Text     string   `protobuf:"bytes,4,opt,name=text,proto3" json:"text,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *DisplayBlock) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DisplayBlock) Reset() { *m = DisplayBlock{} }

// String implements proto.Message.
func (m *DisplayBlock) String() string { return proto.CompactTextString(m) }

// ScanStatus reflects the toggle control of a session.
type ScanStatus struct {
	Session  string `protobuf:"bytes,1,opt,name=session,proto3" json:"session,omitempty"`
	Scanning bool   `protobuf:"varint,2,opt,name=scanning,proto3" json:"scanning,omitempty"`
	Label    string `protobuf:"bytes,3,opt,name=label,proto3" json:"label,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *ScanStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ScanStatus) Reset() { *m = ScanStatus{} }

// String implements proto.Message.
func (m *ScanStatus) String() string { return proto.CompactTextString(m) }

// NewDisplayBlock creates a DisplayBlock from actuated inputs.
func NewDisplayBlock(deviceID, label, text string, inputs []gamepad.Input) *DisplayBlock {
	m := &DisplayBlock{DeviceId: deviceID, Label: label, Text: text}
	for _, in := range inputs {
		m.Inputs = append(m.Inputs, &Input{
			Kind:  string(in.Kind),
			Name:  in.Name,
			Value: in.Value,
		})
	}
	return m
}

// GamepadInputs converts back to gamepad inputs.
func (m *DisplayBlock) GamepadInputs() []gamepad.Input {
	inputs := make([]gamepad.Input, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		inputs = append(inputs, gamepad.Input{
			Kind:  gamepad.InputKind(in.Kind),
			Name:  in.Name,
			Value: in.Value,
		})
	}
	return inputs
}
