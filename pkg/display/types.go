// Package display renders per-device blocks of actuated inputs
// on one or more surfaces.
package display

import (
	"github.com/robotalks/padscan/pkg/gamepad"
)

// Toggle control labels.
const (
	LabelIdle     = "Detect"
	LabelScanning = "Scanning..."
)

// Block is the display of one device.
type Block struct {
	// ID is the device identifier, also used as the label.
	ID     string
	Inputs []gamepad.Input
	// Text is the preformatted dump of Inputs.
	Text string
}

// NewBlock creates a block of a device.
func NewBlock(id string, inputs []gamepad.Input) *Block {
	return &Block{
		ID:     id,
		Inputs: inputs,
		Text:   gamepad.FormatInputs(inputs),
	}
}

// Label is the title of the block.
func (b *Block) Label() string {
	return b.ID
}

// Equal compares content of two blocks.
func (b *Block) Equal(o *Block) bool {
	return o != nil && b.ID == o.ID && b.Text == o.Text
}

// Surface is where the toggle control and the output container live.
type Surface interface {
	// SetToggleLabel updates the text of the toggle control.
	SetToggleLabel(label string) error
	// Put inserts a block or replaces the block with the same ID.
	Put(b *Block) error
	// Remove removes the block of a device. Removing an
	// absent block is not an error.
	Remove(id string) error
	// Clear removes all blocks.
	Clear() error
}
