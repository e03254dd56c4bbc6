package web

import (
	"encoding/json"

	"github.com/robotalks/padscan/pkg/display"
)

// Message is exchanged with the page over websocket.
type Message struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	Label  string `json:"label,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Actions
const (
	// ActionReset removes all blocks.
	ActionReset = "reset"
	// ActionLabel sets the label of the toggle control.
	ActionLabel = "label"
	// ActionBlock inserts or replaces a block.
	ActionBlock = "block"
	// ActionRemove removes a block.
	ActionRemove = "remove"
	// ActionToggle is sent by the page when the control is clicked.
	ActionToggle = "toggle"
)

func blockMessage(b *display.Block) Message {
	return Message{Action: ActionBlock, ID: b.ID, Label: b.Label(), Text: b.Text}
}

func (m Message) encode() []byte {
	encoded, _ := json.Marshal(m)
	return encoded
}
