package msgs

import (
	"encoding/json"
	"os"
)

// TopicMeta is the topic of SessionMeta, cleared by the broker
// when the publisher disappears.
const TopicMeta = "meta"

// SessionMeta describes a publishing session, encoded in JSON.
type SessionMeta struct {
	Session     string `json:"session"`
	Host        string `json:"host,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewSessionMeta creates the SessionMeta of this host.
func NewSessionMeta(session string) *SessionMeta {
	host, _ := os.Hostname()
	return &SessionMeta{
		Session:     session,
		Host:        host,
		Description: "Gamepad input viewer",
	}
}

// MetaTopic is the topic of SessionMeta.
func MetaTopic(session string) string {
	return session + "/" + TopicMeta
}

// Encode encodes the meta in JSON.
func (m *SessionMeta) Encode() []byte {
	encoded, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return encoded
}
