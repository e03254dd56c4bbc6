package msgs

import (
	"errors"
	"strings"

	"github.com/golang/protobuf/proto"
)

// Topic names under the session.
const (
	TopicLabel  = "label"
	TopicBlocks = "blocks"
)

// ErrUnknownTopic indicates the topic doesn't carry a known message.
var ErrUnknownTopic = errors.New("unknown topic")

var topicIDReplacer = strings.NewReplacer("/", "_", "+", "_", "#", "_", " ", "_")

// TopicID converts a device ID into a single topic level.
func TopicID(deviceID string) string {
	if deviceID == "" {
		return "_"
	}
	return topicIDReplacer.Replace(deviceID)
}

// LabelTopic is the topic of ScanStatus.
func LabelTopic(session string) string {
	return session + "/" + TopicLabel
}

// BlockTopic is the topic of the DisplayBlock of a device.
func BlockTopic(session, deviceID string) string {
	return session + "/" + TopicBlocks + "/" + TopicID(deviceID)
}

// Decode decodes the payload according to the topic which is relative
// to the topic prefix. An empty payload is a cleared retained message
// and decodes to nil.
func Decode(topic string, payload []byte) (proto.Message, error) {
	var msg proto.Message
	levels := strings.Split(topic, "/")
	switch {
	case len(levels) == 2 && levels[1] == TopicLabel:
		msg = &ScanStatus{}
	case len(levels) == 3 && levels[1] == TopicBlocks:
		msg = &DisplayBlock{}
	default:
		return nil, ErrUnknownTopic
	}
	if len(payload) == 0 {
		return nil, nil
	}
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
