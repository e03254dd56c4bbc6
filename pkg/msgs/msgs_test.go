package msgs

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/padscan/pkg/gamepad"
)

func TestTopicID(t *testing.T) {
	tests := []struct {
		id, expected string
	}{
		{"Xbox 360 Pad (js0)", "Xbox_360_Pad_(js0)"},
		{"a/b+c#", "a_b_c_"},
		{"", "_"},
	}
	for _, test := range tests {
		require.Equal(t, test.expected, TopicID(test.id), test.id)
	}
	require.Equal(t, "s1/blocks/pad_(js1)", BlockTopic("s1", "pad (js1)"))
	require.Equal(t, "s1/label", LabelTopic("s1"))
}

func TestDecodeBlock(t *testing.T) {
	inputs := []gamepad.Input{
		{Kind: gamepad.KindButton, Name: "A", Value: 1},
		{Kind: gamepad.KindAxis, Name: "Left Vertically", Value: -0.5},
	}
	block := NewDisplayBlock("pad (js0)", "pad (js0)", gamepad.FormatInputs(inputs), inputs)
	data, err := proto.Marshal(block)
	require.NoError(t, err)

	msg, err := Decode(BlockTopic("s", "pad (js0)"), data)
	require.NoError(t, err)
	decoded, ok := msg.(*DisplayBlock)
	require.True(t, ok)
	require.Equal(t, "pad (js0)", decoded.DeviceId)
	require.Equal(t, block.Text, decoded.Text)
	require.Equal(t, inputs, decoded.GamepadInputs())
}

func TestDecodeStatus(t *testing.T) {
	data, err := proto.Marshal(&ScanStatus{Session: "s", Scanning: true, Label: "Scanning..."})
	require.NoError(t, err)
	msg, err := Decode("s/label", data)
	require.NoError(t, err)
	require.Equal(t, &ScanStatus{Session: "s", Scanning: true, Label: "Scanning..."}, msg)
}

func TestDecodeEmptyAndUnknown(t *testing.T) {
	msg, err := Decode("s/blocks/pad", nil)
	require.NoError(t, err)
	require.Nil(t, msg)

	for _, topic := range []string{"s", "s/meta", "s/blocks", "s/blocks/a/b", "label"} {
		_, err = Decode(topic, []byte{1})
		require.Equal(t, ErrUnknownTopic, err, topic)
	}

	_, err = Decode("s/label", []byte{0xff})
	require.Error(t, err)
}
