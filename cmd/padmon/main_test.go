package main

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/padscan/pkg/msgs"
)

func TestDescribe(t *testing.T) {
	data, err := proto.Marshal(&msgs.ScanStatus{Session: "s", Scanning: true, Label: "Scanning..."})
	require.NoError(t, err)
	out := describe("s/label", data)
	require.Contains(t, out, "s/label: [ScanStatus] ")
	require.Contains(t, out, `session:"s"`)
	require.Contains(t, out, "scanning:true")
	require.Equal(t, "s/blocks/pad: (cleared)", describe("s/blocks/pad", nil))
	require.Equal(t, `s/meta: "x"`, describe("s/meta", []byte("x")))
	require.Contains(t, describe("s/label", []byte{0xff}), "bad message")
}
