//go:build linux
// +build linux

package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	// time=1, value=1, type=button|init, number=3
	ev, err := decodeEvent([]byte{1, 0, 0, 0, 1, 0, 0x81, 3})
	require.NoError(t, err)
	btn, ok := ev.(ButtonEvent)
	require.True(t, ok)
	require.True(t, btn.IsInit())
	require.True(t, btn.Pressed())
	require.Equal(t, 3, btn.Index())

	// value=-32767, type=axis, number=1
	ev, err = decodeEvent([]byte{0, 0, 0, 0, 0x01, 0x80, 0x02, 1})
	require.NoError(t, err)
	axis, ok := ev.(AxisEvent)
	require.True(t, ok)
	require.False(t, axis.IsInit())
	require.Equal(t, -32767, axis.Value())
	require.Equal(t, 1, axis.Index())

	ev, err = decodeEvent([]byte{0, 0, 0, 0, 0, 0, 0x04, 0})
	require.NoError(t, err)
	_, isAxis := ev.(AxisEvent)
	_, isButton := ev.(ButtonEvent)
	require.False(t, isAxis)
	require.False(t, isButton)
}
