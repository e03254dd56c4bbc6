package env

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionID(t *testing.T) {
	id := SessionID()
	require.NotEmpty(t, id)
	require.Equal(t, id, SessionID())
	require.NotContains(t, id, "/")
}
