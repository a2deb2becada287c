package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dkeye/Meet/internal/core/coretest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelay_ForwardOnlyToTarget(t *testing.T) {
	reg := NewRegistry(nil)
	a, b, c := coretest.NewConn(), coretest.NewConn(), coretest.NewConn()
	reg.Bind("a", a, "", time.Now())
	reg.Bind("b", b, "", time.Now())
	reg.Bind("c", c, "", time.Now())
	relay := &Relay{Registry: reg}

	require.NoError(t, relay.Forward("b", "a", json.RawMessage(`{"sdp":"x"}`)))

	assert.Empty(t, a.Messages())
	assert.Empty(t, c.Messages())
	require.Len(t, b.Messages(), 1)
	assert.Equal(t, map[string]any{
		"type":    "signal",
		"from":    "a",
		"payload": map[string]any{"sdp": "x"},
	}, b.Messages()[0])
}

func TestRelay_UnknownTarget(t *testing.T) {
	reg := NewRegistry(nil)
	a := coretest.NewConn()
	reg.Bind("a", a, "", time.Now())
	relay := &Relay{Registry: reg}

	assert.ErrorIs(t, relay.Forward("gone", "a", json.RawMessage(`1`)), ErrUnknownTarget)
	assert.Empty(t, a.Messages())
}
