package app

import (
	"testing"
	"time"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/core/coretest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BindSendUnbind(t *testing.T) {
	reg := NewRegistry(nil)
	conn := coretest.NewConn()
	start := time.Unix(10, 0)

	reg.Bind("a", conn, "token", start)
	require.True(t, reg.Has("a"))
	require.NoError(t, reg.SendJSON("a", core.NewUserLeft("b")))
	assert.Equal(t, []string{core.TypeUserLeft}, conn.Types())

	d, ok := reg.Unbind("a", start.Add(3*time.Second))
	assert.True(t, ok)
	assert.Equal(t, 3*time.Second, d)
	assert.ErrorIs(t, reg.Send("a", core.Frame("{}")), ErrUnknownConn)

	_, ok = reg.Unbind("a", start)
	assert.False(t, ok)
}

func TestRegistry_Backpressure(t *testing.T) {
	tests := []struct {
		name       string
		policy     Policy
		wantClosed bool
	}{
		{name: "kick closes slow member", policy: SimplePolicy{}, wantClosed: true},
		{name: "drop keeps connection", policy: DropPolicy{}, wantClosed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(tt.policy)
			conn := coretest.NewConn()
			conn.SetFull(true)
			reg.Bind("slow", conn, "", time.Now())

			err := reg.Send("slow", core.Frame("{}"))
			require.ErrorIs(t, err, core.ErrBackpressure)
			assert.Equal(t, tt.wantClosed, conn.Closed())
		})
	}
}

func TestRegistry_SendToClosed(t *testing.T) {
	reg := NewRegistry(nil)
	conn := coretest.NewConn()
	conn.Close()
	reg.Bind("a", conn, "", time.Now())

	assert.ErrorIs(t, reg.Send("a", core.Frame("{}")), core.ErrClosed)
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, KickMember, p.OnBackPressure("x"))

	p, err = PolicyByName("drop")
	require.NoError(t, err)
	assert.Equal(t, DropFrame, p.OnBackPressure("x"))

	_, err = PolicyByName("ignore")
	assert.Error(t, err)
}

func TestRegistry_SendBatchTakesOneSlot(t *testing.T) {
	reg := NewRegistry(SimplePolicy{})
	conn := coretest.NewConnWithCapacity(2)
	reg.Bind("a", conn, "", time.Now())

	batch := make([]core.Frame, 0, 10)
	for range 10 {
		batch = append(batch, core.Frame(`{"type":"chat-message"}`))
	}
	require.NoError(t, reg.Send("a", core.Frame(`{"type":"user-joined"}`)))
	require.NoError(t, reg.SendBatch("a", batch))
	require.NoError(t, reg.SendBatch("a", nil))

	assert.False(t, conn.Closed())
	assert.Len(t, conn.Messages(), 11)

	assert.ErrorIs(t, reg.SendBatch("a", batch), core.ErrBackpressure)
	assert.True(t, conn.Closed())
	assert.ErrorIs(t, reg.SendBatch("gone", batch), ErrUnknownConn)
}
