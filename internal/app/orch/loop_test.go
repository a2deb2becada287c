package orch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Meet/internal/core/coretest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(New(Options{}), 8)
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l, cancel
}

func TestLoop_SerializesEvents(t *testing.T) {
	l, _ := startLoop(t)
	ctx := context.Background()

	counter := 0
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Do(ctx, func(*Orchestrator) { counter++ }))
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, l.Do(ctx, func(*Orchestrator) { got = counter }))
	assert.Equal(t, 50, got)
}

func TestLoop_JoinThroughLoop(t *testing.T) {
	l, _ := startLoop(t)
	ctx := context.Background()
	conn := coretest.NewConn()

	var err error
	require.NoError(t, l.Do(ctx, func(o *Orchestrator) {
		o.Connect("A", conn, "")
		err = o.Join("A", "x")
	}))
	require.NoError(t, err)
	assert.Len(t, conn.Messages(), 1)
}

func TestLoop_SurvivesPanic(t *testing.T) {
	l, _ := startLoop(t)
	ctx := context.Background()

	require.NoError(t, l.Do(ctx, func(*Orchestrator) { panic("boom") }))
	ran := false
	require.NoError(t, l.Do(ctx, func(*Orchestrator) { ran = true }))
	assert.True(t, ran)
}

func TestLoop_StoppedRejectsEvents(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-l.done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	err := l.Do(context.Background(), func(*Orchestrator) {})
	assert.ErrorIs(t, err, ErrLoopStopped)
}

func TestLoop_DoHonoursContext(t *testing.T) {
	// never started, so nothing drains the unbuffered queue
	l := NewLoop(New(Options{}), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Do(ctx, func(*Orchestrator) {}), context.Canceled)
}
