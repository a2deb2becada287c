package orch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrLoopStopped = errors.New("orchestrator loop stopped")

type event struct {
	fn       func(*Orchestrator)
	finished chan struct{}
}

// Loop is the single goroutine that mutates the Orchestrator. Events run to
// completion one at a time in submission order.
type Loop struct {
	orch   *Orchestrator
	events chan event
	done   chan struct{}
}

func NewLoop(o *Orchestrator, buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		orch:   o,
		events: make(chan event, buffer),
		done:   make(chan struct{}),
	}
}

// Run processes events until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	log.Info().Str("module", "orch.loop").Msg("loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "orch.loop").Msg("loop stopped")
			return
		case ev := <-l.events:
			l.dispatch(ev)
		}
	}
}

func (l *Loop) dispatch(ev event) {
	defer close(ev.finished)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("module", "orch.loop").Err(fmt.Errorf("%v", r)).Msg("event handler panicked")
		}
	}()
	ev.fn(l.orch)
}

// Do runs fn on the loop and waits for it to finish. Once accepted, fn always
// runs to completion even if ctx is canceled meanwhile.
func (l *Loop) Do(ctx context.Context, fn func(*Orchestrator)) error {
	ev := event{fn: fn, finished: make(chan struct{})}
	select {
	case l.events <- ev:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ev.finished:
		return nil
	case <-l.done:
		select {
		case <-ev.finished:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}
