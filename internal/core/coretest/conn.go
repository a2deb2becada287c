// Package coretest provides an in-memory core.SignalConnection for tests.
package coretest

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/Meet/internal/core"
)

// Conn records frames instead of writing them. With a capacity set it
// behaves like a buffered channel nobody drains: every TrySend or
// TrySendBatch takes one slot until Reset.
type Conn struct {
	mu       sync.Mutex
	frames   []core.Frame
	full     bool
	closed   bool
	capacity int
	used     int
}

func NewConn() *Conn { return &Conn{} }

// NewConnWithCapacity returns a Conn that accepts at most n sends.
func NewConnWithCapacity(n int) *Conn { return &Conn{capacity: n} }

func (c *Conn) TrySend(f core.Frame) error {
	return c.TrySendBatch([]core.Frame{f})
}

func (c *Conn) TrySendBatch(fs []core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrClosed
	}
	if c.full || (c.capacity > 0 && c.used >= c.capacity) {
		return core.ErrBackpressure
	}
	c.used++
	c.frames = append(c.frames, fs...)
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// SetFull makes every following TrySend fail with backpressure.
func (c *Conn) SetFull(full bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = full
}

func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Messages decodes every received frame as a JSON object.
func (c *Conn) Messages() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.frames))
	for _, f := range c.frames {
		var m map[string]any
		if err := json.Unmarshal(f, &m); err != nil {
			m = map[string]any{"raw": string(f)}
		}
		out = append(out, m)
	}
	return out
}

// Types lists the "type" field of every received frame.
func (c *Conn) Types() []string {
	msgs := c.Messages()
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		t, _ := m["type"].(string)
		out = append(out, t)
	}
	return out
}

func (c *Conn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
	c.used = 0
}
