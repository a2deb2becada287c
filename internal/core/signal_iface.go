package core

import "errors"

// Frame is an encoded outbound message.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
// TrySend and TrySendBatch must never block. A batch occupies a single
// buffer slot and its frames are written in order.
type SignalConnection interface {
	TrySend(Frame) error
	TrySendBatch([]Frame) error
	Close()
}

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)
