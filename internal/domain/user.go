// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/google/uuid"
)

const DefaultMaxSenderLen = 64

var (
	ErrSenderTooLong = errors.New("sender label too long")
	ErrConnIDEmpty   = errors.New("connection id empty")
)

// ConnID identifies one signaling channel for its whole lifetime.
type ConnID string

func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

// ParseConnID validates an id received from a client.
func ParseConnID(raw string) (ConnID, error) {
	if raw == "" {
		return "", ErrConnIDEmpty
	}
	return ConnID(raw), nil
}

// SenderLabel is the display name a client attaches to chat messages.
// It is caller supplied and never authenticated.
type SenderLabel string

// NewSenderLabel enforces maxLen (bytes) and otherwise relays raw as sent.
// An empty label is allowed, some clients send none.
func NewSenderLabel(raw string, maxLen int) (SenderLabel, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxSenderLen
	}
	if len(raw) > maxLen {
		return "", ErrSenderTooLong
	}
	return SenderLabel(raw), nil
}
