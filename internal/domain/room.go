package domain

import (
	"errors"
	"unicode/utf8"
)

const MaxRoomKeyLen = 256

var (
	ErrRoomKeyEmpty   = errors.New("room key empty")
	ErrRoomKeyTooLong = errors.New("room key too long")
	ErrRoomKeyInvalid = errors.New("room key is not valid utf-8")
)

// RoomKey is the externally supplied room identifier, usually the meeting
// URL path. Rooms have no creation step, the key is the room.
type RoomKey string

// NewRoomKey validates raw and keeps it byte for byte; "a" and "a " are
// different rooms.
func NewRoomKey(raw string) (RoomKey, error) {
	switch {
	case raw == "":
		return "", ErrRoomKeyEmpty
	case len(raw) > MaxRoomKeyLen:
		return "", ErrRoomKeyTooLong
	case !utf8.ValidString(raw):
		return "", ErrRoomKeyInvalid
	}
	return RoomKey(raw), nil
}

type RoomState int

const (
	RoomActive RoomState = iota
	RoomClosed
)

func (s RoomState) String() string {
	switch s {
	case RoomActive:
		return "active"
	case RoomClosed:
		return "closed"
	default:
		return "unknown"
	}
}
