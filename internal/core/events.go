package core

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/Meet/internal/domain"
)

// Outbound event types.
const (
	TypeUserJoined  = "user-joined"
	TypeUserLeft    = "user-left"
	TypeChatMessage = "chat-message"
	TypeSignal      = "signal"
	TypeError       = "error"
)

type UserJoined struct {
	Type    string          `json:"type"`
	ID      domain.ConnID   `json:"id"`
	Members []domain.ConnID `json:"members"`
}

type UserLeft struct {
	Type string        `json:"type"`
	ID   domain.ConnID `json:"id"`
}

type ChatMessage struct {
	Type    string             `json:"type"`
	Payload json.RawMessage    `json:"payload"`
	Sender  domain.SenderLabel `json:"sender"`
	From    domain.ConnID      `json:"from"`
}

type Signal struct {
	Type    string          `json:"type"`
	From    domain.ConnID   `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func NewUserJoined(id domain.ConnID, members []domain.ConnID) UserJoined {
	return UserJoined{Type: TypeUserJoined, ID: id, Members: members}
}

func NewUserLeft(id domain.ConnID) UserLeft {
	return UserLeft{Type: TypeUserLeft, ID: id}
}

func NewChatMessage(e domain.ChatEntry) ChatMessage {
	return ChatMessage{Type: TypeChatMessage, Payload: nullIfEmpty(e.Payload), Sender: e.Sender, From: e.From}
}

func NewSignal(from domain.ConnID, payload json.RawMessage) Signal {
	return Signal{Type: TypeSignal, From: from, Payload: nullIfEmpty(payload)}
}

func NewErrorEvent(code string) ErrorEvent {
	return ErrorEvent{Type: TypeError, Error: code}
}

func Encode(v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return b, nil
}

// json.RawMessage(nil) marshals to null already, but an empty non-nil slice is invalid JSON.
func nullIfEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
