package domain

import (
	"encoding/json"
	"time"
)

// ChatEntry is one message of a room transcript. Payload is opaque JSON as
// received from the client.
type ChatEntry struct {
	Sender  SenderLabel
	Payload json.RawMessage
	From    ConnID
	At      time.Time
}
