package events

import (
	"encoding/json"
	"time"
)

const (
	TypeSearchCompleted   = "search_completed"
	TypeDispatchStarted   = "dispatch_started"
	TypeDispatchCompleted = "dispatch_completed"
	TypeDownloadsProgress = "downloads_progress"
)

// Version of the event envelope.
const Version = 1

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent encodes one envelope. Data that cannot be marshalled is dropped.
func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	e := Event{
		Type:      typ,
		Version:   Version,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
