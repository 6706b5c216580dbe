package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"bizdash/internal/events"
)

// RecordEventMessage is the wire form of a record change. It carries ids and
// a short summary only; consumers never receive full records.
type RecordEventMessage struct {
	Kind      string    `json:"kind"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEventMessage(e events.Event) *RecordEventMessage {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &RecordEventMessage{
		Kind:      e.Kind,
		Action:    e.Action,
		ID:        e.ID,
		Summary:   e.Summary,
		Timestamp: ts,
	}
}

// Event converts the message back into a domain event.
func (m *RecordEventMessage) Event() events.Event {
	return events.Event{
		Kind:      m.Kind,
		Action:    m.Action,
		ID:        m.ID,
		Summary:   m.Summary,
		Timestamp: m.Timestamp,
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON decodes a message and checks that it names a
// record kind, an action and an id.
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Kind == "" || msg.Action == "" || msg.ID == "" {
		return nil, fmt.Errorf("incomplete record event: kind=%q action=%q id=%q", msg.Kind, msg.Action, msg.ID)
	}
	return &msg, nil
}
