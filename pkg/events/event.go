package events

import (
	"encoding/json"
	"time"
)

// TypeConversationTurn is emitted once per completed dialogue turn.
const TypeConversationTurn = "conversation.turn"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted event name, also used as the bus topic suffix.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// FromJSON wraps a JSON object payload as an event of the given type.
func FromJSON(eventType string, raw []byte, at time.Time) (BaseEvent, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return BaseEvent{}, err
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}, nil
}
