package broker

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope every message on the service topics is wrapped in.
type Event struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent marshals payload into a fresh envelope.
func NewEvent(eventType string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   body,
		Timestamp: time.Now().UTC(),
	})
}
