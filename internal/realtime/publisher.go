package realtime

import (
	"context"
	"encoding/json"
)

// Event types pushed over the live channel to a user's connected sessions.
const (
	EventNewNotification = "newNotification"
	EventUnseenCount     = "unseenCount"
)

// Event is one live push to a user.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent marshals the payload; a marshal failure is a programming error
// surfaced to the caller rather than silently dropped.
func NewEvent(eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Payload: data}, nil
}

// Publisher pushes events to a user's live sessions. It is injected into the
// notification service so the core logic never touches a process-wide socket
// handle and stays testable without a running hub or broker.
type Publisher interface {
	Publish(ctx context.Context, userID string, event Event) error
}

// NopPublisher discards every event; used in tests and when Redis is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, userID string, event Event) error {
	return nil
}
