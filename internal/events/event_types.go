package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserDeleted EventType = "user_deleted"
	EventPostCreated EventType = "post_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	PostID string `json:"post_id"`
}
