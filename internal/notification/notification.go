// Package notification broadcasts alert payloads to registered listeners.
// Delivery is fire-and-forget: one slow or failing listener must never block
// or fail delivery to the others.
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the category of a notification.
type Type string

const (
	// TypeAlert carries a full bird-strike alert payload.
	TypeAlert Type = "alert"
	// TypeSystem indicates a system status notification.
	TypeSystem Type = "system"
	// TypeDeterrent reports deterrent playback state changes.
	TypeDeterrent Type = "deterrent"
)

// Priority represents the urgency of a notification.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Notification is one message fanned out to all subscribers.
type Notification struct {
	ID        uuid.UUID      `json:"id"`
	Type      Type           `json:"type"`
	Priority  Priority       `json:"priority"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// New creates a notification with a fresh ID and current timestamp.
func New(typ Type, priority Priority, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		Type:      typ,
		Priority:  priority,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// With adds a metadata key/value and returns the notification for chaining.
func (n *Notification) With(key string, value any) *Notification {
	if n.Metadata == nil {
		n.Metadata = make(map[string]any)
	}
	n.Metadata[key] = value
	return n
}
