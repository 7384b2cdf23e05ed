// Package pubsub provides a generic publish/subscribe event system used to
// broadcast artifact lifecycle and log events.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent signals a freshly materialized and persisted artifact.
	CreatedEvent EventType = "created"

	// RetrievedEvent signals that an existing artifact satisfied a request.
	RetrievedEvent EventType = "retrieved"

	// ChangedEvent signals an external modification, e.g. the store file
	// written by another process.
	ChangedEvent EventType = "changed"

	// LogEntryEvent carries a formatted log line from the logger's broker.
	LogEntryEvent EventType = "log"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
