package pubsub

import (
	"context"
	"time"
)

// EventType identifies the kind of event being published.
type EventType string

const (
	// SelectionChanged fires when a selection store publishes a new snapshot.
	SelectionChanged EventType = "selection.changed"
	// CompositionStarted fires when an IME composition session begins.
	CompositionStarted EventType = "composition.started"
	// CompositionEnded fires when an IME composition session commits.
	CompositionEnded EventType = "composition.ended"
	// ConfigReloaded fires when the watched config file changes on disk.
	ConfigReloaded EventType = "config.reloaded"
	// LogLine fires for every emitted log entry.
	LogLine EventType = "log.line"
)

// Event is a published event with a typed payload.
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
