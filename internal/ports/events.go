package ports

import "context"

// Theme lifecycle event types.
const (
	EventThemeBootstrapped = "theme.bootstrapped"
	EventThemeChanged      = "theme.changed"
)

// DomainEvent is something that happened, with a loggable payload.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventHandler reacts to a published event. A returned error is logged by
// the publisher and does not stop delivery to other handlers.
type EventHandler func(ctx context.Context, event DomainEvent) error

// EventPublisher fans events out to subscribers. Publish never fails; the
// func returned by Subscribe removes the handler and is safe to call twice.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent)
	Subscribe(eventType string, handler EventHandler) (unsubscribe func())
}
