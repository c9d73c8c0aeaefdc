package eventbus

import (
	"context"

	"github.com/amirasaad/digitalbank/pkg/domain/events"
)

// HandlerFunc processes a single event.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus defines the contract for publishing domain events and registering handlers.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
