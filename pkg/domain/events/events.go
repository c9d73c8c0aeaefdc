package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event published on the bus.
type Event interface {
	Type() string
}

// Keyed is implemented by events that carry a unique id usable for deduplication.
type Keyed interface {
	Key() string
}

// Meta holds the identity and timestamp shared by all events.
type Meta struct {
	EventID    uuid.UUID `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMeta stamps a fresh event id and the current time.
func NewMeta() Meta {
	return Meta{EventID: uuid.New(), OccurredAt: time.Now().UTC()}
}

// Key returns the event id as a string.
func (m Meta) Key() string {
	return m.EventID.String()
}

// EventTypes maps every event type to a constructor of its zero value.
// Brokered buses use it to decode payloads.
var EventTypes = map[string]func() Event{
	EventTypeCustomerRegistered.String(): func() Event { return &CustomerRegistered{} },
	EventTypeCustomerUpdated.String():    func() Event { return &CustomerUpdated{} },
	EventTypeCustomerDeleted.String():    func() Event { return &CustomerDeleted{} },
	EventTypeAccountOpened.String():      func() Event { return &AccountOpened{} },
	EventTypeMoneyDeposited.String():     func() Event { return &MoneyDeposited{} },
	EventTypeMoneyWithdrawn.String():     func() Event { return &MoneyWithdrawn{} },
	EventTypeMoneyTransferred.String():   func() Event { return &MoneyTransferred{} },
}
