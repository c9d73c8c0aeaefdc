package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// Customer events
	EventTypeCustomerRegistered EventType = "Customer.Registered"
	EventTypeCustomerUpdated    EventType = "Customer.Updated"
	EventTypeCustomerDeleted    EventType = "Customer.Deleted"

	// Account events
	EventTypeAccountOpened    EventType = "Account.Opened"
	EventTypeMoneyDeposited   EventType = "Account.Deposited"
	EventTypeMoneyWithdrawn   EventType = "Account.Withdrawn"
	EventTypeMoneyTransferred EventType = "Account.Transferred"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
