package events

import "github.com/google/uuid"

// CustomerRegistered is emitted after a customer is persisted.
type CustomerRegistered struct {
	Meta
	CustomerID uuid.UUID `json:"customer_id"`
	TaxID      string    `json:"tax_id"`
}

func (e *CustomerRegistered) Type() string { return EventTypeCustomerRegistered.String() }

// CustomerUpdated is emitted after a customer's name or tax id changes.
type CustomerUpdated struct {
	Meta
	CustomerID    uuid.UUID `json:"customer_id"`
	PreviousTaxID string    `json:"previous_tax_id"`
	TaxID         string    `json:"tax_id"`
}

func (e *CustomerUpdated) Type() string { return EventTypeCustomerUpdated.String() }

// CustomerDeleted is emitted after a customer and its accounts are removed.
type CustomerDeleted struct {
	Meta
	CustomerID uuid.UUID   `json:"customer_id"`
	TaxID      string      `json:"tax_id"`
	AccountIDs []uuid.UUID `json:"account_ids"`
}

func (e *CustomerDeleted) Type() string { return EventTypeCustomerDeleted.String() }
