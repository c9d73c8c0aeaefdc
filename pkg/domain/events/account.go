package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountOpened is emitted after a new account is persisted.
type AccountOpened struct {
	Meta
	AccountID  uuid.UUID `json:"account_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Kind       string    `json:"kind"`
}

func (e *AccountOpened) Type() string { return EventTypeAccountOpened.String() }

// MoneyDeposited is emitted after a deposit commits.
type MoneyDeposited struct {
	Meta
	AccountID uuid.UUID       `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}

func (e *MoneyDeposited) Type() string { return EventTypeMoneyDeposited.String() }

// MoneyWithdrawn is emitted after a withdrawal commits.
type MoneyWithdrawn struct {
	Meta
	AccountID uuid.UUID       `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}

func (e *MoneyWithdrawn) Type() string { return EventTypeMoneyWithdrawn.String() }

// MoneyTransferred is emitted after a transfer commits.
type MoneyTransferred struct {
	Meta
	SourceAccountID      uuid.UUID       `json:"source_account_id"`
	DestinationAccountID uuid.UUID       `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
}

func (e *MoneyTransferred) Type() string { return EventTypeMoneyTransferred.String() }
