package account

import (
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/google/uuid"
)

// TransactionKind is the kind of balance change a history entry records.
type TransactionKind string

const (
	TransactionDeposit    TransactionKind = "DEPOSIT"
	TransactionWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionTransfer   TransactionKind = "TRANSFER"
)

// HistoryEntry is an append-only ledger record of a balance change.
// DestinationAccountID is set only for transfers.
type HistoryEntry struct {
	ID                   uuid.UUID
	Kind                 TransactionKind
	Amount               money.Money
	OriginAccountID      uuid.UUID
	DestinationAccountID *uuid.UUID
	CreatedAt            time.Time
}

// NewDepositEntry records a deposit into accountID.
func NewDepositEntry(accountID uuid.UUID, amount money.Money, at time.Time) *HistoryEntry {
	return newEntry(TransactionDeposit, accountID, nil, amount, at)
}

// NewWithdrawalEntry records a withdrawal from accountID.
func NewWithdrawalEntry(accountID uuid.UUID, amount money.Money, at time.Time) *HistoryEntry {
	return newEntry(TransactionWithdrawal, accountID, nil, amount, at)
}

// NewTransferEntry records a transfer from originID to destinationID.
func NewTransferEntry(originID, destinationID uuid.UUID, amount money.Money, at time.Time) *HistoryEntry {
	return newEntry(TransactionTransfer, originID, &destinationID, amount, at)
}

// NewHistoryEntryFromData hydrates an entry from storage.
func NewHistoryEntryFromData(
	id uuid.UUID,
	kind TransactionKind,
	amount money.Money,
	originID uuid.UUID,
	destinationID *uuid.UUID,
	createdAt time.Time,
) *HistoryEntry {
	return &HistoryEntry{
		ID:                   id,
		Kind:                 kind,
		Amount:               amount,
		OriginAccountID:      originID,
		DestinationAccountID: destinationID,
		CreatedAt:            createdAt,
	}
}

func newEntry(kind TransactionKind, originID uuid.UUID, destinationID *uuid.UUID, amount money.Money, at time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:                   uuid.New(),
		Kind:                 kind,
		Amount:               amount,
		OriginAccountID:      originID,
		DestinationAccountID: destinationID,
		CreatedAt:            at.UTC(),
	}
}

// Involves reports whether accountID is the origin or destination of the entry.
func (e *HistoryEntry) Involves(accountID uuid.UUID) bool {
	if e.OriginAccountID == accountID {
		return true
	}
	return e.DestinationAccountID != nil && *e.DestinationAccountID == accountID
}
