package repository

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a customer record in the database.
// Rows are hard-deleted so a tax id can be registered again afterwards.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:255"`
	TaxID     string    `gorm:"uniqueIndex;not null;size:64"`
	Accounts  []Account `gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account represents an account record in the database.
// The composite unique index enforces one account per kind per customer.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_customer_kind"`
	Kind       string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_accounts_customer_kind"`
	Balance    Decimal   `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HistoryEntry represents a persisted ledger record. Account ids are plain
// columns without foreign keys; entries outlive the accounts they mention.
type HistoryEntry struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind                 string     `gorm:"type:varchar(16);not null"`
	Amount               Decimal    `gorm:"not null"`
	OriginAccountID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DestinationAccountID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt            time.Time  `gorm:"not null;index"`
}

func (Customer) TableName() string     { return "customers" }
func (Account) TableName() string      { return "accounts" }
func (HistoryEntry) TableName() string { return "transaction_history" }
