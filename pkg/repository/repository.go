package repository

import (
	"context"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data access operations.
// Returned customers carry the references of every account they own.
type CustomerRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	GetByTaxID(ctx context.Context, taxID string) (*customer.Customer, error)
	List(ctx context.Context) ([]*customer.Customer, error)
	Create(ctx context.Context, c *customer.Customer) error
	Update(ctx context.Context, c *customer.Customer) error
	// Delete removes the customer together with its accounts.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// GetForUpdate loads the account and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	Update(ctx context.Context, a *account.Account) error
}

// HistoryRepository defines the interface for the append-only transaction history.
type HistoryRepository interface {
	Create(ctx context.Context, e *account.HistoryEntry) error
	// ListByAccount returns entries where the account is origin or destination, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.HistoryEntry, error)
}
