package account

import (
	"errors"
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccountType is returned when a customer already owns an account of the requested kind.
	ErrDuplicateAccountType = errors.New("customer already has an account of this type")

	// ErrInvalidAccountType is returned for unknown kind tokens and for
	// operations that are not supported by the account's kind.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInvalidAmount is returned when an operation amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when an account has insufficient funds for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidDate is returned when a simulation date is in the past or less than a whole month ahead.
	ErrInvalidDate = errors.New("invalid simulation date")

	// ErrCustomerRequired is returned when building an account without an owner.
	ErrCustomerRequired = errors.New("customer id is required")
)

// Account is a balance owned by exactly one customer.
//
// Invariants:
//   - CustomerID never changes after creation.
//   - Balance never goes negative through Withdraw or Transfer.
//   - Kind decides which operations beyond deposit/withdraw/transfer apply.
type Account struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Kind       Kind
	Balance    money.Money
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Ref is the lightweight reference a customer keeps for each owned account.
type Ref struct {
	ID   uuid.UUID
	Kind Kind
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id         uuid.UUID
	customerID uuid.UUID
	kind       Kind
	balance    money.Money
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a new Builder with a fresh id and a zero balance.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		balance:   money.Zero(),
		createdAt: now,
		updatedAt: now,
	}
}

func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

func (b *Builder) WithCustomerID(customerID uuid.UUID) *Builder {
	b.customerID = customerID
	return b
}

func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// WithBalance sets the balance. Only used when hydrating from storage or in tests.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the owner and kind and returns the account.
func (b *Builder) Build() (*Account, error) {
	if b.customerID == uuid.Nil {
		return nil, ErrCustomerRequired
	}
	if !b.kind.Valid() {
		return nil, ErrInvalidAccountType
	}
	return &Account{
		ID:         b.id,
		CustomerID: b.customerID,
		Kind:       b.kind,
		Balance:    b.balance,
		CreatedAt:  b.createdAt,
		UpdatedAt:  b.updatedAt,
	}, nil
}

// Ref returns the reference the owning customer keeps for this account.
func (a *Account) Ref() Ref {
	return Ref{ID: a.ID, Kind: a.Kind}
}

func validateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateDeposit checks the deposit amount.
func (a *Account) ValidateDeposit(amount money.Money) error {
	return validateAmount(amount)
}

// ValidateWithdraw checks the amount and that the balance covers it.
func (a *Account) ValidateWithdraw(amount money.Money) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateTransfer checks the amount against this account as the source.
func (a *Account) ValidateTransfer(amount money.Money) error {
	return a.ValidateWithdraw(amount)
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount money.Money) error {
	if err := a.ValidateDeposit(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Withdraw subtracts amount from the balance. The balance is left untouched on error.
func (a *Account) Withdraw(amount money.Money) error {
	if err := a.ValidateWithdraw(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Transfer moves amount from a to dest. When dest is a itself the balance is unchanged.
func (a *Account) Transfer(dest *Account, amount money.Money) error {
	if err := a.ValidateTransfer(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(amount)
	dest.Balance = dest.Balance.Add(amount)
	now := time.Now().UTC()
	a.UpdatedAt = now
	dest.UpdatedAt = now
	return nil
}
