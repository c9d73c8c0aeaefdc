package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/google/uuid"
)

var (
	// ErrCustomerNotFound is returned when a customer cannot be found in the
	// repository.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicateTaxID is returned when another customer already holds the tax id.
	ErrDuplicateTaxID = errors.New("tax id already registered")
	// ErrNameRequired is returned when a customer name is blank.
	ErrNameRequired = errors.New("customer name cannot be empty")
	// ErrTaxIDRequired is returned when a tax id is blank.
	ErrTaxIDRequired = errors.New("tax id cannot be empty")
)

// Customer is a bank client identified by a unique tax id.
// It owns at most one account of each kind.
type Customer struct {
	ID        uuid.UUID
	Name      string
	TaxID     string
	Accounts  []account.Ref
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a Customer with no accounts.
func New(name, taxID string) (*Customer, error) {
	name, taxID = strings.TrimSpace(name), strings.TrimSpace(taxID)
	if err := validate(name, taxID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Customer{
		ID:        uuid.New(),
		Name:      name,
		TaxID:     taxID,
		Accounts:  []account.Ref{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewFromData creates a Customer from raw data (used for DB hydration).
func NewFromData(
	id uuid.UUID,
	name, taxID string,
	accounts []account.Ref,
	created, updated time.Time,
) *Customer {
	if accounts == nil {
		accounts = []account.Ref{}
	}
	return &Customer{
		ID:        id,
		Name:      name,
		TaxID:     taxID,
		Accounts:  accounts,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func validate(name, taxID string) error {
	if name == "" {
		return ErrNameRequired
	}
	if taxID == "" {
		return ErrTaxIDRequired
	}
	return nil
}

// AddAccount attaches ref to the customer. It fails with
// account.ErrDuplicateAccountType when an account of the same kind is already owned.
func (c *Customer) AddAccount(ref account.Ref) error {
	if c.HasAccountOfKind(ref.Kind) {
		return account.ErrDuplicateAccountType
	}
	c.Accounts = append(c.Accounts, ref)
	return nil
}

// HasAccountOfKind reports whether the customer owns an account of kind k.
func (c *Customer) HasAccountOfKind(k account.Kind) bool {
	for _, ref := range c.Accounts {
		if ref.Kind == k {
			return true
		}
	}
	return false
}

// Owns reports whether accountID belongs to the customer.
func (c *Customer) Owns(accountID uuid.UUID) bool {
	for _, ref := range c.Accounts {
		if ref.ID == accountID {
			return true
		}
	}
	return false
}

// Update replaces the name and tax id. Uniqueness of the tax id is checked by the caller.
func (c *Customer) Update(name, taxID string) error {
	name, taxID = strings.TrimSpace(name), strings.TrimSpace(taxID)
	if err := validate(name, taxID); err != nil {
		return err
	}
	c.Name = name
	c.TaxID = taxID
	c.UpdatedAt = time.Now().UTC()
	return nil
}
