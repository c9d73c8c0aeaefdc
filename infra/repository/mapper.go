package repository

import (
	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
)

func mapCustomerToModel(c *customer.Customer) *Customer {
	return &Customer{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func mapCustomerToDomain(m *Customer) *customer.Customer {
	refs := make([]account.Ref, 0, len(m.Accounts))
	for _, a := range m.Accounts {
		refs = append(refs, account.Ref{ID: a.ID, Kind: account.Kind(a.Kind)})
	}
	return customer.NewFromData(m.ID, m.Name, m.TaxID, refs, m.CreatedAt, m.UpdatedAt)
}

func mapAccountToModel(a *account.Account) *Account {
	return &Account{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Kind:       a.Kind.String(),
		Balance:    NewDecimal(a.Balance.Decimal()),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func mapAccountToDomain(m *Account) (*account.Account, error) {
	return account.New().
		WithID(m.ID).
		WithCustomerID(m.CustomerID).
		WithKind(account.Kind(m.Kind)).
		WithBalance(money.FromDecimal(m.Balance.Decimal)).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}

func mapHistoryToModel(e *account.HistoryEntry) *HistoryEntry {
	return &HistoryEntry{
		ID:                   e.ID,
		Kind:                 string(e.Kind),
		Amount:               NewDecimal(e.Amount.Decimal()),
		OriginAccountID:      e.OriginAccountID,
		DestinationAccountID: e.DestinationAccountID,
		CreatedAt:            e.CreatedAt,
	}
}

func mapHistoryToDomain(m *HistoryEntry) *account.HistoryEntry {
	return account.NewHistoryEntryFromData(
		m.ID,
		account.TransactionKind(m.Kind),
		money.FromDecimal(m.Amount.Decimal),
		m.OriginAccountID,
		m.DestinationAccountID,
		m.CreatedAt,
	)
}
