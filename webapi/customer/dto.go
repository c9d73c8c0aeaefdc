package customer

import (
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/customer"
)

//revive:disable

// RegisterRequest represents the request body for registering a customer.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	TaxID string `json:"tax_id" validate:"required,max=64"`
}

// UpdateRequest carries the replacement name and tax id.
type UpdateRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	TaxID string `json:"tax_id" validate:"required,max=64"`
}

type AccountRefDTO struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// CustomerDTO is the API response representation of a customer.
type CustomerDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	TaxID     string          `json:"tax_id"`
	Accounts  []AccountRefDTO `json:"accounts"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

//revive:enable

func toCustomerDTO(c *customer.Customer) CustomerDTO {
	refs := make([]AccountRefDTO, 0, len(c.Accounts))
	for _, r := range c.Accounts {
		refs = append(refs, AccountRefDTO{ID: r.ID.String(), Kind: r.Kind.String()})
	}
	return CustomerDTO{
		ID:        c.ID.String(),
		Name:      c.Name,
		TaxID:     c.TaxID,
		Accounts:  refs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
