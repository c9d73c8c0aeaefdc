package common

import (
	"errors"

	"github.com/amirasaad/digitalbank/pkg/domain"
	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/gofiber/fiber/v2"
)

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, customer.ErrCustomerNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrInvalidAccountType),
		errors.Is(err, account.ErrInvalidDate),
		errors.Is(err, money.ErrInvalidFormat),
		errors.Is(err, money.ErrTooPrecise),
		errors.Is(err, customer.ErrNameRequired),
		errors.Is(err, customer.ErrTaxIDRequired),
		errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, customer.ErrDuplicateTaxID),
		errors.Is(err, account.ErrDuplicateAccountType),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, account.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
