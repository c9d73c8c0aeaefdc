package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/digitalbank/pkg/domain"
	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	other := errors.New("some other error")
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "nil error returns nil", input: nil, expected: nil},
		{name: "duplicate key maps to ErrAlreadyExists", input: gorm.ErrDuplicatedKey, expected: domain.ErrAlreadyExists},
		{name: "record not found maps to ErrNotFound", input: gorm.ErrRecordNotFound, expected: domain.ErrNotFound},
		{name: "foreign key maps to ErrValidation", input: gorm.ErrForeignKeyViolated, expected: domain.ErrValidation},
		{name: "wrapped duplicate key", input: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), expected: domain.ErrAlreadyExists},
		{name: "joined record not found", input: errors.Join(errors.New("outer"), gorm.ErrRecordNotFound), expected: domain.ErrNotFound},
		{name: "non-GORM error returns original", input: other, expected: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				assert.NoError(t, result)
				return
			}
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	assert.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrRecordNotFound }), domain.ErrNotFound)
}

func TestTranslate(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound, account.ErrAccountNotFound, nil), account.ErrAccountNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey, customer.ErrCustomerNotFound, customer.ErrDuplicateTaxID), customer.ErrDuplicateTaxID)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey, account.ErrAccountNotFound, nil), domain.ErrAlreadyExists)
	assert.NoError(t, translate(nil, account.ErrAccountNotFound, nil))
}
