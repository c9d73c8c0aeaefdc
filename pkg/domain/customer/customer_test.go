package customer_test

import (
	"testing"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := customer.New(" Wallace ", "123")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Wallace", c.Name)
	assert.Equal(t, "123", c.TaxID)
	assert.Empty(t, c.Accounts)

	_, err = customer.New("", "123")
	assert.ErrorIs(t, err, customer.ErrNameRequired)
	_, err = customer.New("Wallace", "  ")
	assert.ErrorIs(t, err, customer.ErrTaxIDRequired)
}

func TestAddAccount(t *testing.T) {
	t.Parallel()

	c, err := customer.New("Wallace", "123")
	require.NoError(t, err)

	checking := account.Ref{ID: uuid.New(), Kind: account.KindChecking}
	savings := account.Ref{ID: uuid.New(), Kind: account.KindSavings}

	require.NoError(t, c.AddAccount(checking))
	require.NoError(t, c.AddAccount(savings))
	assert.Len(t, c.Accounts, 2)
	assert.True(t, c.Owns(checking.ID))

	err = c.AddAccount(account.Ref{ID: uuid.New(), Kind: account.KindChecking})
	assert.ErrorIs(t, err, account.ErrDuplicateAccountType)
	assert.Len(t, c.Accounts, 2, "account set must be unchanged after a rejected add")
	assert.Equal(t, []account.Ref{checking, savings}, c.Accounts)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	c, err := customer.New("Wallace", "123")
	require.NoError(t, err)

	require.NoError(t, c.Update("Gromit", "456"))
	assert.Equal(t, "Gromit", c.Name)
	assert.Equal(t, "456", c.TaxID)

	assert.ErrorIs(t, c.Update("", "456"), customer.ErrNameRequired)
	assert.Equal(t, "Gromit", c.Name)
}
