package account_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func newAccount(t *testing.T, kind account.Kind, balance string) *account.Account {
	t.Helper()
	acc, err := account.New().
		WithCustomerID(uuid.New()).
		WithKind(kind).
		WithBalance(money.MustParse(balance)).
		Build()
	require.NoError(t, err)
	return acc
}

func TestNewAccount(t *testing.T) {
	t.Parallel()

	t.Run("zero balance by default", func(t *testing.T) {
		acc, err := account.New().WithCustomerID(uuid.New()).WithKind(account.KindChecking).Build()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, acc.ID)
		assert.True(t, acc.Balance.IsZero())
		assert.Equal(t, account.Ref{ID: acc.ID, Kind: account.KindChecking}, acc.Ref())
	})

	t.Run("owner required", func(t *testing.T) {
		_, err := account.New().WithKind(account.KindSavings).Build()
		assert.ErrorIs(t, err, account.ErrCustomerRequired)
	})

	t.Run("kind required", func(t *testing.T) {
		_, err := account.New().WithCustomerID(uuid.New()).Build()
		assert.ErrorIs(t, err, account.ErrInvalidAccountType)
	})
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  account.Kind
		err   error
	}{
		{token: "checking", want: account.KindChecking},
		{token: "SAVINGS", want: account.KindSavings},
		{token: "CC", want: account.KindChecking},
		{token: "cp", want: account.KindSavings},
		{token: " CP ", want: account.KindSavings},
		{token: "XX", err: account.ErrInvalidAccountType},
		{token: "", err: account.ErrInvalidAccountType},
	}
	for _, tt := range tests {
		got, err := account.ParseKind(tt.token)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.token)
			continue
		}
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}

	assert.Equal(t, "CC", account.KindChecking.Code())
	assert.Equal(t, "CP", account.KindSavings.Code())
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	t.Run("adds exactly", func(t *testing.T) {
		acc := newAccount(t, account.KindChecking, "0")
		require.NoError(t, acc.Deposit(money.MustParse("1000")))
		assert.Equal(t, "1000.00", acc.Balance.String())
		require.NoError(t, acc.Deposit(money.MustParse("0.105")))
		assert.Equal(t, "1000.105", acc.Balance.String())
	})

	for _, amt := range []string{"0", "-5"} {
		t.Run("rejects "+amt, func(t *testing.T) {
			acc := newAccount(t, account.KindChecking, "10")
			err := acc.Deposit(money.MustParse(amt))
			assert.ErrorIs(t, err, account.ErrInvalidAmount)
			assert.Equal(t, "10.00", acc.Balance.String())
		})
	}
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	acc := newAccount(t, account.KindChecking, "1000")
	require.NoError(t, acc.Withdraw(money.MustParse("300")))
	assert.Equal(t, "700.00", acc.Balance.String())

	err := acc.Withdraw(money.MustParse("10000"))
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	assert.Equal(t, "700.00", acc.Balance.String())

	err = acc.Withdraw(money.MustParse("0"))
	assert.ErrorIs(t, err, account.ErrInvalidAmount)

	require.NoError(t, acc.Withdraw(money.MustParse("700")), "withdrawing the full balance is allowed")
	assert.True(t, acc.Balance.IsZero())
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	t.Run("conserves total", func(t *testing.T) {
		src := newAccount(t, account.KindChecking, "1000")
		dst := newAccount(t, account.KindSavings, "2000")
		require.NoError(t, src.Transfer(dst, money.MustParse("150.75")))
		assert.Equal(t, "849.25", src.Balance.String())
		assert.Equal(t, "2150.75", dst.Balance.String())
		assert.Equal(t, "3000.00", src.Balance.Add(dst.Balance).String())
	})

	t.Run("insufficient funds leaves both untouched", func(t *testing.T) {
		src := newAccount(t, account.KindChecking, "10")
		dst := newAccount(t, account.KindChecking, "0")
		err := src.Transfer(dst, money.MustParse("10.01"))
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.Equal(t, "10.00", src.Balance.String())
		assert.True(t, dst.Balance.IsZero())
	})

	t.Run("invalid amount", func(t *testing.T) {
		src := newAccount(t, account.KindChecking, "10")
		dst := newAccount(t, account.KindChecking, "0")
		assert.ErrorIs(t, src.Transfer(dst, money.MustParse("-1")), account.ErrInvalidAmount)
	})

	t.Run("same account is a no-op on the balance", func(t *testing.T) {
		acc := newAccount(t, account.KindChecking, "50")
		require.NoError(t, acc.Transfer(acc, money.MustParse("20")))
		assert.Equal(t, "50.00", acc.Balance.String())
	})
}

func TestHistoryEntries(t *testing.T) {
	t.Parallel()
	origin, dest := uuid.New(), uuid.New()
	amount := money.MustParse("5")

	dep := account.NewDepositEntry(origin, amount, fixedNow)
	assert.Equal(t, account.TransactionDeposit, dep.Kind)
	assert.Nil(t, dep.DestinationAccountID)
	assert.True(t, dep.Involves(origin))
	assert.False(t, dep.Involves(dest))

	wd := account.NewWithdrawalEntry(origin, amount, fixedNow)
	assert.Equal(t, account.TransactionWithdrawal, wd.Kind)

	tr := account.NewTransferEntry(origin, dest, amount, fixedNow)
	assert.Equal(t, account.TransactionTransfer, tr.Kind)
	require.NotNil(t, tr.DestinationAccountID)
	assert.Equal(t, dest, *tr.DestinationAccountID)
	assert.True(t, tr.Involves(dest))
	assert.Equal(t, fixedNow, tr.CreatedAt)
}
