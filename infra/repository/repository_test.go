package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedCustomer(t *testing.T, ctx context.Context, db *gorm.DB, name, taxID string) *customer.Customer {
	t.Helper()
	c, err := customer.New(name, taxID)
	require.NoError(t, err)
	require.NoError(t, NewCustomerRepository(db).Create(ctx, c))
	return c
}

func seedAccount(t *testing.T, ctx context.Context, db *gorm.DB, owner uuid.UUID, kind account.Kind) *account.Account {
	t.Helper()
	a, err := account.New().WithCustomerID(owner).WithKind(kind).Build()
	require.NoError(t, err)
	require.NoError(t, NewAccountRepository(db).Create(ctx, a))
	return a
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCustomerRepository(db)

	alice := seedCustomer(t, ctx, db, "Alice", "111")
	seedCustomer(t, ctx, db, "Bob", "222")

	t.Run("get by tax id", func(t *testing.T) {
		got, err := repo.GetByTaxID(ctx, "111")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.Equal(t, "Alice", got.Name)
		assert.Empty(t, got.Accounts)
	})

	t.Run("missing customer", func(t *testing.T) {
		_, err := repo.GetByTaxID(ctx, "999")
		assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
		_, err = repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	})

	t.Run("duplicate tax id", func(t *testing.T) {
		dup, err := customer.New("Other", "111")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), customer.ErrDuplicateTaxID)
	})

	t.Run("list", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("update", func(t *testing.T) {
		got, err := repo.Get(ctx, alice.ID)
		require.NoError(t, err)
		require.NoError(t, got.Update("Alice Smith", "333"))
		require.NoError(t, repo.Update(ctx, got))

		reloaded, err := repo.GetByTaxID(ctx, "333")
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", reloaded.Name)

		require.NoError(t, got.Update("Alice Smith", "222"))
		assert.ErrorIs(t, repo.Update(ctx, got), customer.ErrDuplicateTaxID)
	})

	t.Run("update missing", func(t *testing.T) {
		ghost, err := customer.New("Ghost", "000")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Update(ctx, ghost), customer.ErrCustomerNotFound)
	})
}

func TestCustomerRepository_DeleteCascadesAccounts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	c := seedCustomer(t, ctx, db, "Carol", "444")
	checking := seedAccount(t, ctx, db, c.ID, account.KindChecking)
	seedAccount(t, ctx, db, c.ID, account.KindSavings)

	loaded, err := NewCustomerRepository(db).Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Accounts, 2)
	assert.True(t, loaded.Owns(checking.ID))

	uow := NewUoW(db)
	err = uow.Do(ctx, func(tx repository.UnitOfWork) error {
		repo, err := tx.CustomerRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, c.ID)
	})
	require.NoError(t, err)

	_, err = NewAccountRepository(db).Get(ctx, checking.ID)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.ErrorIs(t, NewCustomerRepository(db).Delete(ctx, c.ID), customer.ErrCustomerNotFound)

	// the tax id is free again
	seedCustomer(t, ctx, db, "Carol", "444")
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	owner := seedCustomer(t, ctx, db, "Dan", "555")
	acc := seedAccount(t, ctx, db, owner.ID, account.KindChecking)

	t.Run("one account per kind", func(t *testing.T) {
		dup, err := account.New().WithCustomerID(owner.ID).WithKind(account.KindChecking).Build()
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), account.ErrDuplicateAccountType)
	})

	t.Run("balance round trip", func(t *testing.T) {
		require.NoError(t, acc.Deposit(money.MustParse("150.755")))
		require.NoError(t, repo.Update(ctx, acc))

		got, err := repo.Get(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, got.Balance.Equal(money.MustParse("150.755")), got.Balance.String())
		assert.Equal(t, account.KindChecking, got.Kind)
		assert.Equal(t, owner.ID, got.CustomerID)
	})

	t.Run("list by customer", func(t *testing.T) {
		seedAccount(t, ctx, db, owner.ID, account.KindSavings)
		list, err := repo.ListByCustomer(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		empty, err := repo.ListByCustomer(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, account.ErrAccountNotFound)

		ghost, err := account.New().WithCustomerID(owner.ID).WithKind(account.KindSavings).Build()
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Update(ctx, ghost), account.ErrAccountNotFound)
	})
}

func TestHistoryRepository_ListByAccount(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewHistoryRepository(db)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	entries := []*account.HistoryEntry{
		account.NewDepositEntry(a, money.MustParse("100"), base),
		account.NewTransferEntry(a, b, money.MustParse("30"), base.Add(time.Minute)),
		account.NewWithdrawalEntry(b, money.MustParse("10"), base.Add(2*time.Minute)),
		account.NewDepositEntry(c, money.MustParse("5"), base.Add(3*time.Minute)),
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.ListByAccount(ctx, b)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, account.TransactionWithdrawal, got[0].Kind)
	assert.Equal(t, account.TransactionTransfer, got[1].Kind)
	require.NotNil(t, got[1].DestinationAccountID)
	assert.Equal(t, b, *got[1].DestinationAccountID)

	got, err = repo.ListByAccount(ctx, a)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.True(t, e.Involves(a))
	}
}

func TestUoW_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	var created *customer.Customer
	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		repo, err := tx.CustomerRepository()
		if err != nil {
			return err
		}
		created, err = customer.New("Eve", "666")
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, created); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewCustomerRepository(db).Get(ctx, created.ID)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestAmountsKeepFullPrecision(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := seedCustomer(t, ctx, db, "Gromit", "909")
	acc := seedAccount(t, ctx, db, owner.ID, account.KindSavings)
	large := money.MustParse("12345678901234.567")

	require.NoError(t, acc.Deposit(large))
	require.NoError(t, NewAccountRepository(db).Update(ctx, acc))
	got, err := NewAccountRepository(db).Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(large), got.Balance.String())

	require.NoError(t, got.Deposit(money.MustParse("0.001")))
	require.NoError(t, NewAccountRepository(db).Update(ctx, got))
	got, err = NewAccountRepository(db).Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "12345678901234.568", got.Balance.String())

	hist := NewHistoryRepository(db)
	require.NoError(t, hist.Create(ctx, account.NewDepositEntry(acc.ID, large, time.Now())))
	entries, err := hist.ListByAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(large), entries[0].Amount.String())
}

func TestDecimalColumnType(t *testing.T) {
	db := newTestDB(t)
	assert.Equal(t, "text", Decimal{}.GormDBDataType(db, nil))

	pg, _ := newMockDB(t)
	assert.Equal(t, "decimal(19,3)", Decimal{}.GormDBDataType(pg, nil))
}
