package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		repoAny, err := txUow.GetRepository(reflect.TypeOf((*repository.CustomerRepository)(nil)).Elem())
		require.NoError(err)
		_, ok := repoAny.(*customerRepository)
		assert.True(ok)

		repoAny, err = txUow.GetRepository(reflect.TypeOf((*repository.AccountRepository)(nil)).Elem())
		require.NoError(err)
		_, ok = repoAny.(*accountRepository)
		assert.True(ok)

		repoAny, err = txUow.GetRepository(reflect.TypeOf((*repository.HistoryRepository)(nil)).Elem())
		require.NoError(err)
		_, ok = repoAny.(*historyRepository)
		assert.True(ok)

		_, err = txUow.GetRepository(reflect.TypeOf(""))
		assert.Error(err)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_TypeSafeMethods(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	customerRepo, err := uow.CustomerRepository()
	require.NoError(err)
	assert.NotNil(customerRepo)

	accountRepo, err := uow.AccountRepository()
	require.NoError(err)
	assert.NotNil(accountRepo)

	historyRepo, err := uow.HistoryRepository()
	require.NoError(err)
	assert.NotNil(historyRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		accountRepo, err := txUow.AccountRepository()
		require.NoError(err)
		assert.NotNil(accountRepo)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_NestedDoReusesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := uow.Do(context.Background(), func(outer repository.UnitOfWork) error {
		return outer.Do(context.Background(), func(inner repository.UnitOfWork) error {
			calls++
			assert.Same(t, outer, inner)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"."id" LIMIT \$2 FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "kind", "balance"}).
			AddRow(id.String(), uuid.New().String(), "savings", "12.500"))

	got, err := NewAccountRepository(db).GetForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "12.50", got.Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
