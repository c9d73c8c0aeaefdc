package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Do runs the given function in a transaction boundary; every repository
// obtained from the UnitOfWork passed to fn shares that transaction.
// If fn returns an error the transaction is rolled back.
//
// Example usage:
//
//	err := uow.Do(ctx, func(uow UnitOfWork) error {
//		repo, err := uow.AccountRepository()
//		if err != nil {
//			return err
//		}
//		return repo.Update(ctx, acct)
//	})
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction/session.
	GetRepository(repoType reflect.Type) (any, error)

	CustomerRepository() (CustomerRepository, error)
	AccountRepository() (AccountRepository, error)
	HistoryRepository() (HistoryRepository, error)
}
