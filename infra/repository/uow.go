package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/digitalbank/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one abstraction.
// Repositories obtained inside Do share the transaction; outside Do they use the
// plain connection.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.CustomerRepository)(nil)).Elem(): func(db *gorm.DB) any { return NewCustomerRepository(db) },
			reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():  func(db *gorm.DB) any { return NewAccountRepository(db) },
			reflect.TypeOf((*repository.HistoryRepository)(nil)).Elem():  func(db *gorm.DB) any { return NewHistoryRepository(db) },
		},
	}
}

// Do runs fn in a transaction. Returning an error from fn rolls back every write.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository returns the repository registered for repoType, bound to the
// current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func getRepo[T any](u *UoW) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}

func (u *UoW) CustomerRepository() (repository.CustomerRepository, error) {
	return getRepo[repository.CustomerRepository](u)
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return getRepo[repository.AccountRepository](u)
}

func (u *UoW) HistoryRepository() (repository.HistoryRepository, error) {
	return getRepo[repository.HistoryRepository](u)
}
