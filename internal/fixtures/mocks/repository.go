// Package mocks holds testify doubles for the repository and event bus contracts.
package mocks

import (
	"context"
	"reflect"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUnitOfWork runs Do callbacks against itself and serves the repositories
// it was built with. There is no rollback.
type MockUnitOfWork struct {
	mock.Mock
	Customers repository.CustomerRepository
	Accounts  repository.AccountRepository
	History   repository.HistoryRepository
}

// NewMockUnitOfWork creates a MockUnitOfWork and asserts its expectations on cleanup.
func NewMockUnitOfWork(t testingT) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(m)
}

func (m *MockUnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.CustomerRepository)(nil)).Elem():
		return m.Customers, nil
	case reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():
		return m.Accounts, nil
	case reflect.TypeOf((*repository.HistoryRepository)(nil)).Elem():
		return m.History, nil
	}
	args := m.Called(repoType)
	return args.Get(0), args.Error(1)
}

func (m *MockUnitOfWork) CustomerRepository() (repository.CustomerRepository, error) {
	return m.Customers, nil
}

func (m *MockUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return m.Accounts, nil
}

func (m *MockUnitOfWork) HistoryRepository() (repository.HistoryRepository, error) {
	return m.History, nil
}

// MockCustomerRepository is a testify double of repository.CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func NewMockCustomerRepository(t testingT) *MockCustomerRepository {
	m := &MockCustomerRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCustomerRepository) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) GetByTaxID(ctx context.Context, taxID string) (*customer.Customer, error) {
	args := m.Called(ctx, taxID)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*customer.Customer)
	return list, args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockAccountRepository is a testify double of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, customerID)
	list, _ := args.Get(0).([]*account.Account)
	return list, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

// MockHistoryRepository is a testify double of repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func NewMockHistoryRepository(t testingT) *MockHistoryRepository {
	m := &MockHistoryRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHistoryRepository) Create(ctx context.Context, e *account.HistoryEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockHistoryRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.HistoryEntry, error) {
	args := m.Called(ctx, accountID)
	list, _ := args.Get(0).([]*account.HistoryEntry)
	return list, args.Error(1)
}
