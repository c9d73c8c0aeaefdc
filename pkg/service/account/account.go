// Package account provides the account lifecycle and balance operations:
// opening accounts, deposits, withdrawals, transfers and savings interest
// simulation. Every public operation runs inside a single unit of work, so the
// balance changes and history entries it writes commit or roll back together.
// Domain events are emitted after the commit.
package account

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/amirasaad/digitalbank/pkg/service/history"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides business logic for account operations.
type Service struct {
	uow         repository.UnitOfWork
	bus         eventbus.Bus
	history     *history.Service
	monthlyRate decimal.Decimal
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMonthlyRate sets the savings rate used by SimulateInterest.
func WithMonthlyRate(rate decimal.Decimal) Option {
	return func(s *Service) { s.monthlyRate = rate }
}

// WithClock overrides "today" for interest simulation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithEventBus sets the bus used to publish domain events.
func WithEventBus(bus eventbus.Bus) Option {
	return func(s *Service) { s.bus = bus }
}

// New creates a new account Service.
func New(
	uow repository.UnitOfWork,
	hist *history.Service,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		uow:         uow,
		history:     hist,
		monthlyRate: account.DefaultMonthlyRate,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MonthlyRate returns the configured savings rate.
func (s *Service) MonthlyRate() decimal.Decimal {
	return s.monthlyRate
}

// emit publishes events after commit. Failures are logged; the operation
// already succeeded.
func (s *Service) emit(ctx context.Context, evts ...events.Event) {
	if s.bus == nil {
		return
	}
	for _, evt := range evts {
		if err := s.bus.Emit(ctx, evt); err != nil {
			s.logger.Error("failed to emit event", "event_type", evt.Type(), "error", err)
		}
	}
}

// CreateAccount opens a zero-balance account of the requested kind for the customer.
// kindToken accepts checking, savings, CC or CP.
func (s *Service) CreateAccount(
	ctx context.Context,
	customerID uuid.UUID,
	kindToken string,
) (acct *account.Account, err error) {
	logger := s.logger.With("customer_id", customerID, "kind", kindToken)
	logger.Info("CreateAccount started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		custRepo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		owner, err := custRepo.Get(ctx, customerID)
		if err != nil {
			return err
		}
		kind, err := account.ParseKind(kindToken)
		if err != nil {
			return err
		}
		acct, err = account.New().
			WithCustomerID(owner.ID).
			WithKind(kind).
			Build()
		if err != nil {
			return err
		}
		if err = owner.AddAccount(acct.Ref()); err != nil {
			return err
		}
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return accRepo.Create(ctx, acct)
	})
	if err != nil {
		acct = nil
		logger.Error("CreateAccount failed", "error", err)
		return
	}
	logger.Info("CreateAccount successful", "account_id", acct.ID)
	s.emit(ctx, &events.AccountOpened{
		Meta:       events.NewMeta(),
		AccountID:  acct.ID,
		CustomerID: acct.CustomerID,
		Kind:       acct.Kind.String(),
	})
	return
}

// Get returns a single account.
func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (acct *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = repo.Get(ctx, accountID)
		return err
	})
	if err != nil {
		acct = nil
	}
	return
}

// ListByCustomer returns the customer's accounts. Unknown customers yield
// customer.ErrCustomerNotFound.
func (s *Service) ListByCustomer(
	ctx context.Context,
	customerID uuid.UUID,
) (accounts []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		custRepo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if _, err = custRepo.Get(ctx, customerID); err != nil {
			return err
		}
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = accRepo.ListByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		accounts = nil
	}
	return
}

// ListByTaxID resolves the customer by tax id and returns its accounts.
func (s *Service) ListByTaxID(
	ctx context.Context,
	taxID string,
) (accounts []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		custRepo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		owner, err := custRepo.GetByTaxID(ctx, taxID)
		if err != nil {
			return err
		}
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = accRepo.ListByCustomer(ctx, owner.ID)
		return err
	})
	if err != nil {
		accounts = nil
	}
	return
}

// Deposit adds amount to the account and records a DEPOSIT entry.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount money.Money,
) (acct *account.Account, err error) {
	logger := s.logger.With("account_id", accountID, "amount", amount.String())
	logger.Info("Deposit started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = repo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if err = acct.Deposit(amount); err != nil {
			return err
		}
		if _, err = s.history.RecordDeposit(ctx, uow, acct.ID, amount); err != nil {
			return err
		}
		return repo.Update(ctx, acct)
	})
	if err != nil {
		acct = nil
		logger.Error("Deposit failed", "error", err)
		return
	}
	logger.Info("Deposit successful", "balance", acct.Balance.String())
	s.emit(ctx, &events.MoneyDeposited{
		Meta:      events.NewMeta(),
		AccountID: acct.ID,
		Amount:    amount.Decimal(),
		Balance:   acct.Balance.Decimal(),
	})
	return
}

// Withdraw removes amount from the account and records a WITHDRAWAL entry.
func (s *Service) Withdraw(
	ctx context.Context,
	accountID uuid.UUID,
	amount money.Money,
) (acct *account.Account, err error) {
	logger := s.logger.With("account_id", accountID, "amount", amount.String())
	logger.Info("Withdraw started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = repo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if err = acct.Withdraw(amount); err != nil {
			return err
		}
		if _, err = s.history.RecordWithdrawal(ctx, uow, acct.ID, amount); err != nil {
			return err
		}
		return repo.Update(ctx, acct)
	})
	if err != nil {
		acct = nil
		logger.Error("Withdraw failed", "error", err)
		return
	}
	logger.Info("Withdraw successful", "balance", acct.Balance.String())
	s.emit(ctx, &events.MoneyWithdrawn{
		Meta:      events.NewMeta(),
		AccountID: acct.ID,
		Amount:    amount.Decimal(),
		Balance:   acct.Balance.Decimal(),
	})
	return
}

// Transfer moves amount from sourceID to destID and records one TRANSFER entry.
// It returns the updated source and destination, in that order. A transfer to
// the same account leaves the balance unchanged but is still recorded.
func (s *Service) Transfer(
	ctx context.Context,
	sourceID uuid.UUID,
	amount money.Money,
	destID uuid.UUID,
) (source, dest *account.Account, err error) {
	logger := s.logger.With(
		"source_account_id", sourceID,
		"destination_account_id", destID,
		"amount", amount.String(),
	)
	logger.Info("Transfer started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		source, dest, err = lockPair(ctx, repo, sourceID, destID)
		if err != nil {
			return err
		}
		if err = source.Transfer(dest, amount); err != nil {
			return err
		}
		if err = repo.Update(ctx, source); err != nil {
			return err
		}
		if dest != source {
			if err = repo.Update(ctx, dest); err != nil {
				return err
			}
		}
		_, err = s.history.RecordTransfer(ctx, uow, source.ID, dest.ID, amount)
		return err
	})
	if err != nil {
		source, dest = nil, nil
		logger.Error("Transfer failed", "error", err)
		return
	}
	logger.Info("Transfer successful",
		"source_balance", source.Balance.String(),
		"destination_balance", dest.Balance.String(),
	)
	s.emit(ctx, &events.MoneyTransferred{
		Meta:                 events.NewMeta(),
		SourceAccountID:      source.ID,
		DestinationAccountID: dest.ID,
		Amount:               amount.Decimal(),
	})
	return
}

// lockPair loads both transfer accounts FOR UPDATE, always locking the lower
// id first. When the ids match, source and dest are the same *Account.
func lockPair(
	ctx context.Context,
	repo repository.AccountRepository,
	sourceID, destID uuid.UUID,
) (source, dest *account.Account, err error) {
	if sourceID == destID {
		source, err = repo.GetForUpdate(ctx, sourceID)
		return source, source, err
	}
	first, second := sourceID, destID
	if bytes.Compare(destID[:], sourceID[:]) < 0 {
		first, second = destID, sourceID
	}
	a, err := repo.GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := repo.GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if first == sourceID {
		return a, b, nil
	}
	return b, a, nil
}

// InterestProjection is the outcome of SimulateInterest. Balance is the
// balance the projection was computed from.
type InterestProjection struct {
	AccountID   uuid.UUID
	Target      time.Time
	MonthlyRate decimal.Decimal
	Balance     money.Money
	Projected   money.Money
}

// SimulateInterest projects the savings balance at target using the configured
// monthly rate. The account is never modified.
func (s *Service) SimulateInterest(
	ctx context.Context,
	accountID uuid.UUID,
	target time.Time,
) (InterestProjection, error) {
	acct, err := s.Get(ctx, accountID)
	if err != nil {
		return InterestProjection{}, err
	}
	projected, err := acct.SimulateInterest(s.now(), target, s.monthlyRate)
	if err != nil {
		return InterestProjection{}, err
	}
	return InterestProjection{
		AccountID:   acct.ID,
		Target:      account.DateOnly(target),
		MonthlyRate: s.monthlyRate,
		Balance:     acct.Balance,
		Projected:   projected,
	}, nil
}

// History lists the ledger entries involving the account, newest first.
func (s *Service) History(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*account.HistoryEntry, error) {
	return s.history.ListForAccount(ctx, accountID)
}
