// Package history records and lists the transaction ledger that accompanies
// every balance change.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
)

// Service appends ledger entries and reads them back.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a history Service.
func New(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{uow: uow, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordDeposit appends a DEPOSIT entry using the caller's unit of work.
// No validation happens here; the caller has already applied the balance change.
func (s *Service) RecordDeposit(
	ctx context.Context,
	tx repository.UnitOfWork,
	accountID uuid.UUID,
	amount money.Money,
) (*account.HistoryEntry, error) {
	return s.record(ctx, tx, account.NewDepositEntry(accountID, amount, s.now()))
}

// RecordWithdrawal appends a WITHDRAWAL entry using the caller's unit of work.
func (s *Service) RecordWithdrawal(
	ctx context.Context,
	tx repository.UnitOfWork,
	accountID uuid.UUID,
	amount money.Money,
) (*account.HistoryEntry, error) {
	return s.record(ctx, tx, account.NewWithdrawalEntry(accountID, amount, s.now()))
}

// RecordTransfer appends a TRANSFER entry from origin to destination.
func (s *Service) RecordTransfer(
	ctx context.Context,
	tx repository.UnitOfWork,
	originID, destinationID uuid.UUID,
	amount money.Money,
) (*account.HistoryEntry, error) {
	return s.record(ctx, tx, account.NewTransferEntry(originID, destinationID, amount, s.now()))
}

func (s *Service) record(
	ctx context.Context,
	tx repository.UnitOfWork,
	entry *account.HistoryEntry,
) (*account.HistoryEntry, error) {
	repo, err := tx.HistoryRepository()
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, entry); err != nil {
		s.logger.Error("record history entry failed",
			"kind", entry.Kind,
			"origin", entry.OriginAccountID,
			"error", err,
		)
		return nil, err
	}
	return entry, nil
}

// ListForAccount returns every entry where accountID is origin or destination,
// newest first. It fails with account.ErrAccountNotFound for unknown accounts.
func (s *Service) ListForAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (entries []*account.HistoryEntry, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err = accRepo.Get(ctx, accountID); err != nil {
			return err
		}
		histRepo, err := uow.HistoryRepository()
		if err != nil {
			return err
		}
		entries, err = histRepo.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		entries = nil
	}
	return
}
