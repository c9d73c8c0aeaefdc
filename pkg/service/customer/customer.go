// Package customer provides the customer registry: registration, lookup,
// update and deletion.
package customer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for customer operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new customer Service. bus may be nil.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, bus: bus, logger: logger}
}

func (s *Service) emit(ctx context.Context, evt events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Error("failed to emit event", "event_type", evt.Type(), "error", err)
	}
}

// taxIDTaken reports whether a customer other than self holds taxID.
func taxIDTaken(ctx context.Context, repo repository.CustomerRepository, taxID string, self uuid.UUID) (bool, error) {
	existing, err := repo.GetByTaxID(ctx, taxID)
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return existing.ID != self, nil
	}
}

// Register creates a customer with no accounts.
func (s *Service) Register(ctx context.Context, name, taxID string) (c *customer.Customer, err error) {
	logger := s.logger.With("tax_id", taxID)
	logger.Info("Register started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = customer.New(name, taxID)
		if err != nil {
			return err
		}
		taken, err := taxIDTaken(ctx, repo, c.TaxID, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return customer.ErrDuplicateTaxID
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		c = nil
		logger.Error("Register failed", "error", err)
		return
	}
	logger.Info("Register successful", "customer_id", c.ID)
	s.emit(ctx, &events.CustomerRegistered{
		Meta:       events.NewMeta(),
		CustomerID: c.ID,
		TaxID:      c.TaxID,
	})
	return
}

// FindByTaxID returns the customer holding taxID.
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (c *customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = repo.GetByTaxID(ctx, taxID)
		return err
	})
	if err != nil {
		c = nil
	}
	return
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (c *customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		c = nil
	}
	return
}

// List returns every customer.
func (s *Service) List(ctx context.Context) (all []*customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		all, err = repo.List(ctx)
		return err
	})
	if err != nil {
		all = nil
	}
	return
}

// Update renames the customer found by taxID and moves it to newTaxID.
func (s *Service) Update(
	ctx context.Context,
	taxID, newName, newTaxID string,
) (c *customer.Customer, err error) {
	logger := s.logger.With("tax_id", taxID, "new_tax_id", newTaxID)
	logger.Info("Update started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = repo.GetByTaxID(ctx, taxID)
		if err != nil {
			return err
		}
		if err = c.Update(newName, newTaxID); err != nil {
			return err
		}
		if c.TaxID != taxID {
			taken, err := taxIDTaken(ctx, repo, c.TaxID, c.ID)
			if err != nil {
				return err
			}
			if taken {
				return customer.ErrDuplicateTaxID
			}
		}
		return repo.Update(ctx, c)
	})
	if err != nil {
		c = nil
		logger.Error("Update failed", "error", err)
		return
	}
	logger.Info("Update successful", "customer_id", c.ID)
	s.emit(ctx, &events.CustomerUpdated{
		Meta:          events.NewMeta(),
		CustomerID:    c.ID,
		PreviousTaxID: taxID,
		TaxID:         c.TaxID,
	})
	return
}

// Delete removes the customer and every account it owns.
func (s *Service) Delete(ctx context.Context, taxID string) error {
	logger := s.logger.With("tax_id", taxID)
	logger.Info("Delete started")
	var removed *customer.Customer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		removed, err = repo.GetByTaxID(ctx, taxID)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, removed.ID)
	})
	if err != nil {
		logger.Error("Delete failed", "error", err)
		return err
	}
	logger.Info("Delete successful", "customer_id", removed.ID)
	accountIDs := make([]uuid.UUID, 0, len(removed.Accounts))
	for _, ref := range removed.Accounts {
		accountIDs = append(accountIDs, ref.ID)
	}
	s.emit(ctx, &events.CustomerDeleted{
		Meta:       events.NewMeta(),
		CustomerID: removed.ID,
		TaxID:      removed.TaxID,
		AccountIDs: accountIDs,
	})
	return nil
}
