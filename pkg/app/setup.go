// Package app wires the services together and registers the event handlers
// that react to committed ledger changes.
package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/amirasaad/digitalbank/pkg/metrics"
)

// Dependencies contains all the dependencies needed by the SetupBus function
type Dependencies struct {
	Bus     eventbus.Bus
	Metrics metrics.Collector
	Logger  *slog.Logger
}

// SetupBus registers all event handlers with the provided event Bus.
func SetupBus(deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bus := deps.Bus

	// ledger counters
	metrics.Subscribe(bus, deps.Metrics, logger)

	// customer audit trail
	audit := logger.With("handler", "audit")
	bus.Register(events.EventTypeCustomerRegistered, func(_ context.Context, e events.Event) error {
		if evt, ok := e.(*events.CustomerRegistered); ok {
			audit.Info("customer registered", "customer_id", evt.CustomerID, "tax_id", evt.TaxID)
		}
		return nil
	})
	bus.Register(events.EventTypeCustomerUpdated, func(_ context.Context, e events.Event) error {
		if evt, ok := e.(*events.CustomerUpdated); ok {
			audit.Info("customer updated",
				"customer_id", evt.CustomerID,
				"previous_tax_id", evt.PreviousTaxID,
				"tax_id", evt.TaxID,
			)
		}
		return nil
	})
	bus.Register(events.EventTypeCustomerDeleted, func(_ context.Context, e events.Event) error {
		if evt, ok := e.(*events.CustomerDeleted); ok {
			audit.Info("customer deleted",
				"customer_id", evt.CustomerID,
				"tax_id", evt.TaxID,
				"accounts_removed", len(evt.AccountIDs),
			)
		}
		return nil
	})
}
