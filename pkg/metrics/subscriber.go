package metrics

import (
	"context"
	"log/slog"

	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/shopspring/decimal"
)

// Subscribe registers ledger counters on bus. Handlers are wrapped with
// eventbus.WithIdempotency so redelivered events are counted once.
func Subscribe(bus eventbus.Bus, collector Collector, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	tracker := eventbus.NewIdempotencyTracker()
	register := func(eventType events.EventType, kind string, amountOf func(events.Event) decimal.Decimal) {
		handler := func(ctx context.Context, e events.Event) error {
			collector.RecordOperation(kind, amountOf(e))
			return nil
		}
		bus.Register(eventType, eventbus.WithIdempotency(
			handler, tracker, eventbus.EventIDKey, "metrics."+kind, logger,
		))
	}

	register(events.EventTypeAccountOpened, OperationOpen, func(events.Event) decimal.Decimal {
		return decimal.Zero
	})
	register(events.EventTypeMoneyDeposited, OperationDeposit, func(e events.Event) decimal.Decimal {
		if evt, ok := e.(*events.MoneyDeposited); ok {
			return evt.Amount
		}
		return decimal.Zero
	})
	register(events.EventTypeMoneyWithdrawn, OperationWithdrawal, func(e events.Event) decimal.Decimal {
		if evt, ok := e.(*events.MoneyWithdrawn); ok {
			return evt.Amount
		}
		return decimal.Zero
	})
	register(events.EventTypeMoneyTransferred, OperationTransfer, func(e events.Event) decimal.Decimal {
		if evt, ok := e.(*events.MoneyTransferred); ok {
			return evt.Amount
		}
		return decimal.Zero
	})
}
