package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	infra_eventbus "github.com/amirasaad/digitalbank/infra/eventbus"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// RunSmokeTest publishes a MoneyDeposited event through the Kafka bus and
// waits for the registered consumer to receive it.
func RunSmokeTest(logger *slog.Logger) error {
	var cfg config.Kafka
	if err := envconfig.Process("KAFKA", &cfg); err != nil {
		return err
	}
	cfg.GroupID += ".smoketest"

	bus, err := infra_eventbus.NewWithKafka(&cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	want := &events.MoneyDeposited{
		Meta:      events.NewMeta(),
		AccountID: uuid.New(),
		Amount:    decimal.RequireFromString("1.00"),
		Balance:   decimal.RequireFromString("1.00"),
	}
	received := make(chan *events.MoneyDeposited, 1)
	bus.Register(events.EventTypeMoneyDeposited, func(_ context.Context, e events.Event) error {
		if evt, ok := e.(*events.MoneyDeposited); ok && evt.EventID == want.EventID {
			select {
			case received <- evt:
			default:
			}
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// consumer groups join asynchronously; keep publishing until one lands
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		if err := bus.Emit(ctx, want); err != nil {
			logger.Warn("emit failed", "error", err)
		}
		select {
		case evt := <-received:
			logger.Info("kafka smoke test passed", "event_id", evt.EventID, "amount", evt.Amount)
			return nil
		case <-ctx.Done():
			return errors.New("timed out waiting for the event to be consumed")
		case <-ticker.C:
		}
	}
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := RunSmokeTest(logger); err != nil {
		logger.Error("kafka smoke test failed", "error", err)
		os.Exit(1)
	}
}
