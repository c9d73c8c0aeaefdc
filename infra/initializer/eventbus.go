package initializer

import (
	"fmt"
	"io"
	"log/slog"

	infra_eventbus "github.com/amirasaad/digitalbank/infra/eventbus"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
)

// initEventBus selects the bus named by cfg.EventBus.Driver. A broker that
// cannot be reached falls back to the in-memory bus so the API stays up;
// the returned closer is nil for the memory bus.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, io.Closer, error) {
	driver := "memory"
	if cfg.EventBus != nil && cfg.EventBus.Driver != "" {
		driver = cfg.EventBus.Driver
	}

	switch driver {
	case "memory":
		return infra_eventbus.NewWithMemory(logger), nil, nil
	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, nil, fmt.Errorf("redis event bus selected but REDIS_URL is empty")
		}
		bus, err := infra_eventbus.NewWithRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to memory event bus", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil, nil
		}
		return bus, bus, nil
	case "kafka":
		if cfg.Kafka == nil || cfg.Kafka.Brokers == "" {
			return nil, nil, fmt.Errorf("kafka event bus selected but KAFKA_BROKERS is empty")
		}
		bus, err := infra_eventbus.NewWithKafka(cfg.Kafka, logger)
		if err != nil {
			logger.Warn("Kafka unavailable, falling back to memory event bus", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil, nil
		}
		return bus, bus, nil
	default:
		return nil, nil, fmt.Errorf("unsupported event bus driver %q", driver)
	}
}
