package initializer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	infra_eventbus "github.com/amirasaad/digitalbank/infra/eventbus"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitEventBus_DefaultsToMemory(t *testing.T) {
	bus, closer, err := initEventBus(&config.App{EventBus: &config.EventBus{}}, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, closer)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)

	require.NoError(t, bus.Emit(context.Background(), &events.CustomerRegistered{Meta: events.NewMeta()}))
	assert.Empty(t, bus.(*infra_eventbus.MemoryEventBus).Published())
}

func TestInitEventBus_RedisRequiresURL(t *testing.T) {
	cfg := &config.App{
		EventBus: &config.EventBus{Driver: "redis"},
		Redis:    &config.Redis{},
	}
	_, _, err := initEventBus(cfg, discardLogger())
	require.Error(t, err)
}

func TestInitEventBus_RedisUnreachableFallsBackToMemory(t *testing.T) {
	cfg := &config.App{
		EventBus: &config.EventBus{Driver: "redis"},
		Redis:    &config.Redis{URL: "redis://127.0.0.1:1/0", Stream: "s", Group: "g"},
	}
	bus, closer, err := initEventBus(cfg, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_KafkaRequiresBrokers(t *testing.T) {
	cfg := &config.App{
		EventBus: &config.EventBus{Driver: "kafka"},
		Kafka:    &config.Kafka{},
	}
	_, _, err := initEventBus(cfg, discardLogger())
	require.Error(t, err)
}

func TestInitEventBus_KafkaUnreachableFallsBackToMemory(t *testing.T) {
	cfg := &config.App{
		EventBus: &config.EventBus{Driver: "kafka"},
		Kafka:    &config.Kafka{Brokers: "127.0.0.1:1", TopicPrefix: "t", GroupID: "g"},
	}
	bus, _, err := initEventBus(cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_UnsupportedDriver(t *testing.T) {
	_, _, err := initEventBus(&config.App{EventBus: &config.EventBus{Driver: "nope"}}, discardLogger())
	require.Error(t, err)
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&config.Log{Format: "json", Level: 0}, &buf)
	logger.Info("hello", "account_id", "a-1")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"account_id":"a-1"`)
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	// 4 is charmbracelet/log's warn level
	logger := newLogger(&config.Log{Format: "text", Level: 4}, &buf)
	logger.Info("quiet")
	assert.Empty(t, buf.String())
}

func TestInitializeDependencies_SQLiteMemory(t *testing.T) {
	cfg := &config.App{
		Env:      "test",
		Log:      &config.Log{Format: "text", Level: 8},
		DB:       &config.DB{Url: "sqlite://:memory:", AutoMigrate: true},
		EventBus: &config.EventBus{Driver: "memory"},
		Metrics:  &config.Metrics{Enabled: true, Namespace: "init_test"},
	}
	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, c := range deps.Closers {
			_ = c.Close()
		}
	})
	slog.SetDefault(discardLogger())

	assert.NotNil(t, deps.Uow)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, deps.EventBus)
	assert.IsType(t, &metrics.PrometheusCollector{}, deps.Metrics)
	require.NotNil(t, deps.Registry)
	assert.Len(t, deps.Closers, 1)
}

func TestInitializeDependencies_MissingDatabaseURL(t *testing.T) {
	cfg := &config.App{
		Log: &config.Log{Format: "text", Level: 8},
		DB:  &config.DB{},
	}
	_, err := InitializeDependencies(cfg)
	require.Error(t, err)
	slog.SetDefault(discardLogger())
}
