package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	infra_eventbus "github.com/amirasaad/digitalbank/infra/eventbus"
	"github.com/amirasaad/digitalbank/infra/repository"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/domain/money"
	"github.com/amirasaad/digitalbank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func newTestDeps(t *testing.T) (*Deps, *infra_eventbus.MemoryEventBus) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := infra_eventbus.NewWithMemory(log, infra_eventbus.WithRecording())
	collector := metrics.NewPrometheusCollector("test")
	registry := prometheus.NewRegistry()
	require.NoError(t, collector.Register(registry))
	return &Deps{
		Uow:      repository.NewUoW(db),
		EventBus: bus,
		Metrics:  collector,
		Registry: registry,
		Logger:   log,
	}, bus
}

func TestNew_WiresServices(t *testing.T) {
	deps, bus := newTestDeps(t)
	cfg := &config.App{
		Savings: &config.Savings{MonthlyRate: decimal.RequireFromString("0.01")},
		Auth:    &config.Auth{Jwt: &config.Jwt{Secret: "secret"}},
	}
	a := New(deps, cfg)
	require.NotNil(t, a.CustomerService)
	require.NotNil(t, a.AccountService)
	require.NotNil(t, a.HistoryService)
	require.NotNil(t, a.TokenService)
	assert.Equal(t, "0.01", a.AccountService.MonthlyRate().String())

	ctx := context.Background()
	c, err := a.CustomerService.Register(ctx, "Wallace", "123")
	require.NoError(t, err)
	acct, err := a.AccountService.CreateAccount(ctx, c.ID, "checking")
	require.NoError(t, err)
	_, err = a.AccountService.Deposit(ctx, acct.ID, money.MustParse("1000"))
	require.NoError(t, err)

	assert.Len(t, bus.Published(), 3)
	count, err := testutil.GatherAndCount(deps.Registry, "test_ledger_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNew_DefaultsWithoutOptionalConfig(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.Metrics = nil
	a := New(deps, &config.App{})
	assert.Nil(t, a.TokenService)
	assert.Equal(t, "0.0089", a.AccountService.MonthlyRate().String())
	assert.IsType(t, metrics.NoOpCollector{}, deps.Metrics)
}

func TestClose_ReverseOrder(t *testing.T) {
	var order []int
	deps := &Deps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Closers: []io.Closer{
			closerFunc(func() error { order = append(order, 1); return nil }),
			closerFunc(func() error { order = append(order, 2); return io.ErrClosedPipe }),
		},
	}
	(&App{Deps: deps}).Close()
	assert.Equal(t, []int{2, 1}, order)
}
