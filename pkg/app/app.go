package app

import (
	"io"
	"log/slog"

	"github.com/amirasaad/digitalbank/pkg/config"
	domainaccount "github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/amirasaad/digitalbank/pkg/metrics"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/amirasaad/digitalbank/pkg/service/account"
	"github.com/amirasaad/digitalbank/pkg/service/auth"
	"github.com/amirasaad/digitalbank/pkg/service/customer"
	"github.com/amirasaad/digitalbank/pkg/service/history"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Metrics  metrics.Collector
	// Registry backs the /metrics endpoint. Nil disables it.
	Registry *prometheus.Registry
	Logger   *slog.Logger
	// Closers are released by App.Close in reverse order.
	Closers []io.Closer
}

type App struct {
	Deps            *Deps
	Config          *config.App
	TokenService    *auth.TokenService
	CustomerService *customer.Service
	AccountService  *account.Service
	HistoryService  *history.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NoOpCollector{}
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	rate := domainaccount.DefaultMonthlyRate
	if cfg.Savings != nil {
		rate = cfg.Savings.MonthlyRate
	}
	if cfg.Auth != nil && cfg.Auth.Jwt != nil {
		app.TokenService = auth.NewTokenService(cfg.Auth.Jwt, deps.Logger)
	}
	app.HistoryService = history.New(deps.Uow, deps.Logger)
	app.CustomerService = customer.New(deps.Uow, deps.EventBus, deps.Logger)
	app.AccountService = account.New(
		deps.Uow,
		app.HistoryService,
		deps.Logger,
		account.WithMonthlyRate(rate),
		account.WithEventBus(deps.EventBus),
	)
	return app
}

// Close releases brokers and connections opened by the initializer.
func (a *App) Close() {
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i].Close(); err != nil {
			a.Deps.Logger.Warn("failed to close dependency", "error", err)
		}
	}
}

func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	SetupBus(Dependencies{
		Bus:     a.Deps.EventBus,
		Metrics: a.Deps.Metrics,
		Logger:  a.Deps.Logger,
	})
}
