package initializer

import (
	"fmt"

	"github.com/amirasaad/digitalbank/infra"
	infra_repository "github.com/amirasaad/digitalbank/infra/repository"
	"github.com/amirasaad/digitalbank/pkg/app"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := SetupLogger(cfg.Log)
	deps.Logger = logger

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := infra_repository.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database schema migrated")
	}
	if sqlDB, err := db.DB(); err == nil {
		deps.Closers = append(deps.Closers, sqlDB)
	}

	// Initialize unit of work
	deps.Uow = infra_repository.NewUoW(db)

	// Initialize event bus
	bus, closer, err := initEventBus(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	deps.EventBus = bus
	if closer != nil {
		deps.Closers = append(deps.Closers, closer)
	}

	// Initialize metrics
	deps.Metrics = metrics.NoOpCollector{}
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector := metrics.NewPrometheusCollector(cfg.Metrics.Namespace)
		if err := collector.Register(registry); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		deps.Metrics = collector
		deps.Registry = registry
	}

	return deps, nil
}
