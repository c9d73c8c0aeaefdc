package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/digitalbank/infra/initializer"
	"github.com/amirasaad/digitalbank/pkg/app"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	a := app.New(deps, cfg)
	defer a.Close()

	// Setup Fiber app with all routes and middleware
	fiberApp := webapi.SetupApp(a)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go shutdownOnSignal(quit, fiberApp.Shutdown, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"eventbus", cfg.EventBus.Driver,
	)
	return fiberApp.Listen(addr)
}

func shutdownOnSignal(quit <-chan os.Signal, shutdown func() error, logger *slog.Logger) {
	sig := <-quit
	logger.Info("Shutting down server", "signal", sig.String())
	if err := shutdown(); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}
