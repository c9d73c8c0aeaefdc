package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig is returned when loaded values fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var eventBusDrivers = []string{"memory", "redis", "kafka"}

// Load reads the first env file found among envFilePath (searching parent
// directories), falls back to ./.env, then decodes the process environment.
// Variables already set in the environment win over file values.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	for _, path := range envFilePath {
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Info("Loaded environment from file", "path", foundPath)
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"savings_monthly_rate", cfg.Savings.MonthlyRate.String(),
		"eventbus_driver", cfg.EventBus.Driver,
		"metrics_enabled", cfg.Metrics.Enabled,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *App) Validate() error {
	if c.Savings != nil && c.Savings.MonthlyRate.IsNegative() {
		return fmt.Errorf("%w: SAVINGS_MONTHLY_RATE must not be negative", ErrInvalidConfig)
	}
	if c.EventBus != nil && !slices.Contains(eventBusDrivers, c.EventBus.Driver) {
		return fmt.Errorf("%w: EVENTBUS_DRIVER must be one of %v, got %q",
			ErrInvalidConfig, eventBusDrivers, c.EventBus.Driver)
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
