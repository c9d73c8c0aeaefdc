// Package testutils builds fully wired fiber apps for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/digitalbank/infra"
	infra_eventbus "github.com/amirasaad/digitalbank/infra/eventbus"
	infrarepo "github.com/amirasaad/digitalbank/infra/repository"
	"github.com/amirasaad/digitalbank/pkg/app"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/metrics"
	"github.com/amirasaad/digitalbank/pkg/service/auth"
	"github.com/amirasaad/digitalbank/webapi"
	"github.com/amirasaad/digitalbank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestApp bundles the fiber app with the wiring behind it.
type TestApp struct {
	Fiber  *fiber.App
	App    *app.App
	Bus    *infra_eventbus.MemoryEventBus
	Token  string
	Config *config.App
}

// NewTestConfig returns a config suitable for in-process tests.
func NewTestConfig() *config.App {
	return &config.App{
		Env: "test",
		DB:  &config.DB{Url: "sqlite://:memory:"},
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret: "test-secret",
			Expiry: time.Hour,
			Issuer: "digitalbank-test",
		}},
		Savings:   &config.Savings{MonthlyRate: decimal.RequireFromString("0.0089")},
		EventBus:  &config.EventBus{Driver: "memory"},
		Metrics:   &config.Metrics{Enabled: true, Namespace: "digitalbank_test"},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

// SetupTestApp wires the API on an in-memory sqlite database and issues an
// operator token.
func SetupTestApp(t *testing.T, cfg *config.App) *TestApp {
	t.Helper()
	if cfg == nil {
		cfg = NewTestConfig()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	require.NoError(t, err)
	require.NoError(t, infrarepo.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	bus := infra_eventbus.NewWithMemory(logger, infra_eventbus.WithRecording())
	collector := metrics.NewPrometheusCollector(cfg.Metrics.Namespace)
	registry := prometheus.NewRegistry()
	require.NoError(t, collector.Register(registry))

	a := app.New(&app.Deps{
		Uow:      infrarepo.NewUoW(db),
		EventBus: bus,
		Metrics:  collector,
		Registry: registry,
		Logger:   logger,
	}, cfg)

	token, err := auth.NewTokenService(cfg.Auth.Jwt, logger).Generate("operator")
	require.NoError(t, err)

	return &TestApp{
		Fiber:  webapi.SetupApp(a),
		App:    a,
		Bus:    bus,
		Token:  token,
		Config: cfg,
	}
}

// MakeRequest is a helper for making HTTP requests in tests
func MakeRequest(app *fiber.App, method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}

// Request sends an authenticated request.
func (ta *TestApp) Request(method, path, body string) *http.Response {
	return MakeRequest(ta.Fiber, method, path, body, ta.Token)
}

// DecodeData reads the success envelope and decodes its data field into out.
func DecodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// DecodeProblem reads a problem+json body.
func DecodeProblem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
