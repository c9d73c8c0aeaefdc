//go:build e2e

package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	infra_eventbus "github.com/amirasaad/digitalbank/infra/eventbus"
	infrarepo "github.com/amirasaad/digitalbank/infra/repository"
	"github.com/amirasaad/digitalbank/internal/migrations"
	"github.com/amirasaad/digitalbank/pkg/app"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/service/auth"
	"github.com/amirasaad/digitalbank/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// E2ETestSuite provides a test suite with a real Postgres database using Testcontainers
type E2ETestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB
	App         *fiber.App
	Bus         *infra_eventbus.MemoryEventBus
	Token       string
}

// startPostgresContainer starts a Postgres container using Testcontainers
func (s *E2ETestSuite) startPostgresContainer(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
}

// SetupSuite starts Postgres, applies the SQL migrations and wires the API.
func (s *E2ETestSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := s.startPostgresContainer(ctx)
	s.Require().NoError(err)
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	m, err := migrations.New(dsn)
	s.Require().NoError(err)
	s.Require().NoError(migrations.Up(m))
	_, _ = m.Close()

	s.db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)

	cfg := NewTestConfig()
	cfg.DB = &config.DB{Url: dsn}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Bus = infra_eventbus.NewWithMemory(log, infra_eventbus.WithRecording())

	a := app.New(&app.Deps{
		Uow:      infrarepo.NewUoW(s.db),
		EventBus: s.Bus,
		Logger:   log,
	}, cfg)
	s.App = webapi.SetupApp(a)

	s.Token, err = auth.NewTokenService(cfg.Auth.Jwt, log).Generate("e2e")
	s.Require().NoError(err)
}

// TearDownSuite cleans up the test suite resources
func (s *E2ETestSuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

// MakeRequest sends a request carrying the suite's bearer token.
func (s *E2ETestSuite) MakeRequest(method, path, body string) *http.Response {
	return MakeRequest(s.App, method, path, body, s.Token)
}
