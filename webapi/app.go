// Package webapi exposes the bank over HTTP using fiber.
package webapi

import (
	"time"

	"github.com/amirasaad/digitalbank/pkg/app"
	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/middleware"
	"github.com/amirasaad/digitalbank/webapi/account"
	"github.com/amirasaad/digitalbank/webapi/common"
	"github.com/amirasaad/digitalbank/webapi/customer"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultMaxRequests = 100
	defaultWindow      = time.Minute
)

// SetupApp builds the fiber application with middleware and every route.
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config
	fiberApp := fiber.New(fiber.Config{
		AppName:      "digitalbank",
		ErrorHandler: common.ErrorHandler,
	})

	fiberApp.Use(recover.New())
	if cfg.Env != "test" {
		fiberApp.Use(logger.New())
	}
	fiberApp.Use(limiter.New(limiterConfig(cfg.RateLimit)))
	fiberApp.Use(middleware.Metrics(a.Deps.Metrics))

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})
	if a.Deps.Registry != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(a.Deps.Registry, promhttp.HandlerOpts{}),
		))
	}

	var jwtCfg *config.Jwt
	if cfg.Auth != nil {
		jwtCfg = cfg.Auth.Jwt
	}
	if jwtCfg == nil {
		jwtCfg = &config.Jwt{}
	}
	customer.Routes(fiberApp, a.CustomerService, a.AccountService, jwtCfg)
	account.Routes(fiberApp, a.AccountService, jwtCfg)

	return fiberApp
}

func limiterConfig(rl *config.RateLimit) limiter.Config {
	maxRequests, window := defaultMaxRequests, defaultWindow
	if rl != nil {
		if rl.MaxRequests > 0 {
			maxRequests = rl.MaxRequests
		}
		if rl.Window > 0 {
			window = rl.Window
		}
	}
	return limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}
}
