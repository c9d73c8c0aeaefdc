package middleware

import (
	"time"

	"github.com/amirasaad/digitalbank/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records method, matched route, status and latency for every request.
func Metrics(collector metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		collector.RecordHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
