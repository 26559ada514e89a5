package wms

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/geoforge/mapserv/internal/metrics"
)

// SetupRoutes registers the service endpoints on the fiber app.
func SetupRoutes(app *fiber.App, svc *Service) {
	app.Use(metrics.Middleware())
	app.Use(accessLog())

	app.Get("/wms", Handler(svc))
	app.Get("/metrics", metrics.Handler())
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// accessLog logs one line per request. Server errors log at error level,
// everything else at info.
func accessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
			"ip", c.IP(),
		}
		if status >= fiber.StatusInternalServerError {
			slog.Error("request", attrs...)
		} else {
			slog.Info("request", attrs...)
		}
		return err
	}
}
