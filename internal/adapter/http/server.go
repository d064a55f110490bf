package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"onepager-generator/internal/logger"
)

// NewApp builds the fiber app with health, metrics and the one-pager routes.
func NewApp(h *Handler, log *zap.Logger) *fiber.App {
	log = logger.OrNop(log)
	app := fiber.New(fiber.Config{
		AppName:               "onepager-generator",
		DisableStartupMessage: true,
		BodyLimit:             8 * 1024 * 1024,
		ErrorHandler:          ErrorHandler(log),
	})
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h.RegisterRoutes(app)
	return app
}
