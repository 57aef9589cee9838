package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/bike-rental-aggregation/internal/metrics"
	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

const appName = "bike-rental-aggregation"

// NewApp builds the Fiber app with middleware, health, metrics and API routes.
func NewApp(service *rental.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		UnescapePath:          true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestLogger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app, service)
	return app
}

// errorHandler renders every error as {"error": true, "message": ...}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// requestLogger logs each request and records its duration.
func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if e, ok := err.(*fiber.Error); ok {
		status = e.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	took := time.Since(start)
	route := c.Route().Path
	metrics.ObserveRequest(c.Method(), route, status, took)

	entry := log.WithFields(log.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"status": status,
		"took":   took,
	})
	if status >= 500 {
		entry.Warn("HTTP request failed")
	} else {
		entry.Debug("HTTP request")
	}
	return err
}
