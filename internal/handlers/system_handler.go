package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"
	healthCheckTimeout    = 2 * time.Second
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// SystemHandler serves the home redirect, health and metrics endpoints.
type SystemHandler struct {
	check    HealthCheck
	gatherer prometheus.Gatherer
	log      logrus.FieldLogger
}

// NewSystemHandler creates a new SystemHandler. A nil check always reports
// healthy and a nil gatherer falls back to the default registry.
func NewSystemHandler(check HealthCheck, gatherer prometheus.Gatherer, log logrus.FieldLogger) *SystemHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &SystemHandler{
		check:    check,
		gatherer: gatherer,
		log:      log,
	}
}

// RegisterRoutes registers /, /health and /metrics.
func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/health", h.HandleHealth)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

// HandleHome sends the browser to the product list.
func (h *SystemHandler) HandleHome(c *fiber.Ctx) error {
	return c.Redirect(productsPath)
}

// HandleHealth answers 200 when the database responds and 503 otherwise.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	if h.check != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		if err := h.check(ctx); err != nil {
			h.log.WithError(err).Warn("Health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": healthStatusUnhealthy,
				"time":   time.Now().Format(time.RFC3339),
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": healthStatusHealthy,
		"time":   time.Now().Format(time.RFC3339),
	})
}
