package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/shopwice/internal/config"
)

// HealthCheck reports service liveness.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"message":   "API is running successfully",
		"timestamp": time.Now().UTC(),
		"version":   config.Version,
	})
}
