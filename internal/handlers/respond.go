package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/shopwice/internal/services"
)

// boolFlag reports whether a query flag value means true. Only a
// case-insensitive "true" counts; anything else is false.
func boolFlag(value string) bool {
	return strings.EqualFold(value, "true")
}

// respondError maps service errors onto the wire contract: field-keyed
// validation errors become a 400 with an errors map, missing resources a
// 404. Anything else bubbles up to the framework's 500 handling.
func respondError(c *fiber.Ctx, message string, err error) error {
	var verrs services.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": message,
			"errors":  verrs,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "resource not found",
		})
	default:
		return err
	}
}

func paginated(c *fiber.Ctx, data interface{}, page, limit int, total int64) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"current_page":   page,
			"items_per_page": limit,
			"total_items":    total,
		},
	})
}
