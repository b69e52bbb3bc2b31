package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"feed_workspace/dto"
)

// RequireAuth guards mutation routes: a request whose identity middleware left
// no usable uid in Locals is rejected before it reaches a handler. Responds
// with the same JSON error shape the handlers use.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, ok := c.Locals("user_id").(string)
		if !ok || strings.TrimSpace(uid) == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.ErrorResponse{Message: "unauthorized"})
		}
		return c.Next()
	}
}
