package middleware

import (
	"github.com/gofiber/fiber/v2"

	"feed_workspace/dto"
)

// Limiter is the narrow contract with the external rate-limiting
// collaborator: reject when the actor exceeded its quota for the given
// operation kind. The engine keeps no counters of its own.
type Limiter interface {
	Allow(actorID, kind string) bool
}

// NopLimiter allows everything; the default when no collaborator is wired.
type NopLimiter struct{}

func (NopLimiter) Allow(string, string) bool { return true }

// RateLimit consults the limiter on mutation entry points.
func RateLimit(l Limiter, kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, _ := c.Locals("user_id").(string)
		if !l.Allow(actor, kind) {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(dto.ErrorResponse{Message: "rate limit exceeded"})
		}
		return c.Next()
	}
}
