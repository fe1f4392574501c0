package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID tags every request with an id for log correlation. An inbound
// X-Request-Id is respected so ids survive proxies.
func RequestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}

	c.Locals("requestid", id)
	c.Set("X-Request-Id", id)

	return c.Next()
}
