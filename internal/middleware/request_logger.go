package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"go-shop-backoffice/pkg/logger"
)

// RequestLogger puts a logger tagged with the request id into the user
// context. Register it after requestid.New().
func RequestLogger(base *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := base
		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
			l = base.With("request_id", id)
		}
		c.SetUserContext(logger.WithLogger(c.UserContext(), l))
		return c.Next()
	}
}
