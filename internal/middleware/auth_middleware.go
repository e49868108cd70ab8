package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/service"
	"go-shop-backoffice/pkg/logger"
)

// SessionCookie is the http-only cookie set by login.
const SessionCookie = "session"

const shopLocalsKey = "shop"

type shopKey struct{}

// TokenFromRequest reads "Authorization: Bearer <token>" or, failing that, the session cookie.
func TokenFromRequest(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.Cookies(SessionCookie)
}

// RequireShop validates the session and stores the AuthenticatedShop in both
// c.Locals and the request's user context. Subscription expiry answers 402.
func RequireShop(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		shop, err := auth.Authenticate(c.UserContext(), token)
		switch {
		case errors.Is(err, service.ErrSubscriptionExpired):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired session"})
		case err != nil:
			logger.Error(c.UserContext(), "session check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Session store unavailable"})
		}

		c.Locals(shopLocalsKey, shop)
		ctx := context.WithValue(c.UserContext(), shopKey{}, shop)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("shop_id", shop.ID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// CurrentShop returns the shop authenticated by RequireShop.
func CurrentShop(c *fiber.Ctx) (*model.AuthenticatedShop, bool) {
	shop, ok := c.Locals(shopLocalsKey).(*model.AuthenticatedShop)
	return shop, ok
}

// ShopFromContext is CurrentShop for code that only holds a context.
func ShopFromContext(ctx context.Context) (*model.AuthenticatedShop, bool) {
	shop, ok := ctx.Value(shopKey{}).(*model.AuthenticatedShop)
	return shop, ok
}
