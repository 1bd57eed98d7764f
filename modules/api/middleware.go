package api

import (
	"strings"

	"github.com/example/storefront/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// AdminContextKey is the key used to store admin claims in the Fiber context.
const AdminContextKey = "admin"

// AdminMiddleware creates a middleware that validates admin bearer tokens.
func AdminMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "Authorization header is required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return fail(c, fiber.StatusUnauthorized, "Invalid authorization header format. Use: Bearer <token>")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return fail(c, fiber.StatusUnauthorized, "Token is required")
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(AdminContextKey, claims)
		return c.Next()
	}
}
