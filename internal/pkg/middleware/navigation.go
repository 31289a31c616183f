package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ignews/ignews/internal/pkg/navigation"
)

// NavigationMiddleware publishes the request path (without query string) to
// the request's user context so view components can highlight the active route.
func NavigationMiddleware(c *fiber.Ctx) error {
	c.SetUserContext(navigation.WithCurrentPath(c.UserContext(), c.Path()))
	return c.Next()
}
