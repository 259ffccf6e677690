package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "tuttiud_backend/internals/helpers"
)

// RequireRoles lets the request through only when the resolved role is
// one of the allowed ones. Must run after AuthMiddleware.
func RequireRoles(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetRole(c)
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, "insufficient_role")
	}
}
