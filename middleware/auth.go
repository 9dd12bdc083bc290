package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserContext extracts the caller identity and roles forwarded by the
// gateway. Authentication itself happens upstream; this service only trusts
// the forwarded headers.
func UserContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")

		var roles []string
		for _, r := range strings.Split(c.Get("X-User-Roles"), ",") {
			r = strings.TrimSpace(r)
			if r != "" {
				roles = append(roles, r)
			}
		}

		c.Locals("user_id", userID)
		c.Locals("user_roles", roles)

		return c.Next()
	}
}

// RequireAdmin rejects requests whose caller does not carry the admin role
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}
		return c.Next()
	}
}

// HasRole reports whether the caller carries the given role
func HasRole(c *fiber.Ctx, role string) bool {
	roles, _ := c.Locals("user_roles").([]string)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserID returns the caller identity set by UserContext, empty when absent
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
