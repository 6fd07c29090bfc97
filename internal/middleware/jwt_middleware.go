package middleware

import (
	"strings"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Context local keys set by AuthRequired.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalFirstName = "first_name"
	LocalLastName  = "last_name"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer
// access token and stores the caller's identity in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No token, access denied",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Failed to authenticate",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalFirstName, claims.FirstName)
		c.Locals(LocalLastName, claims.LastName)
		return c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// caller's role is in the allowed list. Must run after AuthRequired.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
}

// CallerID returns the authenticated user's id from the request context.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// CallerRole returns the authenticated user's role from the request context.
func CallerRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
