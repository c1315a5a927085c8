package middleware

import (
	"errors"
	"log"
	"strings"

	"shopapi/internal/models"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys under which the resolved user and raw bearer token are bound
// for downstream handlers.
const (
	UserKey  = "user"
	TokenKey = "token"
)

// TokenRequired is a Fiber middleware that resolves the bearer token to a
// user and binds both into the request context. With allowExpired set the
// expiry check is skipped, which is reserved for the logout and renewal
// routes so a client holding a just-expired token can still end or extend
// its own session. Revocation is always enforced.
func TokenRequired(authService *services.AuthService, allowExpired bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "authorization header is required")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "authorization header format must be 'Bearer <token>'")
		}
		tokenString := parts[1]

		user, err := authService.Authenticate(tokenString, allowExpired)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSessionExpired):
				return unauthorized(c, "session expired")
			case errors.Is(err, services.ErrTokenRevoked), errors.Is(err, services.ErrMalformedToken):
				return unauthorized(c, "invalid token")
			default:
				log.Printf("Token authentication failed: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "unknown error",
				})
			}
		}

		c.Locals(UserKey, user)
		c.Locals(TokenKey, tokenString)
		return c.Next()
	}
}

// AdminRequired allows the request through only when the bound user holds
// the admin role. Must run after TokenRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(UserKey).(*models.User)
		if !ok || !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "insufficient permissions",
			})
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
