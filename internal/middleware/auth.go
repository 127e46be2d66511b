package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devconnect/profile-service/internal/auth"
)

// TokenHeader is the header existing clients send their bearer token in.
const TokenHeader = "x-auth-token"

// RequireAuth rejects requests without a valid token and stores the
// resolved user id in c.Locals("user_id").
func RequireAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "No token, authorization denied"})
		}
		userID, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Token is not valid"})
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}
