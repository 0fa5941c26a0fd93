package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")
	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)
	api.Post("/validate", ValidateAPI)
	api.Post("/change-password", AuthMiddleware, ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and stores the claims on the request
// context. The token comes from the cookie or the Authorization header.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")

	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ParseJWT(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	return c.Next()
}
