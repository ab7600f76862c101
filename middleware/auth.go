package middleware

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Secret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}

// Protected rejects requests without a valid session token and stores the
// caller's id and user type in locals.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(Secret()),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}

			userType, _ := claims["user_type"].(string)

			c.Locals("userID", userID)
			c.Locals("userType", userType)

			return c.Next()
		},
	})
}

// RequireUserType restricts a route to one side of the marketplace.
func RequireUserType(userType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if t, _ := c.Locals("userType").(string); t != userType {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to perform this action",
			})
		}
		return c.Next()
	}
}

// extractUserID parses the uuid session id out of the token claims
func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	idVal, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no ID found in claims")
	}
	id, err := uuid.Parse(idVal)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not parse ID claim: %v", err)
	}
	return id, nil
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
