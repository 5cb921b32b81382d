// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the application.
package middleware

import (
	"strings"

	"tomati/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

func userIDFromToken(tokenString string) (string, string) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "Invalid token claims"
	}

	// User ID lives in the "sub" claim (RFC 7519 subject)
	subClaim, ok := claims["sub"]
	if !ok {
		return "", "Invalid token structure - missing subject"
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return "", "Invalid token subject type"
	}
	if _, err := uuid.Parse(subStr); err != nil {
		return "", "Invalid user ID in token"
	}
	return subStr, ""
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// On success the authenticated user's ID is stored in c.Locals("userID").
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	userID, errMsg := userIDFromToken(parts[1])
	if errMsg != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": errMsg,
		})
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth populates c.Locals("userID") when a valid bearer token is
// present but lets the request through either way. Public product reads use
// it to enrich responses for signed-in users.
func OptionalAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Next()
	}
	if userID, errMsg := userIDFromToken(parts[1]); errMsg == "" {
		c.Locals("userID", userID)
	}
	return c.Next()
}

// WebSocketAuthRequired validates JWT tokens from query parameters for
// WebSocket connections, falling back to the Authorization header.
func WebSocketAuthRequired(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token required",
			})
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}
		token = parts[1]
	}

	userID, errMsg := userIDFromToken(token)
	if errMsg != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": errMsg,
		})
	}

	c.Locals("userID", userID)
	return c.Next()
}
