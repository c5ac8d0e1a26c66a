// Package middleware provides HTTP middleware components for the application.
// Tokens are issued by the identity provider; this package only verifies them.
package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"tutorly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const claimsKey = "claims"

// AuthMiddleware handles JWT token validation.
// It extracts the bearer token from the Authorization header, verifies it
// against the shared HS256 secret and stores the claims in the request locals.
type AuthMiddleware struct {
	secret []byte
	logger *slog.Logger
}

func NewAuthMiddleware(secret string, logger *slog.Logger) *AuthMiddleware {
	if secret == "" {
		panic("jwt secret is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		secret: []byte(secret),
		logger: logger.With("component", "auth"),
	}
}

// Handler validates JWT tokens and adds claims to the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := &models.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
		}
		m.logger.Debug("token rejected", "path", c.Path(), "err", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	if claims.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
	}

	c.Locals(claimsKey, claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// AdminOnly verifies that the request has valid admin claims.
func AdminOnly(c *fiber.Ctx) error {
	claims, ok := Claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
	}

	if !claims.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	return c.Next()
}

// Claims returns the verified claims stored by AuthMiddleware.
func Claims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*models.UserClaims)
	return claims, ok && claims != nil
}
