package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/foxxcyber/breakfast-club/internal/config"
)

// KitchenScope is the only scope issued to kitchen tokens
const KitchenScope = "kitchen"

// KitchenClaims represents the claims in a kitchen token
type KitchenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// IssueKitchenToken signs a kitchen token valid for cfg.JWTExpiry
func IssueKitchenToken(cfg *config.Config, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(cfg.JWTExpiry)
	claims := &KitchenClaims{
		Scope: KitchenScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   KitchenScope,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// KitchenRequired checks for a valid kitchen token on write endpoints.
// When no kitchen passphrase is configured every request passes.
func KitchenRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.AuthEnabled() {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization format",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &KitchenClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})

		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*KitchenClaims)
		if !ok || !token.Valid || claims.Scope != KitchenScope {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		c.Locals("token_scope", claims.Scope)

		return c.Next()
	}
}
