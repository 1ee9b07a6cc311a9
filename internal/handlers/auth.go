package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/foxxcyber/breakfast-club/internal/middleware"
	"github.com/foxxcyber/breakfast-club/internal/models"
)

// IssueToken exchanges the kitchen passphrase for a bearer token
func (h *Handler) IssueToken(c *fiber.Ctx) error {
	if !h.cfg.AuthEnabled() {
		return Error(c, fiber.StatusNotFound, "kitchen authentication is disabled")
	}

	var req models.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Passphrase == "" {
		return Error(c, fiber.StatusBadRequest, "passphrase is required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.KitchenPassphraseHash), []byte(req.Passphrase)); err != nil {
		return Error(c, fiber.StatusUnauthorized, "invalid passphrase")
	}

	token, expiresAt, err := middleware.IssueKitchenToken(h.cfg, time.Now())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return Success(c, models.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
