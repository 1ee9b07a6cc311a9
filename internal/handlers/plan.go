package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// publishLinkExpiry is how long the presigned plan URL stays valid
const publishLinkExpiry = 24 * time.Hour

// GetPlan returns the plan for the committed attendance and current leftovers
func (h *Handler) GetPlan(c *fiber.Ctx) error {
	return Success(c, h.planning.CurrentPlan())
}

// PublishPlan uploads the current plan for the kitchen display
func (h *Handler) PublishPlan(c *fiber.Ctx) error {
	if h.publisher == nil {
		return Error(c, fiber.StatusServiceUnavailable, "plan publishing is not enabled")
	}

	result, err := h.publisher.Publish(c.Context(), h.planning.CurrentPlan(), publishLinkExpiry)
	if err != nil {
		log.Printf("Failed to publish plan: %v", err)
		return Error(c, fiber.StatusInternalServerError, "failed to publish plan")
	}

	return Success(c, result)
}
