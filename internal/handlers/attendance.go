package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// GetAttendance returns draft and committed attendance
func (h *Handler) GetAttendance(c *fiber.Ctx) error {
	return Success(c, h.planning.AttendanceState())
}

// UpdateDraftAttendance stores new draft counts. Anything that is not a
// positive number is recorded as 0; the plan is unchanged until commit.
func (h *Handler) UpdateDraftAttendance(c *fiber.Ctx) error {
	var req models.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	return Success(c, h.planning.UpdateDraft(c.Context(), req.Monday, req.Tuesday))
}

// CommitAttendance promotes the draft, refreshes vendor data and returns
// the new plan
func (h *Handler) CommitAttendance(c *fiber.Ctx) error {
	return Success(c, h.planning.CommitAttendance(c.Context()))
}
